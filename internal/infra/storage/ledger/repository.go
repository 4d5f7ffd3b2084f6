package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/felipemsilva2/vrumi-connect-2026-sub003/internal/domain"
	"github.com/felipemsilva2/vrumi-connect-2026-sub003/pkg/dbmetrics"
	"github.com/felipemsilva2/vrumi-connect-2026-sub003/pkg/psqlbuilder"
	"github.com/felipemsilva2/vrumi-connect-2026-sub003/pkg/types"
)

// Repository репозиторий леджера
// Таблица transactions append-only: записи никогда не обновляются и не удаляются,
// исправления делаются компенсирующими записями
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория леджера
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Append добавляет запись в леджер - единственная операция записи
func (r *Repository) Append(ctx context.Context, tx *domain.Transaction) (*domain.Transaction, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("transactions").
		Columns(
			"instructor_id",
			"booking_id",
			"amount",
			"type",
			"status",
		).
		Values(
			tx.InstructorID,
			tx.BookingID,
			tx.Amount,
			tx.Type,
			tx.Status,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Append - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&tx.ID,
		&createdAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Append - execute insert: %v", ErrExecQuery, err)
	}

	tx.CreatedAt = createdAt.Time

	return tx, nil
}

// GetByInstructor возвращает записи леджера инструктора, хронологически
func (r *Repository) GetByInstructor(ctx context.Context, instructorID int64) ([]*domain.Transaction, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"instructor_id",
		"booking_id",
		"amount",
		"type",
		"status",
		"created_at",
	).
		From("transactions").
		Where(squirrel.Eq{"instructor_id": instructorID}).
		OrderBy("created_at ASC, id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByInstructor - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByInstructor - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	txs := make([]*domain.Transaction, 0)
	for rows.Next() {
		var tx domain.Transaction
		var createdAt sql.NullTime

		if err := rows.Scan(
			&tx.ID,
			&tx.InstructorID,
			&tx.BookingID,
			&tx.Amount,
			&tx.Type,
			&tx.Status,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("%w: GetByInstructor - scan row: %v", ErrScanRow, err)
		}

		tx.CreatedAt = createdAt.Time
		txs = append(txs, &tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByInstructor - rows error: %v", ErrScanRow, err)
	}

	return txs, nil
}

// SumEarnings суммирует завершённые earning-записи инструктора
// Опциональный параметр since ограничивает период (для сводки "за этот месяц")
func (r *Repository) SumEarnings(ctx context.Context, instructorID int64, since *time.Time) (types.Money, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("COALESCE(SUM(amount), 0)").
		From("transactions").
		Where(squirrel.Eq{"instructor_id": instructorID}).
		Where(squirrel.Eq{"type": domain.TxEarning}).
		Where(squirrel.Eq{"status": domain.TxStatusCompleted})

	if since != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"created_at": *since})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: SumEarnings - build select query: %v", ErrBuildQuery, err)
	}

	var sum types.Money
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&sum); err != nil {
		return 0, fmt.Errorf("%w: SumEarnings - scan sum: %v", ErrScanRow, err)
	}

	return sum, nil
}
