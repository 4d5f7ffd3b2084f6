package contract

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/felipemsilva2/vrumi-connect-2026-sub003/internal/domain"
	"github.com/felipemsilva2/vrumi-connect-2026-sub003/pkg/dbmetrics"
	"github.com/felipemsilva2/vrumi-connect-2026-sub003/pkg/psqlbuilder"
)

var contractColumns = []string{
	"id",
	"booking_id",
	"student_id",
	"instructor_id",
	"contract_text",
	"student_signature",
	"student_signed_at",
	"created_at",
}

// Repository репозиторий для работы с договорами
// Договор создаётся один раз; единственное допустимое изменение - подпись
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория договоров
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает договор для бронирования
// Вызывается в той же транзакции, что и резервирование слота:
// бронирование без договора существовать не должно
func (r *Repository) Create(ctx context.Context, contract *domain.Contract) (*domain.Contract, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("contracts").
		Columns(
			"booking_id",
			"student_id",
			"instructor_id",
			"contract_text",
			"student_signature",
			"student_signed_at",
		).
		Values(
			contract.BookingID,
			contract.StudentID,
			contract.InstructorID,
			contract.ContractText,
			contract.StudentSignature,
			contract.StudentSignedAt,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&contract.ID,
		&createdAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	contract.CreatedAt = createdAt.Time

	return contract, nil
}

// GetByBookingID получает договор бронирования
func (r *Repository) GetByBookingID(ctx context.Context, bookingID int64) (*domain.Contract, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(contractColumns...).
		From("contracts").
		Where(squirrel.Eq{"booking_id": bookingID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByBookingID - build select query: %v", ErrBuildQuery, err)
	}

	var contract domain.Contract
	var createdAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&contract.ID,
		&contract.BookingID,
		&contract.StudentID,
		&contract.InstructorID,
		&contract.ContractText,
		&contract.StudentSignature,
		&contract.StudentSignedAt,
		&createdAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrContractNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBookingID - scan contract: %v", ErrScanRow, err)
	}

	contract.CreatedAt = createdAt.Time

	return &contract, nil
}

// Sign записывает подпись студента
// Условие student_signed_at IS NULL делает подписание одноразовым:
// повторная попытка затронет 0 строк и вернёт ErrAlreadySigned
func (r *Repository) Sign(ctx context.Context, bookingID int64, signature string, signedAt time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("contracts").
		Set("student_signature", signature).
		Set("student_signed_at", signedAt).
		Where(squirrel.Eq{"booking_id": bookingID}).
		Where(squirrel.Eq{"student_signed_at": nil}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Sign - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Sign - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Sign - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		// Различаем отсутствующий и уже подписанный договор
		if _, getErr := r.GetByBookingID(ctx, bookingID); getErr != nil {
			return ErrContractNotFound
		}
		return ErrAlreadySigned
	}

	return nil
}
