package availability

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/felipemsilva2/vrumi-connect-2026-sub003/internal/domain"
	"github.com/felipemsilva2/vrumi-connect-2026-sub003/pkg/dbmetrics"
	"github.com/felipemsilva2/vrumi-connect-2026-sub003/pkg/psqlbuilder"
)

var windowColumns = []string{
	"id",
	"instructor_id",
	"day_of_week",
	"start_time",
	"end_time",
	"created_at",
}

// Repository репозиторий для работы с окнами доступности инструкторов
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория доступности
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByInstructorAndWeekday получает окна доступности инструктора на день недели,
// упорядоченные по времени начала
func (r *Repository) GetByInstructorAndWeekday(ctx context.Context, instructorID int64, dayOfWeek int) ([]*domain.AvailabilityWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(windowColumns...).
		From("availability_windows").
		Where(squirrel.Eq{"instructor_id": instructorID}).
		Where(squirrel.Eq{"day_of_week": dayOfWeek}).
		OrderBy("start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByInstructorAndWeekday - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryWindows(ctx, executor, query, args, "GetByInstructorAndWeekday")
}

// GetByInstructor получает все окна доступности инструктора
// (для просмотра и редактирования недельного расписания)
func (r *Repository) GetByInstructor(ctx context.Context, instructorID int64) ([]*domain.AvailabilityWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(windowColumns...).
		From("availability_windows").
		Where(squirrel.Eq{"instructor_id": instructorID}).
		OrderBy("day_of_week ASC, start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByInstructor - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryWindows(ctx, executor, query, args, "GetByInstructor")
}

// ReplaceForInstructor заменяет недельное расписание инструктора целиком
// Вызывается внутри транзакции: удаление старых окон и вставка новых атомарны
func (r *Repository) ReplaceForInstructor(ctx context.Context, instructorID int64, windows []*domain.AvailabilityWindow) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	deleteQuery, deleteArgs, err := psqlbuilder.Delete("availability_windows").
		Where(squirrel.Eq{"instructor_id": instructorID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceForInstructor - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceForInstructor - execute delete: %v", ErrExecQuery, err)
	}

	if len(windows) == 0 {
		return nil
	}

	insertBuilder := psqlbuilder.Insert("availability_windows").
		Columns("instructor_id", "day_of_week", "start_time", "end_time")

	for _, w := range windows {
		insertBuilder = insertBuilder.Values(instructorID, w.DayOfWeek, w.StartTime, w.EndTime)
	}

	insertQuery, insertArgs, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceForInstructor - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceForInstructor - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

func (r *Repository) queryWindows(ctx context.Context, executor dbmetrics.DBExecutor, query string, args []interface{}, op string) ([]*domain.AvailabilityWindow, error) {
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	windows := make([]*domain.AvailabilityWindow, 0)
	for rows.Next() {
		var w domain.AvailabilityWindow
		var createdAt sql.NullTime

		if err := rows.Scan(
			&w.ID,
			&w.InstructorID,
			&w.DayOfWeek,
			&w.StartTime,
			&w.EndTime,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}

		w.CreatedAt = createdAt.Time
		windows = append(windows, &w)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return windows, nil
}
