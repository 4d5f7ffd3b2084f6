package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/felipemsilva2/vrumi-connect-2026-sub003/internal/domain"
	"github.com/felipemsilva2/vrumi-connect-2026-sub003/pkg/dbmetrics"
	"github.com/felipemsilva2/vrumi-connect-2026-sub003/pkg/psqlbuilder"
	"github.com/felipemsilva2/vrumi-connect-2026-sub003/pkg/types"
)

// pgUniqueViolation код ошибки PostgreSQL для нарушения уникального ограничения
const pgUniqueViolation = "23505"

// activeSlotIndex имя частичного уникального индекса, охраняющего слот
const activeSlotIndex = "uniq_active_booking_slot"

var bookingColumns = []string{
	"id",
	"student_id",
	"instructor_id",
	"scheduled_date",
	"scheduled_time",
	"duration_minutes",
	"price",
	"platform_fee",
	"instructor_amount",
	"status",
	"payment_status",
	"cancellation_reason",
	"cancelled_by",
	"cancelled_at",
	"contract_signed_at",
	"completed_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Reserve атомарно резервирует слот: вставка и проверка уникальности -
// одна операция с точки зрения БД, никакого отдельного check-then-insert.
// Частичный уникальный индекс по (instructor_id, scheduled_date, scheduled_time)
// WHERE status IN ('pending', 'confirmed') гарантирует, что при конкурентных
// вставках ровно одна пройдёт, остальные получат ErrSlotTaken
func (r *Repository) Reserve(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"student_id",
			"instructor_id",
			"scheduled_date",
			"scheduled_time",
			"duration_minutes",
			"price",
			"platform_fee",
			"instructor_amount",
			"status",
			"payment_status",
		).
		Values(
			booking.StudentID,
			booking.InstructorID,
			booking.ScheduledDate,
			booking.ScheduledTime,
			booking.DurationMinutes,
			booking.Price,
			booking.PlatformFee,
			booking.InstructorAmount,
			booking.Status,
			booking.PaymentStatus,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Reserve - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation && pqErr.Constraint == activeSlotIndex {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("%w: Reserve - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := r.scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetActiveTimesByInstructorAndDate возвращает времена начала активных бронирований
// инструктора на дату - занятые слоты для генератора
func (r *Repository) GetActiveTimesByInstructorAndDate(ctx context.Context, instructorID int64, date time.Time) ([]types.TimeString, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	activeStatusStrings := make([]string, len(domain.ActiveStatuses))
	for i, s := range domain.ActiveStatuses {
		activeStatusStrings[i] = string(s)
	}

	query, args, err := psqlbuilder.Select("scheduled_time").
		From("bookings").
		Where(squirrel.Eq{"instructor_id": instructorID}).
		Where(squirrel.Eq{"scheduled_date": date}).
		Where(squirrel.Eq{"status": activeStatusStrings}).
		OrderBy("scheduled_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveTimesByInstructorAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveTimesByInstructorAndDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	times := make([]types.TimeString, 0)
	for rows.Next() {
		var t types.TimeString
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("%w: GetActiveTimesByInstructorAndDate - scan time: %v", ErrScanRow, err)
		}
		times = append(times, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetActiveTimesByInstructorAndDate - rows error: %v", ErrScanRow, err)
	}

	return times, nil
}

// GetByStudentID получает историю бронирований студента
// Опционально фильтрует по статусу
func (r *Repository) GetByStudentID(ctx context.Context, studentID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	return r.getByParty(ctx, "student_id", studentID, status)
}

// GetByInstructorID получает историю бронирований инструктора
// Опционально фильтрует по статусу
func (r *Repository) GetByInstructorID(ctx context.Context, instructorID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	return r.getByParty(ctx, "instructor_id", instructorID, status)
}

func (r *Repository) getByParty(ctx context.Context, column string, id int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{column: id}).
		OrderBy("scheduled_date DESC, scheduled_time DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getByParty - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getByParty - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// UpdateStatus переводит бронирование из статуса from в статус to
// Обновление условное: если статус уже изменился конкурентным запросом,
// затронется 0 строк и вернётся ErrStatusConflict - молчаливой перезаписи нет
func (r *Repository) UpdateStatus(ctx context.Context, id int64, from, to domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", to).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": from}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	return r.execConditional(ctx, executor, query, args, "UpdateStatus", id)
}

// Cancel отменяет бронирование из статуса from с указанием причины и инициатора
func (r *Repository) Cancel(ctx context.Context, id int64, from domain.BookingStatus, reason string, cancelledBy string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_by", cancelledBy).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": from}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	return r.execConditional(ctx, executor, query, args, "Cancel", id)
}

// Complete помечает подтверждённое бронирование завершённым
func (r *Repository) Complete(ctx context.Context, id int64, completedAt time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCompleted).
		Set("completed_at", completedAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": domain.StatusConfirmed}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Complete - build update query: %v", ErrBuildQuery, err)
	}

	return r.execConditional(ctx, executor, query, args, "Complete", id)
}

// SetPaymentStatus обновляет статус оплаты бронирования
func (r *Repository) SetPaymentStatus(ctx context.Context, id int64, status domain.PaymentStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("payment_status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetPaymentStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetPaymentStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetPaymentStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// SetContractSigned фиксирует момент подписания договора на бронировании
func (r *Repository) SetContractSigned(ctx context.Context, id int64, signedAt time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("contract_signed_at", signedAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetContractSigned - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetContractSigned - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetContractSigned - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// SumPendingInstructorAmount суммирует замороженные выплаты инструктора
// по подтверждённым, но ещё не оплаченным бронированиям ("pending" в сводке доходов)
func (r *Repository) SumPendingInstructorAmount(ctx context.Context, instructorID int64) (types.Money, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COALESCE(SUM(instructor_amount), 0)").
		From("bookings").
		Where(squirrel.Eq{"instructor_id": instructorID}).
		Where(squirrel.Eq{"status": domain.StatusConfirmed}).
		Where(squirrel.NotEq{"payment_status": domain.PaymentCompleted}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: SumPendingInstructorAmount - build select query: %v", ErrBuildQuery, err)
	}

	var sum types.Money
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&sum); err != nil {
		return 0, fmt.Errorf("%w: SumPendingInstructorAmount - scan sum: %v", ErrScanRow, err)
	}

	return sum, nil
}

func (r *Repository) execConditional(ctx context.Context, executor DBExecutor, query string, args []interface{}, op string, id int64) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	// 0 строк: либо бронирования нет, либо его статус изменился конкурентно
	// Различаем эти случаи отдельным чтением
	if rowsAffected == 0 {
		if _, getErr := r.GetByID(ctx, id); errors.Is(getErr, ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		return ErrStatusConflict
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.StudentID,
		&booking.InstructorID,
		&booking.ScheduledDate,
		&booking.ScheduledTime,
		&booking.DurationMinutes,
		&booking.Price,
		&booking.PlatformFee,
		&booking.InstructorAmount,
		&booking.Status,
		&booking.PaymentStatus,
		&booking.CancellationReason,
		&booking.CancelledBy,
		&booking.CancelledAt,
		&booking.ContractSignedAt,
		&booking.CompletedAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := r.scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
