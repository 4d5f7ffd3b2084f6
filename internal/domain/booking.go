package domain

import (
	"time"

	"github.com/felipemsilva2/vrumi-connect-2026-sub003/pkg/types"
)

// BookingStatus статус бронирования (закрытое перечисление)
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
	StatusDisputed  BookingStatus = "disputed"
)

// PaymentStatus статус оплаты бронирования
// Сервис только фиксирует переходы, о которых сообщает платёжный шлюз
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
	PaymentRefunded  PaymentStatus = "refunded"
)

// BookingEvent событие жизненного цикла бронирования
type BookingEvent string

const (
	EventAccept   BookingEvent = "accept"
	EventCancel   BookingEvent = "cancel"
	EventComplete BookingEvent = "complete"
	EventDispute  BookingEvent = "dispute"
)

// ActorRole роль инициатора операции
type ActorRole string

const (
	RoleStudent    ActorRole = "student"
	RoleInstructor ActorRole = "instructor"
	RoleAdmin      ActorRole = "admin"
)

// transitions таблица допустимых переходов состояний
// Переход, которого здесь нет, недопустим по построению
var transitions = map[BookingStatus]map[BookingEvent]BookingStatus{
	StatusPending: {
		EventAccept: StatusConfirmed,
		EventCancel: StatusCancelled,
	},
	StatusConfirmed: {
		EventCancel:   StatusCancelled,
		EventComplete: StatusCompleted,
		EventDispute:  StatusDisputed,
	},
	StatusCompleted: {
		EventDispute: StatusDisputed,
	},
}

// NextStatus возвращает целевой статус для события из текущего статуса
// ok == false означает недопустимый переход
func NextStatus(current BookingStatus, event BookingEvent) (BookingStatus, bool) {
	byEvent, ok := transitions[current]
	if !ok {
		return "", false
	}
	next, ok := byEvent[event]
	return next, ok
}

// ParseBookingEvent валидирует строку события
func ParseBookingEvent(s string) (BookingEvent, bool) {
	switch BookingEvent(s) {
	case EventAccept, EventCancel, EventComplete, EventDispute:
		return BookingEvent(s), true
	default:
		return "", false
	}
}

// ParsePaymentStatus валидирует строку статуса оплаты
func ParsePaymentStatus(s string) (PaymentStatus, bool) {
	switch PaymentStatus(s) {
	case PaymentPending, PaymentCompleted, PaymentFailed, PaymentRefunded:
		return PaymentStatus(s), true
	default:
		return "", false
	}
}

// ParseActorRole валидирует строку роли
func ParseActorRole(s string) (ActorRole, bool) {
	switch ActorRole(s) {
	case RoleStudent, RoleInstructor, RoleAdmin:
		return ActorRole(s), true
	default:
		return "", false
	}
}

// Booking бронирование занятия
// Расписание и деньги замораживаются в момент резервирования -
// последующие изменения тарифа или длительности у инструктора
// не затрагивают существующие бронирования
type Booking struct {
	ID           int64
	StudentID    int64
	InstructorID int64

	ScheduledDate   time.Time
	ScheduledTime   types.TimeString
	DurationMinutes int

	Price            types.Money
	PlatformFee      types.Money
	InstructorAmount types.Money

	Status        BookingStatus
	PaymentStatus PaymentStatus

	CancellationReason *string
	CancelledBy        *string
	CancelledAt        *time.Time

	ContractSignedAt *time.Time
	CompletedAt      *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive возвращает true, если бронирование занимает слот
func (b *Booking) IsActive() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsTerminal возвращает true, если бронирование в терминальном статусе
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusCompleted || b.Status == StatusCancelled
}

// IsParty проверяет, что пользователь является стороной бронирования
func (b *Booking) IsParty(userID int64) bool {
	return b.StudentID == userID || b.InstructorID == userID
}

// ScheduledStart возвращает момент начала занятия в указанной таймзоне
func (b *Booking) ScheduledStart(loc *time.Location) (time.Time, error) {
	minutes, err := b.ScheduledTime.Minutes()
	if err != nil {
		return time.Time{}, err
	}
	y, m, d := b.ScheduledDate.Date()
	return time.Date(y, m, d, minutes/60, minutes%60, 0, 0, loc), nil
}
