package domain

// Значения по умолчанию для бизнес-параметров
const (
	DefaultFeeRateBasisPoints      = 1500 // 15%
	DefaultAdvanceBookingDays      = 30
	DefaultCancellationWindowHours = 24
)

// Ограничения для валидации
const (
	MinLessonDurationMinutes    = 15
	MaxLessonDurationMinutes    = 240
	MaxCancellationReasonLength = 500
	MaxSignatureLength          = 200
)

// Форматы даты и времени
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses статусы, при которых бронирование занимает слот
// Ровно эти статусы входят в частичный уникальный индекс по
// (instructor_id, scheduled_date, scheduled_time)
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}
