package models

import (
	"errors"
	"time"

	"github.com/felipemsilva2/vrumi-connect-2026-sub003/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// TransitionRequest запрос на переход жизненного цикла бронирования
type TransitionRequest struct {
	BookingID int64
	Event     domain.BookingEvent
	ActorID   int64
	Role      domain.ActorRole
	Reason    string
}

// GetPartyBookingsRequest запрос на получение бронирований стороны
type GetPartyBookingsRequest struct {
	PartyID int64
	ActorID int64
	Role    domain.ActorRole
	Status  *string
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID                 int64      `json:"id"`
	StudentID          int64      `json:"studentId"`
	InstructorID       int64      `json:"instructorId"`
	ScheduledDate      string     `json:"scheduledDate"` // "2026-03-15"
	ScheduledTime      string     `json:"scheduledTime"` // "10:00"
	DurationMinutes    int        `json:"durationMinutes"`
	Price              string     `json:"price"` // "150.00"
	PlatformFee        string     `json:"platformFee"`
	InstructorAmount   string     `json:"instructorAmount"`
	Status             string     `json:"status"`
	PaymentStatus      string     `json:"paymentStatus"`
	CancellationReason *string    `json:"cancellationReason,omitempty"`
	CancelledBy        *string    `json:"cancelledBy,omitempty"`
	CancelledAt        *time.Time `json:"cancelledAt,omitempty"`
	ContractSignedAt   *time.Time `json:"contractSignedAt,omitempty"`
	CompletedAt        *time.Time `json:"completedAt,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []*BookingResponse `json:"bookings"`
	Total    int                `json:"total"`
}

// FromDomainBooking конвертирует domain.Booking в BookingResponse
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	return &BookingResponse{
		ID:                 b.ID,
		StudentID:          b.StudentID,
		InstructorID:       b.InstructorID,
		ScheduledDate:      b.ScheduledDate.Format(domain.DateFormat),
		ScheduledTime:      b.ScheduledTime.String(),
		DurationMinutes:    b.DurationMinutes,
		Price:              b.Price.String(),
		PlatformFee:        b.PlatformFee.String(),
		InstructorAmount:   b.InstructorAmount.String(),
		Status:             string(b.Status),
		PaymentStatus:      string(b.PaymentStatus),
		CancellationReason: b.CancellationReason,
		CancelledBy:        b.CancelledBy,
		CancelledAt:        b.CancelledAt,
		ContractSignedAt:   b.ContractSignedAt,
		CompletedAt:        b.CompletedAt,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список domain.Booking в BookingListResponse
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	result := make([]*BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		result = append(result, FromDomainBooking(b))
	}
	return &BookingListResponse{
		Bookings: result,
		Total:    len(result),
	}
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus
func ToDomainBookingStatus(s string) (domain.BookingStatus, error) {
	switch domain.BookingStatus(s) {
	case domain.StatusPending, domain.StatusConfirmed, domain.StatusCompleted,
		domain.StatusCancelled, domain.StatusDisputed:
		return domain.BookingStatus(s), nil
	default:
		return "", ErrInvalidStatus
	}
}
