package get_instructor_bookings

import (
	"context"

	"github.com/felipemsilva2/vrumi-connect-2026-sub003/internal/service/bookings/models"
)

type BookingService interface {
	GetInstructorBookings(ctx context.Context, req *models.GetPartyBookingsRequest) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
