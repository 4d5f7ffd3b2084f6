package record_payment_status

import (
	"context"

	"github.com/felipemsilva2/vrumi-connect-2026-sub003/internal/domain"
	"github.com/felipemsilva2/vrumi-connect-2026-sub003/internal/service/bookings/models"
)

type BookingService interface {
	RecordPaymentStatus(ctx context.Context, bookingID int64, status domain.PaymentStatus) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
