package get_booking

import (
	"context"

	"github.com/felipemsilva2/vrumi-connect-2026-sub003/internal/domain"
	"github.com/felipemsilva2/vrumi-connect-2026-sub003/internal/service/bookings/models"
)

type BookingService interface {
	GetByID(ctx context.Context, id int64, actorID int64, role domain.ActorRole) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
