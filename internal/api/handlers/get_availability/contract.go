package get_availability

import (
	"context"

	"github.com/felipemsilva2/vrumi-connect-2026-sub003/internal/domain"
)

type AvailabilityService interface {
	GetWindows(ctx context.Context, instructorID int64) ([]*domain.AvailabilityWindow, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
