package update_availability

import (
	"context"

	"github.com/felipemsilva2/vrumi-connect-2026-sub003/internal/domain"
)

type AvailabilityService interface {
	ReplaceWindows(ctx context.Context, instructorID int64, windows []*domain.AvailabilityWindow, actorID int64, role domain.ActorRole) error
	GetWindows(ctx context.Context, instructorID int64) ([]*domain.AvailabilityWindow, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
