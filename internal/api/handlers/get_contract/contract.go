package get_contract

import (
	"context"

	"github.com/felipemsilva2/vrumi-connect-2026-sub003/internal/domain"
)

type ContractService interface {
	Get(ctx context.Context, bookingID int64, actorID int64, role domain.ActorRole) (*domain.Contract, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
