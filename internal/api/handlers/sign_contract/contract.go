package sign_contract

import (
	"context"

	"github.com/felipemsilva2/vrumi-connect-2026-sub003/internal/domain"
)

type ContractService interface {
	Sign(ctx context.Context, bookingID int64, studentID int64, signature string) (*domain.Contract, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
