package get_earnings_summary

import (
	"context"

	"github.com/felipemsilva2/vrumi-connect-2026-sub003/internal/domain"
	"github.com/felipemsilva2/vrumi-connect-2026-sub003/internal/service/ledger/models"
)

type LedgerService interface {
	EarningsSummary(ctx context.Context, instructorID int64, actorID int64, role domain.ActorRole) (*models.EarningsSummaryResponse, error)
	GetTransactions(ctx context.Context, instructorID int64, actorID int64, role domain.ActorRole) (*models.TransactionListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
