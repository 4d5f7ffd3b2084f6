package get_earnings_summary

import (
	ledgerModels "github.com/felipemsilva2/vrumi-connect-2026-sub003/internal/service/ledger/models"
)

// EarningsSummaryResponse HTTP response model
// Суммы в формате "1234.00"; опционально включает записи леджера
type EarningsSummaryResponse struct {
	InstructorID int64                                `json:"instructorId"`
	Total        string                               `json:"total"`
	Pending      string                               `json:"pending"`
	ThisMonth    string                               `json:"thisMonth"`
	Transactions []*ledgerModels.TransactionResponse `json:"transactions,omitempty"`
}
