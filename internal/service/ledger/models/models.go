package models

import (
	"time"

	"github.com/felipemsilva2/vrumi-connect-2026-sub003/internal/domain"
)

// EarningsSummaryResponse сводка заработка инструктора
type EarningsSummaryResponse struct {
	InstructorID int64  `json:"instructorId"`
	Total        string `json:"total"`     // заработано за всё время, "1234.00"
	Pending      string `json:"pending"`   // подтверждённые, но ещё не оплаченные занятия
	ThisMonth    string `json:"thisMonth"` // заработано с начала текущего месяца
}

// TransactionResponse запись леджера
type TransactionResponse struct {
	ID        int64     `json:"id"`
	BookingID int64     `json:"bookingId"`
	Amount    string    `json:"amount"`
	Type      string    `json:"type"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// TransactionListResponse ответ со списком записей леджера
type TransactionListResponse struct {
	Transactions []*TransactionResponse `json:"transactions"`
	Total        int                    `json:"total"`
}

// FromDomainTransaction конвертирует domain.Transaction в TransactionResponse
func FromDomainTransaction(tx *domain.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:        tx.ID,
		BookingID: tx.BookingID,
		Amount:    tx.Amount.String(),
		Type:      string(tx.Type),
		Status:    string(tx.Status),
		CreatedAt: tx.CreatedAt,
	}
}

// FromDomainTransactionList конвертирует список domain.Transaction
func FromDomainTransactionList(txs []*domain.Transaction) *TransactionListResponse {
	result := make([]*TransactionResponse, 0, len(txs))
	for _, tx := range txs {
		result = append(result, FromDomainTransaction(tx))
	}
	return &TransactionListResponse{
		Transactions: result,
		Total:        len(result),
	}
}
