package domain

import (
	"time"

	"github.com/felipemsilva2/vrumi-connect-2026-sub003/pkg/types"
)

// TransactionType тип записи в леджере
type TransactionType string

const (
	TxEarning    TransactionType = "earning"
	TxAdjustment TransactionType = "adjustment"
	TxRefund     TransactionType = "refund"
)

// TransactionStatus статус записи в леджере
type TransactionStatus string

const (
	// TxStatusCompleted движение денег завершено
	TxStatusCompleted TransactionStatus = "completed"
	// TxStatusPendingReconciliation внешний платёжный сервис не подтвердил операцию,
	// запись ждёт сверки; отмена бронирования при этом всё равно авторитетна
	TxStatusPendingReconciliation TransactionStatus = "pending_reconciliation"
)

// Transaction запись леджера - append-only, никогда не изменяется
// Исправления делаются компенсирующими записями (type = adjustment)
type Transaction struct {
	ID           int64
	InstructorID int64
	BookingID    int64
	Amount       types.Money
	Type         TransactionType
	Status       TransactionStatus
	CreatedAt    time.Time
}

// SplitPrice вычисляет разделение цены между платформой и инструктором
// Комиссия округляется до цента (half-up), остаток отдаётся инструктору -
// поэтому price == fee + instructorAmount выполняется точно, без утечек округления
func SplitPrice(price types.Money, feeRateBasisPoints int64) (fee, instructorAmount types.Money) {
	fee = price.MulRate(feeRateBasisPoints)
	instructorAmount = price.Sub(fee)
	return fee, instructorAmount
}
