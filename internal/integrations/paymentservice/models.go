package paymentservice

import "github.com/felipemsilva2/vrumi-connect-2026-sub003/pkg/types"

// RefundRequest запрос на возврат средств по бронированию
type RefundRequest struct {
	BookingID int64       `json:"booking_id"`
	Amount    types.Money `json:"amount"`
	Reason    string      `json:"reason"`
}

// RefundResponse ответ платёжного сервиса на запрос возврата
type RefundResponse struct {
	RefundID string `json:"refund_id"`
	Status   string `json:"status"`
}

// ErrorResponse модель ошибки от PaymentService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
