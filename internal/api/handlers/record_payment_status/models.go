package record_payment_status

// RecordPaymentStatusRequest HTTP request model
// status - одно из: pending, completed, failed, refunded
type RecordPaymentStatusRequest struct {
	Status string `json:"status"`
}
