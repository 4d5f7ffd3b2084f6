package paymentservice

import "errors"

var (
	// ErrPaymentNotFound возвращается, когда платёж по бронированию не найден
	ErrPaymentNotFound = errors.New("paymentservice client: payment not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("paymentservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("paymentservice client: invalid response")

	// ErrServiceDegraded возвращается при применении graceful degradation
	// Указывает, что PaymentService недоступен; возврат денег уходит в сверку,
	// но отмена бронирования при этом не блокируется
	ErrServiceDegraded = errors.New("paymentservice unavailable: graceful degradation applied")
)
