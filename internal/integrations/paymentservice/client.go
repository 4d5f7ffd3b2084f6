package paymentservice

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с PaymentService
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента PaymentService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// RequestRefund инициирует возврат средств по бронированию
func (c *Client) RequestRefund(ctx context.Context, request RefundRequest) (*RefundResponse, error) {
	url := fmt.Sprintf("%s/internal/refunds", c.baseURL)

	body, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to marshal request: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK, http.StatusAccepted:
		// Продолжаем обработку
	case http.StatusNotFound:
		return nil, ErrPaymentNotFound
	default:
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}

	// Парсим ответ
	var refund RefundResponse
	if err := json.NewDecoder(resp.Body).Decode(&refund); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &refund, nil
}

// RequestRefundWithGracefulDegradation инициирует возврат с обработкой недоступности сервиса
// При транспортных и внутренних ошибках PaymentService отмена не блокируется:
// возвращается ErrServiceDegraded, а возврат средств уходит в ручную сверку
func (c *Client) RequestRefundWithGracefulDegradation(ctx context.Context, request RefundRequest) (*RefundResponse, error) {
	refund, err := c.RequestRefund(ctx, request)
	if err != nil {
		// Бизнес-ошибки не деградируем: их должен увидеть вызывающий код
		if errors.Is(err, ErrPaymentNotFound) {
			return nil, err
		}

		c.log.Warn("PaymentService degraded, refund queued for reconciliation: bookingID=%d, error=%v",
			request.BookingID, err)
		return nil, fmt.Errorf("%w: %v", ErrServiceDegraded, err)
	}

	return refund, nil
}
