package contracts

import (
	"context"
	"time"

	"github.com/felipemsilva2/vrumi-connect-2026-sub003/internal/domain"
)

// ContractRepository интерфейс репозитория договоров
type ContractRepository interface {
	GetByBookingID(ctx context.Context, bookingID int64) (*domain.Contract, error)
	Sign(ctx context.Context, bookingID int64, signature string, signedAt time.Time) error
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	SetContractSigned(ctx context.Context, id int64, signedAt time.Time) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
