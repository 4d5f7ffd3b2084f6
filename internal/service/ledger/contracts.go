package ledger

import (
	"context"
	"time"

	"github.com/felipemsilva2/vrumi-connect-2026-sub003/internal/domain"
	"github.com/felipemsilva2/vrumi-connect-2026-sub003/pkg/types"
)

// LedgerRepository интерфейс репозитория леджера
type LedgerRepository interface {
	GetByInstructor(ctx context.Context, instructorID int64) ([]*domain.Transaction, error)
	SumEarnings(ctx context.Context, instructorID int64, since *time.Time) (types.Money, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	SumPendingInstructorAmount(ctx context.Context, instructorID int64) (types.Money, error)
}

// InstructorRepository интерфейс репозитория инструкторов
type InstructorRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Instructor, error)
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
