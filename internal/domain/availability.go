package domain

import (
	"time"

	"github.com/felipemsilva2/vrumi-connect-2026-sub003/pkg/types"
)

// AvailabilityWindow еженедельное окно доступности инструктора
// Инвариант: StartTime < EndTime; окна одного дня не пересекаются
// (валидируется при сохранении расписания)
type AvailabilityWindow struct {
	ID           int64
	InstructorID int64
	DayOfWeek    int // 0 = воскресенье ... 6 = суббота, как time.Weekday
	StartTime    types.TimeString
	EndTime      types.TimeString
	CreatedAt    time.Time
}

// IsValid проверяет инвариант окна
func (w *AvailabilityWindow) IsValid() bool {
	if w.DayOfWeek < 0 || w.DayOfWeek > 6 {
		return false
	}
	if w.StartTime.Validate() != nil || w.EndTime.Validate() != nil {
		return false
	}
	return w.StartTime.IsBefore(w.EndTime)
}

// Overlaps проверяет пересечение с другим окном того же дня
// Граничащие окна (конец одного == начало другого) пересечением не считаются
func (w *AvailabilityWindow) Overlaps(other *AvailabilityWindow) bool {
	if w.DayOfWeek != other.DayOfWeek {
		return false
	}
	return w.StartTime.IsBefore(other.EndTime) && other.StartTime.IsBefore(w.EndTime)
}
