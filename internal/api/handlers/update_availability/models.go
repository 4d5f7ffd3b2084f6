package update_availability

import (
	"github.com/felipemsilva2/vrumi-connect-2026-sub003/internal/domain"
	"github.com/felipemsilva2/vrumi-connect-2026-sub003/pkg/types"
)

// WindowRequest окно доступности в HTTP запросе
type WindowRequest struct {
	DayOfWeek int    `json:"dayOfWeek"` // 0 = воскресенье ... 6 = суббота
	StartTime string `json:"startTime"` // "09:00"
	EndTime   string `json:"endTime"`   // "18:00"
}

// UpdateAvailabilityRequest HTTP request model
type UpdateAvailabilityRequest struct {
	Windows []WindowRequest `json:"windows"`
}

// ToDomainWindows конвертирует запрос в доменные окна
func (r *UpdateAvailabilityRequest) ToDomainWindows(instructorID int64) ([]*domain.AvailabilityWindow, error) {
	windows := make([]*domain.AvailabilityWindow, 0, len(r.Windows))
	for _, w := range r.Windows {
		start, err := types.NewTimeStringFromString(w.StartTime)
		if err != nil {
			return nil, err
		}
		end, err := types.NewTimeStringFromString(w.EndTime)
		if err != nil {
			return nil, err
		}
		windows = append(windows, &domain.AvailabilityWindow{
			InstructorID: instructorID,
			DayOfWeek:    w.DayOfWeek,
			StartTime:    start,
			EndTime:      end,
		})
	}
	return windows, nil
}

// WindowResponse окно доступности в HTTP ответе
type WindowResponse struct {
	DayOfWeek int    `json:"dayOfWeek"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	InstructorID int64            `json:"instructorId"`
	Windows      []WindowResponse `json:"windows"`
}

// FromDomainWindows конвертирует окна доступности в HTTP response
func FromDomainWindows(instructorID int64, windows []*domain.AvailabilityWindow) *AvailabilityResponse {
	result := make([]WindowResponse, 0, len(windows))
	for _, w := range windows {
		result = append(result, WindowResponse{
			DayOfWeek: w.DayOfWeek,
			StartTime: w.StartTime.String(),
			EndTime:   w.EndTime.String(),
		})
	}

	return &AvailabilityResponse{
		InstructorID: instructorID,
		Windows:      result,
	}
}
