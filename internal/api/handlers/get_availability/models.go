package get_availability

import (
	"github.com/felipemsilva2/vrumi-connect-2026-sub003/internal/domain"
)

// WindowResponse окно доступности в HTTP ответе
type WindowResponse struct {
	DayOfWeek int    `json:"dayOfWeek"` // 0 = воскресенье ... 6 = суббота
	StartTime string `json:"startTime"` // "09:00"
	EndTime   string `json:"endTime"`   // "18:00"
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
