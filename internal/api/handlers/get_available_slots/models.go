package get_available_slots

import (
	"github.com/felipemsilva2/vrumi-connect-2026-sub003/internal/domain"
	getAvailableSlots "github.com/felipemsilva2/vrumi-connect-2026-sub003/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	InstructorID    int64    `json:"instructorId"`
	Date            string   `json:"date"`            // "2026-03-15"
	DurationMinutes int      `json:"durationMinutes"` // длительность занятия
	Price           string   `json:"price"`           // цена занятия, "150.00"
	Slots           []string `json:"slots"`           // времена начала по возрастанию
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]string, 0, len(resp.Slots))
	for _, slot := range resp.Slots {
		slots = append(slots, slot.String())
	}

	return &AvailableSlotsResponse{
		InstructorID:    resp.InstructorID,
		Date:            resp.Date.Format(domain.DateFormat),
		DurationMinutes: resp.DurationMinutes,
		Price:           resp.Price,
		Slots:           slots,
	}
}
