package get_available_slots

import (
	"time"

	"github.com/felipemsilva2/vrumi-connect-2026-sub003/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	UserID       int64     // ID пользователя (для логирования, не влияет на результат)
	InstructorID int64     // ID инструктора
	Date         time.Time // Дата для получения слотов (без времени)
}

// Response модель ответа со списком доступных слотов
// Все слоты одного инструктора имеют одинаковую длительность и цену -
// они задаются профилем инструктора, а не отдельным слотом
type Response struct {
	InstructorID    int64              // ID инструктора
	Date            time.Time          // Дата, на которую запрашивались слоты
	DurationMinutes int                // Длительность занятия в минутах
	Price           string             // Цена занятия, например "150.00"
	Slots           []types.TimeString // Времена начала свободных слотов по возрастанию
}
