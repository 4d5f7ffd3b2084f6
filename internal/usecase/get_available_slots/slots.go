package get_available_slots

import (
	"sort"
	"time"

	"github.com/felipemsilva2/vrumi-connect-2026-sub003/internal/domain"
	"github.com/felipemsilva2/vrumi-connect-2026-sub003/pkg/types"
)

// generateWindowSlots генерирует времена начала слотов внутри одного окна
// Шаг равен длительности занятия; слот, чей конец выходит за границу окна,
// не генерируется
func generateWindowSlots(window *domain.AvailabilityWindow, durationMinutes int) ([]types.TimeString, error) {
	slots := make([]types.TimeString, 0)
	current := window.StartTime

	for current.IsBefore(window.EndTime) {
		slotEnd, err := current.AddMinutes(durationMinutes)
		if err != nil {
			// Слот упёрся в конец суток
			break
		}
		if slotEnd.IsAfter(window.EndTime) {
			break
		}

		slots = append(slots, current)

		current, err = current.AddMinutes(durationMinutes)
		if err != nil {
			break
		}
	}

	return slots, nil
}

// generateDaySlots генерирует слоты по всем окнам дня и сортирует по возрастанию
// Окна одного дня не пересекаются (валидируется при сохранении расписания),
// поэтому дубликаты здесь невозможны, но дедупликация оставлена как страховка
// от рассинхронизации данных
func generateDaySlots(windows []*domain.AvailabilityWindow, durationMinutes int) ([]types.TimeString, error) {
	seen := make(map[types.TimeString]struct{})
	slots := make([]types.TimeString, 0)

	for _, window := range windows {
		windowSlots, err := generateWindowSlots(window, durationMinutes)
		if err != nil {
			return nil, err
		}
		for _, slot := range windowSlots {
			if _, ok := seen[slot]; ok {
				continue
			}
			seen[slot] = struct{}{}
			slots = append(slots, slot)
		}
	}

	sort.Slice(slots, func(i, j int) bool {
		return slots[i].IsBefore(slots[j])
	})

	return slots, nil
}

// subtractOccupied убирает из слотов времена, занятые активными бронированиями
func subtractOccupied(slots []types.TimeString, occupied []types.TimeString) []types.TimeString {
	if len(occupied) == 0 {
		return slots
	}

	taken := make(map[types.TimeString]struct{}, len(occupied))
	for _, t := range occupied {
		taken[t] = struct{}{}
	}

	free := make([]types.TimeString, 0, len(slots))
	for _, slot := range slots {
		if _, ok := taken[slot]; ok {
			continue
		}
		free = append(free, slot)
	}

	return free
}

// filterPastSlots убирает слоты, которые на сегодняшнюю дату уже начались
func filterPastSlots(slots []types.TimeString, now time.Time) []types.TimeString {
	cutoff := types.NewTimeString(now)

	future := make([]types.TimeString, 0, len(slots))
	for _, slot := range slots {
		if slot.IsBefore(cutoff) {
			continue
		}
		future = append(future, slot)
	}

	return future
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
// Дата из запроса парсится без таймзоны (UTC-полночь), поэтому сравниваем
// её календарные компоненты в таймзоне "сейчас" - иначе сегодняшняя дата
// ложно считалась бы прошедшей в зонах западнее UTC
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, now.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
