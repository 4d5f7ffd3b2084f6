package create_booking

import (
	"fmt"
	"time"

	"github.com/felipemsilva2/vrumi-connect-2026-sub003/internal/domain"
	"github.com/felipemsilva2/vrumi-connect-2026-sub003/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.StudentID <= 0 {
		return fmt.Errorf("%w: studentID must be positive", ErrInvalidInput)
	}

	if req.InstructorID <= 0 {
		return fmt.Errorf("%w: instructorID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid start time: %v", ErrInvalidInput, err)
	}

	if req.ExpectedPrice <= 0 {
		return fmt.Errorf("%w: expected price must be positive", ErrInvalidInput)
	}

	return nil
}

// validateDate проверяет, что дата попадает в горизонт бронирования
func validateDate(requestDate time.Time, now time.Time, advanceBookingDays int) error {
	dateOnly := time.Date(requestDate.Year(), requestDate.Month(), requestDate.Day(), 0, 0, 0, 0, now.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	if dateOnly.Before(nowOnly) {
		return ErrInvalidDate
	}

	if advanceBookingDays == 0 {
		return nil
	}

	maxDate := nowOnly.AddDate(0, 0, advanceBookingDays)
	if dateOnly.After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, advanceBookingDays)
	}

	return nil
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// validateSlotExists проверяет, что запрошенное время совпадает с одним из
// слотов, порождаемых окнами дня: слоты идут от начала окна с шагом
// длительности занятия и не выходят за конец окна
func validateSlotExists(windows []*domain.AvailabilityWindow, start types.TimeString, durationMinutes int) error {
	for _, window := range windows {
		current := window.StartTime

		for current.IsBefore(window.EndTime) {
			slotEnd, err := current.AddMinutes(durationMinutes)
			if err != nil {
				break
			}
			if slotEnd.IsAfter(window.EndTime) {
				break
			}

			if current == start {
				return nil
			}

			current, err = current.AddMinutes(durationMinutes)
			if err != nil {
				break
			}
		}
	}

	return ErrInvalidTimeSlot
}
