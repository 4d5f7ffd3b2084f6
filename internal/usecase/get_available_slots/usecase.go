package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/felipemsilva2/vrumi-connect-2026-sub003/internal/domain"
	instructorRepo "github.com/felipemsilva2/vrumi-connect-2026-sub003/internal/infra/storage/instructor"
	"github.com/felipemsilva2/vrumi-connect-2026-sub003/pkg/types"
)

// UseCase use case для получения доступных слотов инструктора
type UseCase struct {
	availabilityRepo   AvailabilityRepository
	bookingRepo        BookingRepository
	instructorRepo     InstructorRepository
	timeProvider       TimeProvider
	advanceBookingDays int
	logger             Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	availabilityRepo AvailabilityRepository,
	bookingRepo BookingRepository,
	instructorRepo InstructorRepository,
	advanceBookingDays int,
	logger Logger,
) *UseCase {
	return &UseCase{
		availabilityRepo:   availabilityRepo,
		bookingRepo:        bookingRepo,
		instructorRepo:     instructorRepo,
		timeProvider:       &RealTimeProvider{},
		advanceBookingDays: advanceBookingDays,
		logger:             logger,
	}
}

// WithTimeProvider заменяет провайдер времени (для тестирования)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case получения доступных слотов
// Слоты выводятся из недельного расписания инструктора: окна дня недели
// нарезаются с шагом длительности занятия, затем вычитаются времена,
// занятые активными бронированиями
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: user=%d, instructor=%d, date=%s",
		req.UserID, req.InstructorID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем инструктора - он задаёт длительность, цену и таймзону
	instructor, err := uc.instructorRepo.GetByID(ctx, req.InstructorID)
	if err != nil {
		if errors.Is(err, instructorRepo.ErrInstructorNotFound) {
			uc.logger.Warn("GetAvailableSlots: instructor id=%d not found", req.InstructorID)
			return nil, ErrInstructorNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get instructor id=%d: %v", req.InstructorID, err)
		return nil, fmt.Errorf("%w: failed to get instructor: %v", ErrInternal, err)
	}

	// 3. Текущее время в таймзоне инструктора - горизонт считается в его днях
	now := uc.timeProvider.Now().In(instructor.Location())

	// 4. Валидация даты с учетом горизонта бронирования
	if err := validateDate(req.Date, now, uc.advanceBookingDays); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	// 5. Получаем окна доступности на день недели
	windows, err := uc.availabilityRepo.GetByInstructorAndWeekday(ctx, req.InstructorID, int(req.Date.Weekday()))
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get windows: %v", err)
		return nil, fmt.Errorf("%w: failed to get windows: %v", ErrInternal, err)
	}

	if len(windows) == 0 {
		uc.logger.Info("GetAvailableSlots: instructor=%d has no windows on %s",
			req.InstructorID, req.Date.Format(domain.DateFormat))
		return uc.buildResponse(req, instructor, []types.TimeString{}), nil
	}

	// 6. Генерируем слоты по окнам дня
	slots, err := generateDaySlots(windows, instructor.LessonDurationMinutes)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
	}

	// 7. Вычитаем времена, занятые активными бронированиями
	occupied, err := uc.bookingRepo.GetActiveTimesByInstructorAndDate(ctx, req.InstructorID, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get occupied times: %v", err)
		return nil, fmt.Errorf("%w: failed to get occupied times: %v", ErrInternal, err)
	}
	slots = subtractOccupied(slots, occupied)

	// 8. На сегодняшнюю дату убираем уже начавшиеся слоты
	if isSameDay(req.Date, now) {
		slots = filterPastSlots(slots, now)
	}

	uc.logger.Info("GetAvailableSlots: generated %d slots for instructor=%d, date=%s",
		len(slots), req.InstructorID, req.Date.Format(domain.DateFormat))

	return uc.buildResponse(req, instructor, slots), nil
}

func (uc *UseCase) buildResponse(req *Request, instructor *domain.Instructor, slots []types.TimeString) *Response {
	return &Response{
		InstructorID:    req.InstructorID,
		Date:            req.Date,
		DurationMinutes: instructor.LessonDurationMinutes,
		Price:           instructor.PricePerLesson.String(),
		Slots:           slots,
	}
}
