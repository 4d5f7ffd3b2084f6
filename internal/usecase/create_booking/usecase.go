package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/felipemsilva2/vrumi-connect-2026-sub003/internal/domain"
	bookingRepo "github.com/felipemsilva2/vrumi-connect-2026-sub003/internal/infra/storage/booking"
	instructorRepo "github.com/felipemsilva2/vrumi-connect-2026-sub003/internal/infra/storage/instructor"
	identityClient "github.com/felipemsilva2/vrumi-connect-2026-sub003/internal/integrations/identityservice"
	"github.com/felipemsilva2/vrumi-connect-2026-sub003/internal/service/contracts"
	"github.com/felipemsilva2/vrumi-connect-2026-sub003/pkg/types"
)

// Config параметры политики бронирования
type Config struct {
	FeeRateBasisPoints      int64
	AdvanceBookingDays      int
	CancellationWindowHours int
}

// UseCase use case для создания бронирования
// Резервирование слота и создание договора атомарны: уникальность слота
// обеспечивает частичный уникальный индекс в БД, а не проверка перед вставкой
type UseCase struct {
	bookingRepo      BookingRepository
	availabilityRepo AvailabilityRepository
	instructorRepo   InstructorRepository
	contractRepo     ContractRepository
	renderer         ContractRenderer
	identityClient   IdentityServiceClient
	txManager        TransactionManager
	timeProvider     TimeProvider
	config           Config
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	availabilityRepo AvailabilityRepository,
	instructorRepo InstructorRepository,
	contractRepo ContractRepository,
	renderer ContractRenderer,
	identityClient IdentityServiceClient,
	txManager TransactionManager,
	config Config,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:      bookingRepo,
		availabilityRepo: availabilityRepo,
		instructorRepo:   instructorRepo,
		contractRepo:     contractRepo,
		renderer:         renderer,
		identityClient:   identityClient,
		txManager:        txManager,
		timeProvider:     &RealTimeProvider{},
		config:           config,
		logger:           logger,
	}
}

// WithTimeProvider заменяет провайдер времени (для тестирования)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case создания бронирования
// Использует сериализуемую транзакцию: вставка бронирования и создание
// договора либо фиксируются вместе, либо откатываются вместе. Гонка двух
// учеников за один слот разрешается уникальным индексом - выигрывает
// ровно один INSERT
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: student=%d, instructor=%d, date=%s, time=%s",
		req.StudentID, req.InstructorID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем инструктора - он задаёт цену, длительность и таймзону
	instructor, err := uc.instructorRepo.GetByID(ctx, req.InstructorID)
	if err != nil {
		if errors.Is(err, instructorRepo.ErrInstructorNotFound) {
			uc.logger.Warn("CreateBooking: instructor id=%d not found", req.InstructorID)
			return nil, ErrInstructorNotFound
		}
		uc.logger.Error("CreateBooking: failed to get instructor id=%d: %v", req.InstructorID, err)
		return nil, fmt.Errorf("%w: failed to get instructor: %v", ErrInternal, err)
	}

	// 3. Текущее время в таймзоне инструктора
	now := uc.timeProvider.Now().In(instructor.Location())

	// 4. Валидация даты с учетом горизонта бронирования
	if err := validateDate(req.Date, now, uc.config.AdvanceBookingDays); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return nil, err
	}

	// 5. На сегодняшнюю дату слот не должен быть в прошлом
	if isSameDay(req.Date, now) && req.StartTime.IsBefore(types.NewTimeString(now)) {
		uc.logger.Warn("CreateBooking: slot %s already started today", req.StartTime)
		return nil, ErrTooLateToBook
	}

	// 6. Время должно совпадать со слотом из расписания инструктора
	windows, err := uc.availabilityRepo.GetByInstructorAndWeekday(ctx, req.InstructorID, int(req.Date.Weekday()))
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get windows: %v", err)
		return nil, fmt.Errorf("%w: failed to get windows: %v", ErrInternal, err)
	}

	if err := validateSlotExists(windows, req.StartTime, instructor.LessonDurationMinutes); err != nil {
		uc.logger.Warn("CreateBooking: time=%s is not a valid slot for instructor=%d",
			req.StartTime, req.InstructorID)
		return nil, err
	}

	// 7. Подтверждение цены: ученик бронирует по цене, которую видел
	if req.ExpectedPrice != instructor.PricePerLesson {
		uc.logger.Warn("CreateBooking: price mismatch for instructor=%d: expected=%s, actual=%s",
			req.InstructorID, req.ExpectedPrice, instructor.PricePerLesson)
		return nil, ErrPriceMismatch
	}

	// 8. Разделение цены замораживается в момент резервирования
	fee, instructorAmount := domain.SplitPrice(instructor.PricePerLesson, uc.config.FeeRateBasisPoints)

	// 9. Профиль ученика - факты для договора
	student, err := uc.identityClient.GetUser(ctx, req.StudentID)
	if err != nil {
		if errors.Is(err, identityClient.ErrUserNotFound) {
			uc.logger.Warn("CreateBooking: student id=%d not found", req.StudentID)
			return nil, ErrStudentNotFound
		}
		uc.logger.Error("CreateBooking: failed to get student id=%d: %v", req.StudentID, err)
		return nil, fmt.Errorf("%w: failed to get student: %v", ErrInternal, err)
	}

	// 10. Резервируем слот и создаем договор в одной транзакции
	var result *domain.Booking

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking := &domain.Booking{
			StudentID:        req.StudentID,
			InstructorID:     req.InstructorID,
			ScheduledDate:    req.Date,
			ScheduledTime:    req.StartTime,
			DurationMinutes:  instructor.LessonDurationMinutes,
			Price:            instructor.PricePerLesson,
			PlatformFee:      fee,
			InstructorAmount: instructorAmount,
			Status:           domain.StatusPending,
			PaymentStatus:    domain.PaymentPending,
		}

		created, err := uc.bookingRepo.Reserve(txCtx, booking)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrSlotTaken) {
				uc.logger.Warn("CreateBooking: slot %s %s taken for instructor=%d",
					req.Date.Format(domain.DateFormat), req.StartTime, req.InstructorID)
				return ErrSlotNotAvailable
			}
			uc.logger.Error("CreateBooking: failed to reserve booking: %v", err)
			return fmt.Errorf("%w: failed to reserve booking: %v", ErrInternal, err)
		}

		// Рендерим договор из замороженных данных
		// Ошибка рендеринга откатывает и резервирование
		text, err := uc.renderer.Render(contracts.ContractData{
			BookingID:               created.ID,
			StudentName:             student.FullName,
			StudentEmail:            student.Email,
			InstructorName:          instructor.Name,
			City:                    instructor.City,
			State:                   instructor.State,
			LessonDate:              created.ScheduledDate.Format(domain.DateFormat),
			LessonTime:              created.ScheduledTime.String(),
			DurationMinutes:         created.DurationMinutes,
			Price:                   created.Price.String(),
			PlatformFee:             created.PlatformFee.String(),
			InstructorAmount:        created.InstructorAmount.String(),
			CancellationWindowHours: uc.config.CancellationWindowHours,
			GeneratedAt:             now.Format(time.RFC3339),
		})
		if err != nil {
			uc.logger.Error("CreateBooking: contract render failed for booking id=%d: %v", created.ID, err)
			return fmt.Errorf("%w: %v", ErrContractGeneration, err)
		}

		if _, err := uc.contractRepo.Create(txCtx, &domain.Contract{
			BookingID:    created.ID,
			StudentID:    created.StudentID,
			InstructorID: created.InstructorID,
			ContractText: text,
		}); err != nil {
			uc.logger.Error("CreateBooking: failed to create contract for booking id=%d: %v", created.ID, err)
			return fmt.Errorf("%w: failed to create contract: %v", ErrInternal, err)
		}

		result = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	return &Response{
		ID:               result.ID,
		StudentID:        result.StudentID,
		InstructorID:     result.InstructorID,
		ScheduledDate:    result.ScheduledDate,
		ScheduledTime:    result.ScheduledTime,
		DurationMinutes:  result.DurationMinutes,
		Price:            result.Price,
		PlatformFee:      result.PlatformFee,
		InstructorAmount: result.InstructorAmount,
		Status:           string(result.Status),
		PaymentStatus:    string(result.PaymentStatus),
		CreatedAt:        result.CreatedAt,
		UpdatedAt:        result.UpdatedAt,
	}, nil
}
