package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/felipemsilva2/vrumi-connect-2026-sub003/internal/domain"
	bookingRepo "github.com/felipemsilva2/vrumi-connect-2026-sub003/internal/infra/storage/booking"
	"github.com/felipemsilva2/vrumi-connect-2026-sub003/internal/integrations/paymentservice"
	"github.com/felipemsilva2/vrumi-connect-2026-sub003/internal/service/bookings/models"
)

// Service сервис жизненного цикла бронирований
// Все переходы статусов идут через таблицу переходов domain.NextStatus,
// обновления в БД условные (WHERE status = from) - конкурентный переход
// одного и того же бронирования выигрывает ровно один раз
type Service struct {
	bookingRepo        BookingRepository
	instructorRepo     InstructorRepository
	ledgerRepo         LedgerRepository
	paymentClient      PaymentServiceClient
	txManager          TransactionManager
	timeProvider       TimeProvider
	cancellationWindow time.Duration
	logger             Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	instructorRepo InstructorRepository,
	ledgerRepo LedgerRepository,
	paymentClient PaymentServiceClient,
	txManager TransactionManager,
	cancellationWindowHours int,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:        bookingRepo,
		instructorRepo:     instructorRepo,
		ledgerRepo:         ledgerRepo,
		paymentClient:      paymentClient,
		txManager:          txManager,
		timeProvider:       &RealTimeProvider{},
		cancellationWindow: time.Duration(cancellationWindowHours) * time.Hour,
		logger:             logger,
	}
}

// WithTimeProvider заменяет провайдер времени (для тестирования)
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// GetByID получает бронирование по ID
// Доступно только сторонам бронирования и администратору
func (s *Service) GetByID(ctx context.Context, id int64, actorID int64, role domain.ActorRole) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for actor=%d", id, actorID)

	booking, err := s.getBooking(ctx, id, "GetByID")
	if err != nil {
		return nil, err
	}

	if role != domain.RoleAdmin && !booking.IsParty(actorID) {
		s.logger.Warn("GetByID: access denied for actor=%d to booking id=%d", actorID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainBooking(booking), nil
}

// GetStudentBookings получает историю бронирований ученика
// Опционально фильтрует по статусу
func (s *Service) GetStudentBookings(ctx context.Context, req *models.GetPartyBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetStudentBookings: student=%d, actor=%d, status=%v", req.PartyID, req.ActorID, req.Status)

	if req.Role != domain.RoleAdmin && req.ActorID != req.PartyID {
		s.logger.Warn("GetStudentBookings: access denied for actor=%d to student=%d", req.ActorID, req.PartyID)
		return nil, ErrAccessDenied
	}

	status, err := s.parseStatusFilter(req.Status)
	if err != nil {
		return nil, err
	}

	list, err := s.bookingRepo.GetByStudentID(ctx, req.PartyID, status)
	if err != nil {
		s.logger.Error("GetStudentBookings: repository error for student=%d: %v", req.PartyID, err)
		return nil, fmt.Errorf("%w: GetStudentBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetStudentBookings: fetched %d bookings for student=%d", len(list), req.PartyID)
	return models.FromDomainBookingList(list), nil
}

// GetInstructorBookings получает расписание бронирований инструктора
// Опционально фильтрует по статусу
func (s *Service) GetInstructorBookings(ctx context.Context, req *models.GetPartyBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetInstructorBookings: instructor=%d, actor=%d, status=%v", req.PartyID, req.ActorID, req.Status)

	if req.Role != domain.RoleAdmin && req.ActorID != req.PartyID {
		s.logger.Warn("GetInstructorBookings: access denied for actor=%d to instructor=%d", req.ActorID, req.PartyID)
		return nil, ErrAccessDenied
	}

	status, err := s.parseStatusFilter(req.Status)
	if err != nil {
		return nil, err
	}

	list, err := s.bookingRepo.GetByInstructorID(ctx, req.PartyID, status)
	if err != nil {
		s.logger.Error("GetInstructorBookings: repository error for instructor=%d: %v", req.PartyID, err)
		return nil, fmt.Errorf("%w: GetInstructorBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetInstructorBookings: fetched %d bookings for instructor=%d", len(list), req.PartyID)
	return models.FromDomainBookingList(list), nil
}

// Transition выполняет переход жизненного цикла бронирования
// Допустимость перехода определяется таблицей переходов; сверх неё
// действуют охранные условия события (подписанный договор, окно отмены,
// наступившее время занятия)
func (s *Service) Transition(ctx context.Context, req *models.TransitionRequest) (*models.BookingResponse, error) {
	s.logger.Info("Transition: booking=%d, event=%s, actor=%d, role=%s",
		req.BookingID, req.Event, req.ActorID, req.Role)

	booking, err := s.getBooking(ctx, req.BookingID, "Transition")
	if err != nil {
		return nil, err
	}

	if req.Role != domain.RoleAdmin && !booking.IsParty(req.ActorID) {
		s.logger.Warn("Transition: access denied for actor=%d to booking id=%d", req.ActorID, req.BookingID)
		return nil, ErrAccessDenied
	}

	next, ok := domain.NextStatus(booking.Status, req.Event)
	if !ok {
		s.logger.Warn("Transition: event=%s is not allowed from status=%s for booking id=%d",
			req.Event, booking.Status, req.BookingID)
		return nil, fmt.Errorf("%w: event %s from status %s", ErrInvalidTransition, req.Event, booking.Status)
	}

	switch req.Event {
	case domain.EventAccept:
		err = s.applyAccept(ctx, booking, req)
	case domain.EventCancel:
		err = s.applyCancel(ctx, booking, req)
	case domain.EventComplete:
		err = s.applyComplete(ctx, booking, req)
	case domain.EventDispute:
		err = s.applyDispute(ctx, booking, next)
	default:
		err = fmt.Errorf("%w: unknown event %s", ErrInvalidInput, req.Event)
	}
	if err != nil {
		return nil, err
	}

	updated, err := s.getBooking(ctx, req.BookingID, "Transition")
	if err != nil {
		return nil, err
	}

	s.logger.Info("Transition: booking id=%d moved %s -> %s", req.BookingID, booking.Status, updated.Status)
	return models.FromDomainBooking(updated), nil
}

// RecordPaymentStatus фиксирует статус оплаты, о котором сообщил платёжный шлюз
// Сервис не интерпретирует переходы оплаты - шлюз авторитетен
func (s *Service) RecordPaymentStatus(ctx context.Context, bookingID int64, status domain.PaymentStatus) (*models.BookingResponse, error) {
	s.logger.Info("RecordPaymentStatus: booking=%d, paymentStatus=%s", bookingID, status)

	if err := s.bookingRepo.SetPaymentStatus(ctx, bookingID, status); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("RecordPaymentStatus: booking id=%d not found", bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("RecordPaymentStatus: failed for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: RecordPaymentStatus - repository error: %v", ErrInternal, err)
	}

	booking, err := s.getBooking(ctx, bookingID, "RecordPaymentStatus")
	if err != nil {
		return nil, err
	}

	return models.FromDomainBooking(booking), nil
}

// applyAccept подтверждает бронирование
// Подтверждает только инструктор этого бронирования или администратор,
// и только при подписанном договоре
func (s *Service) applyAccept(ctx context.Context, booking *domain.Booking, req *models.TransitionRequest) error {
	if req.Role != domain.RoleAdmin && req.ActorID != booking.InstructorID {
		s.logger.Warn("Transition: accept denied for actor=%d on booking id=%d", req.ActorID, booking.ID)
		return ErrAccessDenied
	}

	if booking.ContractSignedAt == nil {
		s.logger.Warn("Transition: accept rejected for booking id=%d - contract not signed", booking.ID)
		return ErrContractNotSigned
	}

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		return s.bookingRepo.UpdateStatus(txCtx, booking.ID, domain.StatusPending, domain.StatusConfirmed)
	})
	return s.mapConditionalError(err, booking.ID, "accept")
}

// applyCancel отменяет бронирование
// Стороны ограничены окном отмены в таймзоне инструктора;
// администратор обходит окно, обход логируется с актором и причиной.
// Если оплата прошла, после отмены запрашивается возврат: недоступность
// платёжного сервиса отмену не блокирует, а рождает запись леджера
// со статусом pending_reconciliation
func (s *Service) applyCancel(ctx context.Context, booking *domain.Booking, req *models.TransitionRequest) error {
	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return ErrReasonRequired
	}
	if len(reason) > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: cancellation reason is too long", ErrInvalidInput)
	}

	now := s.timeProvider.Now()

	if req.Role == domain.RoleAdmin {
		s.logger.Warn("Transition: admin override - cancelling booking id=%d by actor=%d, reason=%q",
			booking.ID, req.ActorID, reason)
	} else {
		instructor, err := s.instructorRepo.GetByID(ctx, booking.InstructorID)
		if err != nil {
			s.logger.Error("Transition: failed to get instructor id=%d for booking id=%d: %v",
				booking.InstructorID, booking.ID, err)
			return fmt.Errorf("%w: cancel - failed to get instructor: %v", ErrInternal, err)
		}

		start, err := booking.ScheduledStart(instructor.Location())
		if err != nil {
			return fmt.Errorf("%w: cancel - invalid scheduled time: %v", ErrInternal, err)
		}

		if start.Sub(now) < s.cancellationWindow {
			s.logger.Warn("Transition: cancellation window closed for booking id=%d (starts %s)",
				booking.ID, start.Format(time.RFC3339))
			return ErrCancellationWindowClosed
		}
	}

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		return s.bookingRepo.Cancel(txCtx, booking.ID, booking.Status, reason, string(req.Role))
	})
	if err := s.mapConditionalError(err, booking.ID, "cancel"); err != nil {
		return err
	}

	if booking.PaymentStatus == domain.PaymentCompleted {
		s.requestRefund(ctx, booking)
	}

	return nil
}

// requestRefund запрашивает возврат средств после отмены оплаченного бронирования
// Отмена к этому моменту уже зафиксирована и не откатывается
func (s *Service) requestRefund(ctx context.Context, booking *domain.Booking) {
	_, err := s.paymentClient.RequestRefundWithGracefulDegradation(ctx, paymentservice.RefundRequest{
		BookingID: booking.ID,
		Amount:    booking.Price,
		Reason:    "booking cancelled",
	})

	ledgerStatus := domain.TxStatusCompleted
	if err != nil {
		if !errors.Is(err, paymentservice.ErrServiceDegraded) {
			s.logger.Error("Transition: refund request failed for booking id=%d: %v", booking.ID, err)
		}
		ledgerStatus = domain.TxStatusPendingReconciliation
	}

	txErr := s.txManager.Do(ctx, func(txCtx context.Context) error {
		if _, appendErr := s.ledgerRepo.Append(txCtx, &domain.Transaction{
			InstructorID: booking.InstructorID,
			BookingID:    booking.ID,
			Amount:       booking.Price,
			Type:         domain.TxRefund,
			Status:       ledgerStatus,
		}); appendErr != nil {
			return appendErr
		}
		if ledgerStatus == domain.TxStatusCompleted {
			return s.bookingRepo.SetPaymentStatus(txCtx, booking.ID, domain.PaymentRefunded)
		}
		return nil
	})
	if txErr != nil {
		s.logger.Error("Transition: failed to record refund for booking id=%d: %v", booking.ID, txErr)
		return
	}

	s.logger.Info("Transition: refund recorded for booking id=%d, status=%s", booking.ID, ledgerStatus)
}

// applyComplete завершает занятие и начисляет заработок инструктору
// Завершение и запись леджера атомарны - заработок появляется ровно один раз
func (s *Service) applyComplete(ctx context.Context, booking *domain.Booking, req *models.TransitionRequest) error {
	if req.Role != domain.RoleAdmin && req.ActorID != booking.InstructorID {
		s.logger.Warn("Transition: complete denied for actor=%d on booking id=%d", req.ActorID, booking.ID)
		return ErrAccessDenied
	}

	now := s.timeProvider.Now()

	instructor, err := s.instructorRepo.GetByID(ctx, booking.InstructorID)
	if err != nil {
		s.logger.Error("Transition: failed to get instructor id=%d for booking id=%d: %v",
			booking.InstructorID, booking.ID, err)
		return fmt.Errorf("%w: complete - failed to get instructor: %v", ErrInternal, err)
	}

	start, err := booking.ScheduledStart(instructor.Location())
	if err != nil {
		return fmt.Errorf("%w: complete - invalid scheduled time: %v", ErrInternal, err)
	}

	if now.Before(start) {
		s.logger.Warn("Transition: complete rejected for booking id=%d - lesson starts %s",
			booking.ID, start.Format(time.RFC3339))
		return ErrLessonNotStarted
	}

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.bookingRepo.Complete(txCtx, booking.ID, now); err != nil {
			return err
		}
		_, err := s.ledgerRepo.Append(txCtx, &domain.Transaction{
			InstructorID: booking.InstructorID,
			BookingID:    booking.ID,
			Amount:       booking.InstructorAmount,
			Type:         domain.TxEarning,
			Status:       domain.TxStatusCompleted,
		})
		return err
	})
	return s.mapConditionalError(err, booking.ID, "complete")
}

// applyDispute открывает спор по бронированию
func (s *Service) applyDispute(ctx context.Context, booking *domain.Booking, next domain.BookingStatus) error {
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		return s.bookingRepo.UpdateStatus(txCtx, booking.ID, booking.Status, next)
	})
	return s.mapConditionalError(err, booking.ID, "dispute")
}

func (s *Service) getBooking(ctx context.Context, id int64, op string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

// mapConditionalError переводит ошибки условных обновлений в ошибки сервиса
// Конфликт статуса означает, что параллельный переход успел раньше
func (s *Service) mapConditionalError(err error, id int64, event string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bookingRepo.ErrBookingNotFound):
		return ErrBookingNotFound
	case errors.Is(err, bookingRepo.ErrStatusConflict):
		s.logger.Warn("Transition: concurrent %s lost for booking id=%d", event, id)
		return fmt.Errorf("%w: booking status changed concurrently", ErrInvalidTransition)
	default:
		s.logger.Error("Transition: %s failed for booking id=%d: %v", event, id, err)
		return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, event, err)
	}
}

func (s *Service) parseStatusFilter(raw *string) (*domain.BookingStatus, error) {
	if raw == nil {
		return nil, nil
	}
	status, err := models.ToDomainBookingStatus(*raw)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}
	return &status, nil
}
