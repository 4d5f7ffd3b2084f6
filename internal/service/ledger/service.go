package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/felipemsilva2/vrumi-connect-2026-sub003/internal/domain"
	instructorRepo "github.com/felipemsilva2/vrumi-connect-2026-sub003/internal/infra/storage/instructor"
	"github.com/felipemsilva2/vrumi-connect-2026-sub003/internal/service/ledger/models"
)

// Service сервис чтения леджера
// Леджер append-only: сервис только агрегирует и отдаёт записи,
// сами записи рождаются в жизненном цикле бронирования
type Service struct {
	ledgerRepo     LedgerRepository
	bookingRepo    BookingRepository
	instructorRepo InstructorRepository
	timeProvider   TimeProvider
	logger         Logger
}

// NewService создает новый экземпляр сервиса леджера
func NewService(
	ledgerRepo LedgerRepository,
	bookingRepo BookingRepository,
	instructorRepo InstructorRepository,
	logger Logger,
) *Service {
	return &Service{
		ledgerRepo:     ledgerRepo,
		bookingRepo:    bookingRepo,
		instructorRepo: instructorRepo,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// WithTimeProvider заменяет провайдер времени (для тестирования)
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// EarningsSummary возвращает сводку заработка инструктора
// total - завершённые начисления за всё время; pending - подтверждённые,
// но ещё не оплаченные занятия; thisMonth - начисления с начала месяца
// в таймзоне инструктора
func (s *Service) EarningsSummary(ctx context.Context, instructorID int64, actorID int64, role domain.ActorRole) (*models.EarningsSummaryResponse, error) {
	s.logger.Info("EarningsSummary: instructor=%d, actor=%d", instructorID, actorID)

	instructor, err := s.checkAccess(ctx, instructorID, actorID, role, "EarningsSummary")
	if err != nil {
		return nil, err
	}

	total, err := s.ledgerRepo.SumEarnings(ctx, instructorID, nil)
	if err != nil {
		s.logger.Error("EarningsSummary: failed to sum total for instructor=%d: %v", instructorID, err)
		return nil, fmt.Errorf("%w: EarningsSummary - failed to sum total: %v", ErrInternal, err)
	}

	now := s.timeProvider.Now().In(instructor.Location())
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, instructor.Location())

	thisMonth, err := s.ledgerRepo.SumEarnings(ctx, instructorID, &monthStart)
	if err != nil {
		s.logger.Error("EarningsSummary: failed to sum month for instructor=%d: %v", instructorID, err)
		return nil, fmt.Errorf("%w: EarningsSummary - failed to sum month: %v", ErrInternal, err)
	}

	pending, err := s.bookingRepo.SumPendingInstructorAmount(ctx, instructorID)
	if err != nil {
		s.logger.Error("EarningsSummary: failed to sum pending for instructor=%d: %v", instructorID, err)
		return nil, fmt.Errorf("%w: EarningsSummary - failed to sum pending: %v", ErrInternal, err)
	}

	return &models.EarningsSummaryResponse{
		InstructorID: instructorID,
		Total:        total.String(),
		Pending:      pending.String(),
		ThisMonth:    thisMonth.String(),
	}, nil
}

// GetTransactions возвращает записи леджера инструктора в хронологическом порядке
func (s *Service) GetTransactions(ctx context.Context, instructorID int64, actorID int64, role domain.ActorRole) (*models.TransactionListResponse, error) {
	s.logger.Info("GetTransactions: instructor=%d, actor=%d", instructorID, actorID)

	if _, err := s.checkAccess(ctx, instructorID, actorID, role, "GetTransactions"); err != nil {
		return nil, err
	}

	txs, err := s.ledgerRepo.GetByInstructor(ctx, instructorID)
	if err != nil {
		s.logger.Error("GetTransactions: repository error for instructor=%d: %v", instructorID, err)
		return nil, fmt.Errorf("%w: GetTransactions - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetTransactions: fetched %d transactions for instructor=%d", len(txs), instructorID)
	return models.FromDomainTransactionList(txs), nil
}

func (s *Service) checkAccess(ctx context.Context, instructorID int64, actorID int64, role domain.ActorRole, op string) (*domain.Instructor, error) {
	if role != domain.RoleAdmin && actorID != instructorID {
		s.logger.Warn("%s: access denied for actor=%d to instructor=%d", op, actorID, instructorID)
		return nil, ErrAccessDenied
	}

	instructor, err := s.instructorRepo.GetByID(ctx, instructorID)
	if err != nil {
		if errors.Is(err, instructorRepo.ErrInstructorNotFound) {
			s.logger.Warn("%s: instructor id=%d not found", op, instructorID)
			return nil, ErrInstructorNotFound
		}
		s.logger.Error("%s: failed to get instructor id=%d: %v", op, instructorID, err)
		return nil, fmt.Errorf("%w: %s - failed to get instructor: %v", ErrInternal, op, err)
	}

	return instructor, nil
}
