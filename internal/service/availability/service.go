package availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/felipemsilva2/vrumi-connect-2026-sub003/internal/domain"
	instructorRepo "github.com/felipemsilva2/vrumi-connect-2026-sub003/internal/infra/storage/instructor"
)

// Service сервис для работы с окнами доступности инструктора
type Service struct {
	availabilityRepo AvailabilityRepository
	instructorRepo   InstructorRepository
	txManager        TransactionManager
	logger           Logger
}

// NewService создает новый экземпляр сервиса доступности
func NewService(
	availabilityRepo AvailabilityRepository,
	instructorRepo InstructorRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		availabilityRepo: availabilityRepo,
		instructorRepo:   instructorRepo,
		txManager:        txManager,
		logger:           logger,
	}
}

// GetWindows возвращает недельное расписание инструктора
func (s *Service) GetWindows(ctx context.Context, instructorID int64) ([]*domain.AvailabilityWindow, error) {
	s.logger.Info("GetWindows: fetching windows for instructor=%d", instructorID)

	if _, err := s.instructorRepo.GetByID(ctx, instructorID); err != nil {
		if errors.Is(err, instructorRepo.ErrInstructorNotFound) {
			s.logger.Warn("GetWindows: instructor id=%d not found", instructorID)
			return nil, ErrInstructorNotFound
		}
		s.logger.Error("GetWindows: failed to get instructor id=%d: %v", instructorID, err)
		return nil, fmt.Errorf("%w: GetWindows - failed to get instructor: %v", ErrInternal, err)
	}

	windows, err := s.availabilityRepo.GetByInstructor(ctx, instructorID)
	if err != nil {
		s.logger.Error("GetWindows: repository error for instructor=%d: %v", instructorID, err)
		return nil, fmt.Errorf("%w: GetWindows - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetWindows: fetched %d windows for instructor=%d", len(windows), instructorID)
	return windows, nil
}

// ReplaceWindows атомарно заменяет недельное расписание инструктора
// Замена не затрагивает существующие бронирования - их расписание заморожено
// Только сам инструктор или администратор могут менять расписание
func (s *Service) ReplaceWindows(ctx context.Context, instructorID int64, windows []*domain.AvailabilityWindow, actorID int64, role domain.ActorRole) error {
	s.logger.Info("ReplaceWindows: instructor=%d, windows=%d, actor=%d", instructorID, len(windows), actorID)

	if role != domain.RoleAdmin && actorID != instructorID {
		s.logger.Warn("ReplaceWindows: access denied for actor=%d to instructor=%d", actorID, instructorID)
		return ErrAccessDenied
	}

	if _, err := s.instructorRepo.GetByID(ctx, instructorID); err != nil {
		if errors.Is(err, instructorRepo.ErrInstructorNotFound) {
			s.logger.Warn("ReplaceWindows: instructor id=%d not found", instructorID)
			return ErrInstructorNotFound
		}
		s.logger.Error("ReplaceWindows: failed to get instructor id=%d: %v", instructorID, err)
		return fmt.Errorf("%w: ReplaceWindows - failed to get instructor: %v", ErrInternal, err)
	}

	if err := validateWindows(windows); err != nil {
		s.logger.Warn("ReplaceWindows: validation failed for instructor=%d: %v", instructorID, err)
		return err
	}

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		return s.availabilityRepo.ReplaceForInstructor(txCtx, instructorID, windows)
	})
	if err != nil {
		s.logger.Error("ReplaceWindows: repository error for instructor=%d: %v", instructorID, err)
		return fmt.Errorf("%w: ReplaceWindows - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ReplaceWindows: replaced schedule for instructor=%d", instructorID)
	return nil
}

// validateWindows проверяет корректность каждого окна и отсутствие пересечений
// внутри одного дня недели. Соприкасающиеся границы пересечением не считаются
func validateWindows(windows []*domain.AvailabilityWindow) error {
	for i, w := range windows {
		if w == nil || !w.IsValid() {
			return fmt.Errorf("%w: window #%d", ErrInvalidWindow, i)
		}
	}

	for i := 0; i < len(windows); i++ {
		for j := i + 1; j < len(windows); j++ {
			if windows[i].Overlaps(windows[j]) {
				return fmt.Errorf("%w: windows #%d and #%d", ErrOverlappingWindows, i, j)
			}
		}
	}

	return nil
}
