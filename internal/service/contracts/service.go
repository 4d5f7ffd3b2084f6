package contracts

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"text/template"

	"github.com/felipemsilva2/vrumi-connect-2026-sub003/internal/domain"
	bookingRepo "github.com/felipemsilva2/vrumi-connect-2026-sub003/internal/infra/storage/booking"
	contractRepo "github.com/felipemsilva2/vrumi-connect-2026-sub003/internal/infra/storage/contract"
)

// Service сервис для работы с договорами
type Service struct {
	contractRepo ContractRepository
	bookingRepo  BookingRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	tmpl         *template.Template
	logger       Logger
}

// NewService создает новый экземпляр сервиса договоров
// templatePath - путь к файлу шаблона; пустая строка включает шаблон по умолчанию
// Шаблон парсится один раз при старте, ошибка парсинга фатальна для сервиса
func NewService(
	contractRepo ContractRepository,
	bookingRepo BookingRepository,
	txManager TransactionManager,
	templatePath string,
	logger Logger,
) (*Service, error) {
	text := defaultTemplate
	if templatePath != "" {
		raw, err := os.ReadFile(templatePath)
		if err != nil {
			return nil, fmt.Errorf("contracts: failed to read template %s: %w", templatePath, err)
		}
		text = string(raw)
	}

	// missingkey=error: договор с дырой вместо данных хуже, чем отказ рендеринга
	tmpl, err := template.New("contract").Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("contracts: failed to parse template: %w", err)
	}

	return &Service{
		contractRepo: contractRepo,
		bookingRepo:  bookingRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		tmpl:         tmpl,
		logger:       logger,
	}, nil
}

// WithTimeProvider заменяет провайдер времени (для тестирования)
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// Render рендерит текст договора из замороженных данных бронирования
func (s *Service) Render(data ContractData) (string, error) {
	var sb strings.Builder
	if err := s.tmpl.Execute(&sb, data); err != nil {
		s.logger.Error("Render: template execution failed for booking=%d: %v", data.BookingID, err)
		return "", fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}
	return sb.String(), nil
}

// Get возвращает договор бронирования
// Доступен только сторонам бронирования и администратору
func (s *Service) Get(ctx context.Context, bookingID int64, actorID int64, role domain.ActorRole) (*domain.Contract, error) {
	s.logger.Info("GetContract: booking=%d, actor=%d", bookingID, actorID)

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetContract: booking id=%d not found", bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetContract: failed to get booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: Get - failed to get booking: %v", ErrInternal, err)
	}

	if role != domain.RoleAdmin && !booking.IsParty(actorID) {
		s.logger.Warn("GetContract: access denied for actor=%d to booking=%d", actorID, bookingID)
		return nil, ErrAccessDenied
	}

	contract, err := s.contractRepo.GetByBookingID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, contractRepo.ErrContractNotFound) {
			s.logger.Warn("GetContract: contract for booking id=%d not found", bookingID)
			return nil, ErrContractNotFound
		}
		s.logger.Error("GetContract: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	return contract, nil
}

// Sign подписывает договор от имени ученика
// Подпись одноразовая: повторная попытка возвращает ErrAlreadySigned
// Отметка о подписании дублируется в бронировании в той же транзакции
func (s *Service) Sign(ctx context.Context, bookingID int64, studentID int64, signature string) (*domain.Contract, error) {
	s.logger.Info("SignContract: booking=%d, student=%d", bookingID, studentID)

	if strings.TrimSpace(signature) == "" {
		return nil, ErrInvalidSignature
	}

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("SignContract: booking id=%d not found", bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("SignContract: failed to get booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: Sign - failed to get booking: %v", ErrInternal, err)
	}

	// Подписывает только сам ученик - ни инструктор, ни администратор
	if booking.StudentID != studentID {
		s.logger.Warn("SignContract: access denied for student=%d to booking=%d", studentID, bookingID)
		return nil, ErrAccessDenied
	}

	now := s.timeProvider.Now()

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.contractRepo.Sign(txCtx, bookingID, signature, now); err != nil {
			return err
		}
		return s.bookingRepo.SetContractSigned(txCtx, bookingID, now)
	})
	if err != nil {
		switch {
		case errors.Is(err, contractRepo.ErrContractNotFound):
			s.logger.Warn("SignContract: contract for booking id=%d not found", bookingID)
			return nil, ErrContractNotFound
		case errors.Is(err, contractRepo.ErrAlreadySigned):
			s.logger.Warn("SignContract: contract for booking id=%d already signed", bookingID)
			return nil, ErrAlreadySigned
		default:
			s.logger.Error("SignContract: failed to sign contract for booking id=%d: %v", bookingID, err)
			return nil, fmt.Errorf("%w: Sign - failed to sign: %v", ErrInternal, err)
		}
	}

	contract, err := s.contractRepo.GetByBookingID(ctx, bookingID)
	if err != nil {
		s.logger.Error("SignContract: failed to reload contract for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: Sign - failed to reload contract: %v", ErrInternal, err)
	}

	s.logger.Info("SignContract: contract for booking id=%d signed", bookingID)
	return contract, nil
}
