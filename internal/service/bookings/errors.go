package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidTransition возвращается при недопустимом переходе состояния
	// Терминальные статусы (cancelled, completed без спора) из этой ошибки не выводятся
	ErrInvalidTransition = errors.New("invalid booking transition")

	// ErrContractNotSigned возвращается при попытке подтвердить бронирование
	// без подписанного договора
	ErrContractNotSigned = errors.New("contract is not signed")

	// ErrCancellationWindowClosed возвращается при отмене ближе к началу занятия,
	// чем разрешает окно отмены; администратор это ограничение обходит
	ErrCancellationWindowClosed = errors.New("cancellation window is closed")

	// ErrLessonNotStarted возвращается при попытке завершить занятие до его начала
	ErrLessonNotStarted = errors.New("lesson has not started yet")

	// ErrReasonRequired возвращается, когда для отмены не указана причина
	ErrReasonRequired = errors.New("cancellation reason is required")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
