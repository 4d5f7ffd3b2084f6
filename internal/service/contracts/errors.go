package contracts

import "errors"

var (
	// ErrContractNotFound возвращается, когда договор не найден
	ErrContractNotFound = errors.New("contract not found")

	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrAlreadySigned возвращается при повторной попытке подписать договор
	ErrAlreadySigned = errors.New("contract already signed")

	// ErrInvalidSignature возвращается при пустой или некорректной подписи
	ErrInvalidSignature = errors.New("invalid signature")

	// ErrRenderFailed возвращается, когда шаблон договора не удалось отрендерить
	// Резервирование, внутри которого рендерился договор, при этом откатывается
	ErrRenderFailed = errors.New("contract render failed")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
