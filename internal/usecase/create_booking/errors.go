package create_booking

import "errors"

var (
	// ErrInstructorNotFound возвращается, когда инструктор не найден
	ErrInstructorNotFound = errors.New("create_booking: instructor not found")

	// ErrStudentNotFound возвращается, когда профиль ученика не найден
	ErrStudentNotFound = errors.New("create_booking: student not found")

	// ErrInvalidDate возвращается при дате в прошлом
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает горизонт бронирования
	ErrDateTooFarInFuture = errors.New("create_booking: date is too far in the future")

	// ErrInvalidTimeSlot возвращается, когда время не совпадает ни с одним
	// слотом расписания инструктора
	ErrInvalidTimeSlot = errors.New("create_booking: invalid time slot")

	// ErrTooLateToBook возвращается, когда слот на сегодня уже начался
	ErrTooLateToBook = errors.New("create_booking: too late to book this slot")

	// ErrSlotNotAvailable возвращается, когда слот уже занят активным бронированием
	// В том числе при проигрыше конкурентной гонки за слот
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrPriceMismatch возвращается, когда цена в запросе не совпадает
	// с текущей ценой инструктора
	ErrPriceMismatch = errors.New("create_booking: price mismatch")

	// ErrContractGeneration возвращается, когда договор не удалось сгенерировать
	// Резервирование при этом откатывается целиком
	ErrContractGeneration = errors.New("create_booking: contract generation failed")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
