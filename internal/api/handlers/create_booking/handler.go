package create_booking

import (
	"errors"
	"net/http"

	"github.com/felipemsilva2/vrumi-connect-2026-sub003/internal/api/handlers"
	"github.com/felipemsilva2/vrumi-connect-2026-sub003/internal/api/middleware"
	createBooking "github.com/felipemsilva2/vrumi-connect-2026-sub003/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgAuthRequired       = "требуется аутентификация"
	msgSlotNotAvailable   = "выбранный временной слот недоступен"
	msgInstructorNotFound = "инструктор не найден"
	msgStudentNotFound    = "профиль ученика не найден"
	msgInvalidBookingDate = "некорректная дата бронирования"
	msgDateTooFar         = "дата бронирования слишком далеко в будущем"
	msgInvalidTimeSlot    = "время не совпадает с расписанием инструктора"
	msgTooLateToBook      = "слишком поздно для бронирования этого слота"
	msgPriceMismatch      = "цена занятия изменилась, обновите страницу"
	msgContractGeneration = "не удалось сформировать договор, бронирование не создано"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	studentID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgAuthRequired)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(studentID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot not available: student_id=%d, instructor_id=%d", studentID, req.InstructorID)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrInstructorNotFound):
			h.logger.Warn("POST /bookings - Instructor not found: instructor_id=%d", req.InstructorID)
			handlers.RespondNotFound(w, msgInstructorNotFound)

		case errors.Is(err, createBooking.ErrStudentNotFound):
			h.logger.Warn("POST /bookings - Student not found: student_id=%d", studentID)
			handlers.RespondNotFound(w, msgStudentNotFound)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Invalid booking date: student_id=%d, instructor_id=%d", studentID, req.InstructorID)
			handlers.RespondBadRequest(w, msgInvalidBookingDate)

		case errors.Is(err, createBooking.ErrDateTooFarInFuture):
			h.logger.Warn("POST /bookings - Date too far in future: student_id=%d, instructor_id=%d", studentID, req.InstructorID)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, createBooking.ErrInvalidTimeSlot):
			h.logger.Warn("POST /bookings - Invalid time slot: student_id=%d, instructor_id=%d", studentID, req.InstructorID)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, createBooking.ErrTooLateToBook):
			h.logger.Warn("POST /bookings - Too late to book: student_id=%d, instructor_id=%d", studentID, req.InstructorID)
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, createBooking.ErrPriceMismatch):
			h.logger.Warn("POST /bookings - Price mismatch: student_id=%d, instructor_id=%d", studentID, req.InstructorID)
			handlers.RespondConflict(w, msgPriceMismatch)

		case errors.Is(err, createBooking.ErrContractGeneration):
			h.logger.Error("POST /bookings - Contract generation failed: student_id=%d, instructor_id=%d, error=%v",
				studentID, req.InstructorID, err)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgContractGeneration)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: student_id=%d: %v", studentID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: student_id=%d, instructor_id=%d, error=%v",
				studentID, req.InstructorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, student_id=%d, instructor_id=%d",
		result.ID, studentID, req.InstructorID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
