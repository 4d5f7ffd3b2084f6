package transition_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/felipemsilva2/vrumi-connect-2026-sub003/internal/api/handlers"
	"github.com/felipemsilva2/vrumi-connect-2026-sub003/internal/api/middleware"
	"github.com/felipemsilva2/vrumi-connect-2026-sub003/internal/domain"
	bookingsService "github.com/felipemsilva2/vrumi-connect-2026-sub003/internal/service/bookings"
	"github.com/felipemsilva2/vrumi-connect-2026-sub003/internal/service/bookings/models"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgAuthRequired       = "требуется аутентификация"
	msgInvalidEvent       = "некорректное событие, ожидается accept, cancel, complete или dispute"
	msgBookingNotFound    = "бронирование не найдено"
	msgAccessDenied       = "доступ запрещён"
	msgInvalidTransition  = "переход недопустим из текущего статуса"
	msgContractNotSigned  = "договор ещё не подписан"
	msgWindowClosed       = "отмена невозможна: до занятия осталось меньше допустимого времени"
	msgLessonNotStarted   = "занятие ещё не началось"
	msgReasonRequired     = "необходимо указать причину отмены"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/transition
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/transition - Invalid booking ID: %s", vars["bookingId"])
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	actorID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgAuthRequired)
		return
	}
	role := middleware.Role(r.Context())

	var req TransitionBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id}/transition - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	event, ok := domain.ParseBookingEvent(req.Event)
	if !ok {
		h.logger.Warn("PATCH /bookings/{id}/transition - Invalid event: %s", req.Event)
		handlers.RespondBadRequest(w, msgInvalidEvent)
		return
	}

	result, err := h.service.Transition(r.Context(), &models.TransitionRequest{
		BookingID: bookingID,
		Event:     event,
		ActorID:   actorID,
		Role:      role,
		Reason:    req.Reason,
	})
	if err != nil {
		switch {
		case errors.Is(err, bookingsService.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/transition - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, bookingsService.ErrAccessDenied):
			h.logger.Warn("PATCH /bookings/{id}/transition - Access denied: booking_id=%d, actor_id=%d", bookingID, actorID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, bookingsService.ErrInvalidTransition):
			h.logger.Warn("PATCH /bookings/{id}/transition - Invalid transition: booking_id=%d, event=%s", bookingID, event)
			handlers.RespondConflict(w, msgInvalidTransition)

		case errors.Is(err, bookingsService.ErrContractNotSigned):
			h.logger.Warn("PATCH /bookings/{id}/transition - Contract not signed: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgContractNotSigned)

		case errors.Is(err, bookingsService.ErrCancellationWindowClosed):
			h.logger.Warn("PATCH /bookings/{id}/transition - Cancellation window closed: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgWindowClosed)

		case errors.Is(err, bookingsService.ErrLessonNotStarted):
			h.logger.Warn("PATCH /bookings/{id}/transition - Lesson not started: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgLessonNotStarted)

		case errors.Is(err, bookingsService.ErrReasonRequired):
			h.logger.Warn("PATCH /bookings/{id}/transition - Reason required: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgReasonRequired)

		case errors.Is(err, bookingsService.ErrInvalidInput):
			h.logger.Warn("PATCH /bookings/{id}/transition - Invalid input: booking_id=%d: %v", bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("PATCH /bookings/{id}/transition - Failed: booking_id=%d, event=%s, error=%v",
				bookingID, event, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/transition - Transition applied: booking_id=%d, event=%s, status=%s",
		bookingID, event, result.Status)
	handlers.RespondJSON(w, http.StatusOK, result)
}
