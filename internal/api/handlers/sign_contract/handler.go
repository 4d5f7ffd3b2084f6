package sign_contract

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/felipemsilva2/vrumi-connect-2026-sub003/internal/api/handlers"
	"github.com/felipemsilva2/vrumi-connect-2026-sub003/internal/api/middleware"
	contractsService "github.com/felipemsilva2/vrumi-connect-2026-sub003/internal/service/contracts"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgAuthRequired       = "требуется аутентификация"
	msgBookingNotFound    = "бронирование не найдено"
	msgContractNotFound   = "договор не найден"
	msgAccessDenied       = "доступ запрещён"
	msgAlreadySigned      = "договор уже подписан"
	msgInvalidSignature   = "подпись не может быть пустой"
)

type Handler struct {
	service ContractService
	logger  Logger
}

func NewHandler(service ContractService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/contract/sign
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/contract/sign - Invalid booking ID: %s", vars["bookingId"])
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	studentID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgAuthRequired)
		return
	}

	var req SignContractRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/contract/sign - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	contract, err := h.service.Sign(r.Context(), bookingID, studentID, req.Signature)
	if err != nil {
		switch {
		case errors.Is(err, contractsService.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/contract/sign - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, contractsService.ErrContractNotFound):
			h.logger.Warn("POST /bookings/{id}/contract/sign - Contract not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgContractNotFound)

		case errors.Is(err, contractsService.ErrAccessDenied):
			h.logger.Warn("POST /bookings/{id}/contract/sign - Access denied: booking_id=%d, student_id=%d", bookingID, studentID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, contractsService.ErrAlreadySigned):
			h.logger.Warn("POST /bookings/{id}/contract/sign - Already signed: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgAlreadySigned)

		case errors.Is(err, contractsService.ErrInvalidSignature):
			h.logger.Warn("POST /bookings/{id}/contract/sign - Invalid signature: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgInvalidSignature)

		default:
			h.logger.Error("POST /bookings/{id}/contract/sign - Failed: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/contract/sign - Contract signed: booking_id=%d, student_id=%d", bookingID, studentID)
	handlers.RespondJSON(w, http.StatusOK, FromDomainContract(contract))
}
