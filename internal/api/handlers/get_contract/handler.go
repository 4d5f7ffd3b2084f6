package get_contract

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
	msgInvalidBookingID = "некорректный ID бронирования"
	msgAuthRequired     = "требуется аутентификация"
	msgBookingNotFound  = "бронирование не найдено"
	msgContractNotFound = "договор не найден"
	msgAccessDenied     = "доступ запрещён"
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

// Handle GET /api/v1/bookings/{bookingId}/contract
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /bookings/{id}/contract - Invalid booking ID: %s", vars["bookingId"])
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	actorID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgAuthRequired)
		return
	}
	role := middleware.Role(r.Context())

	contract, err := h.service.Get(r.Context(), bookingID, actorID, role)
	if err != nil {
		switch {
		case errors.Is(err, contractsService.ErrBookingNotFound):
			h.logger.Warn("GET /bookings/{id}/contract - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, contractsService.ErrContractNotFound):
			h.logger.Warn("GET /bookings/{id}/contract - Contract not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgContractNotFound)

		case errors.Is(err, contractsService.ErrAccessDenied):
			h.logger.Warn("GET /bookings/{id}/contract - Access denied: booking_id=%d, actor_id=%d", bookingID, actorID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("GET /bookings/{id}/contract - Failed: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings/{id}/contract - Contract returned: booking_id=%d, actor_id=%d", bookingID, actorID)
	handlers.RespondJSON(w, http.StatusOK, FromDomainContract(contract))
}
