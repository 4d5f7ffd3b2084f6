package get_instructor_bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/felipemsilva2/vrumi-connect-2026-sub003/internal/api/handlers"
	"github.com/felipemsilva2/vrumi-connect-2026-sub003/internal/api/middleware"
	bookingsService "github.com/felipemsilva2/vrumi-connect-2026-sub003/internal/service/bookings"
	"github.com/felipemsilva2/vrumi-connect-2026-sub003/internal/service/bookings/models"
	"github.com/felipemsilva2/vrumi-connect-2026-sub003/pkg/ptr"
)

const (
	msgInvalidInstructorID = "некорректный ID инструктора"
	msgAuthRequired        = "требуется аутентификация"
	msgAccessDenied        = "доступ запрещён"
	msgInvalidStatus       = "некорректный статус бронирования"
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

// Handle GET /api/v1/instructors/{instructorId}/bookings?status=confirmed
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	instructorID, err := strconv.ParseInt(vars["instructorId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /instructors/{id}/bookings - Invalid instructor ID: %s", vars["instructorId"])
		handlers.RespondBadRequest(w, msgInvalidInstructorID)
		return
	}

	actorID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgAuthRequired)
		return
	}
	role := middleware.Role(r.Context())

	req := &models.GetPartyBookingsRequest{
		PartyID: instructorID,
		ActorID: actorID,
		Role:    role,
	}
	if status := r.URL.Query().Get("status"); status != "" {
		req.Status = ptr.Ptr(status)
	}

	result, err := h.service.GetInstructorBookings(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookingsService.ErrAccessDenied):
			h.logger.Warn("GET /instructors/{id}/bookings - Access denied: instructor_id=%d, actor_id=%d", instructorID, actorID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, bookingsService.ErrInvalidInput):
			h.logger.Warn("GET /instructors/{id}/bookings - Invalid status filter: instructor_id=%d", instructorID)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /instructors/{id}/bookings - Failed: instructor_id=%d, error=%v", instructorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /instructors/{id}/bookings - Returned %d bookings: instructor_id=%d", result.Total, instructorID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
