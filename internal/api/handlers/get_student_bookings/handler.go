package get_student_bookings

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
	msgInvalidStudentID = "некорректный ID ученика"
	msgAuthRequired     = "требуется аутентификация"
	msgAccessDenied     = "доступ запрещён"
	msgInvalidStatus    = "некорректный статус бронирования"
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

// Handle GET /api/v1/students/{studentId}/bookings?status=confirmed
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	studentID, err := strconv.ParseInt(vars["studentId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /students/{id}/bookings - Invalid student ID: %s", vars["studentId"])
		handlers.RespondBadRequest(w, msgInvalidStudentID)
		return
	}

	actorID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgAuthRequired)
		return
	}
	role := middleware.Role(r.Context())

	req := &models.GetPartyBookingsRequest{
		PartyID: studentID,
		ActorID: actorID,
		Role:    role,
	}
	if status := r.URL.Query().Get("status"); status != "" {
		req.Status = ptr.Ptr(status)
	}

	result, err := h.service.GetStudentBookings(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookingsService.ErrAccessDenied):
			h.logger.Warn("GET /students/{id}/bookings - Access denied: student_id=%d, actor_id=%d", studentID, actorID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, bookingsService.ErrInvalidInput):
			h.logger.Warn("GET /students/{id}/bookings - Invalid status filter: student_id=%d", studentID)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /students/{id}/bookings - Failed: student_id=%d, error=%v", studentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /students/{id}/bookings - Returned %d bookings: student_id=%d", result.Total, studentID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
