package update_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/felipemsilva2/vrumi-connect-2026-sub003/internal/api/handlers"
	"github.com/felipemsilva2/vrumi-connect-2026-sub003/internal/api/middleware"
	availabilityService "github.com/felipemsilva2/vrumi-connect-2026-sub003/internal/service/availability"
)

const (
	msgInvalidInstructorID = "некорректный ID инструктора"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidTime         = "некорректный формат времени, ожидается HH:MM"
	msgInstructorNotFound  = "инструктор не найден"
	msgAccessDenied        = "доступ запрещён"
	msgInvalidWindow       = "некорректное окно доступности"
	msgOverlappingWindows  = "окна доступности пересекаются"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/instructors/{instructorId}/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	instructorID, err := strconv.ParseInt(vars["instructorId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /availability - Invalid instructor ID: %s", vars["instructorId"])
		handlers.RespondBadRequest(w, msgInvalidInstructorID)
		return
	}

	actorID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondForbidden(w, msgAccessDenied)
		return
	}
	role := middleware.Role(r.Context())

	var req UpdateAvailabilityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /availability - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	windows, err := req.ToDomainWindows(instructorID)
	if err != nil {
		h.logger.Warn("PUT /availability - Failed to parse windows: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	if err := h.service.ReplaceWindows(r.Context(), instructorID, windows, actorID, role); err != nil {
		switch {
		case errors.Is(err, availabilityService.ErrInstructorNotFound):
			h.logger.Warn("PUT /availability - Instructor not found: instructor_id=%d", instructorID)
			handlers.RespondNotFound(w, msgInstructorNotFound)

		case errors.Is(err, availabilityService.ErrAccessDenied):
			h.logger.Warn("PUT /availability - Access denied: instructor_id=%d, actor_id=%d", instructorID, actorID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, availabilityService.ErrInvalidWindow):
			h.logger.Warn("PUT /availability - Invalid window: instructor_id=%d: %v", instructorID, err)
			handlers.RespondBadRequest(w, msgInvalidWindow)

		case errors.Is(err, availabilityService.ErrOverlappingWindows):
			h.logger.Warn("PUT /availability - Overlapping windows: instructor_id=%d: %v", instructorID, err)
			handlers.RespondBadRequest(w, msgOverlappingWindows)

		default:
			h.logger.Error("PUT /availability - Failed to replace windows: instructor_id=%d, error=%v", instructorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	updated, err := h.service.GetWindows(r.Context(), instructorID)
	if err != nil {
		h.logger.Error("PUT /availability - Failed to reload windows: instructor_id=%d, error=%v", instructorID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("PUT /availability - Schedule replaced: instructor_id=%d, windows=%d", instructorID, len(updated))
	handlers.RespondJSON(w, http.StatusOK, FromDomainWindows(instructorID, updated))
}
