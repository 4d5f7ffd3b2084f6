package get_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/felipemsilva2/vrumi-connect-2026-sub003/internal/api/handlers"
	availabilityService "github.com/felipemsilva2/vrumi-connect-2026-sub003/internal/service/availability"
)

const (
	msgInvalidInstructorID = "некорректный ID инструктора"
	msgInstructorNotFound  = "инструктор не найден"
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

// Handle GET /api/v1/instructors/{instructorId}/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	instructorID, err := strconv.ParseInt(vars["instructorId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /availability - Invalid instructor ID: %s", vars["instructorId"])
		handlers.RespondBadRequest(w, msgInvalidInstructorID)
		return
	}

	windows, err := h.service.GetWindows(r.Context(), instructorID)
	if err != nil {
		switch {
		case errors.Is(err, availabilityService.ErrInstructorNotFound):
			h.logger.Warn("GET /availability - Instructor not found: instructor_id=%d", instructorID)
			handlers.RespondNotFound(w, msgInstructorNotFound)

		default:
			h.logger.Error("GET /availability - Failed to get windows: instructor_id=%d, error=%v", instructorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /availability - Returned %d windows: instructor_id=%d", len(windows), instructorID)
	handlers.RespondJSON(w, http.StatusOK, FromDomainWindows(instructorID, windows))
}
