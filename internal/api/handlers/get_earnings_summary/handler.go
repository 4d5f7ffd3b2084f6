package get_earnings_summary

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/felipemsilva2/vrumi-connect-2026-sub003/internal/api/handlers"
	"github.com/felipemsilva2/vrumi-connect-2026-sub003/internal/api/middleware"
	ledgerService "github.com/felipemsilva2/vrumi-connect-2026-sub003/internal/service/ledger"
)

const (
	msgInvalidInstructorID = "некорректный ID инструктора"
	msgAuthRequired        = "требуется аутентификация"
	msgInstructorNotFound  = "инструктор не найден"
	msgAccessDenied        = "доступ запрещён"
)

type Handler struct {
	service LedgerService
	logger  Logger
}

func NewHandler(service LedgerService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/instructors/{instructorId}/earnings?includeTransactions=true
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	instructorID, err := strconv.ParseInt(vars["instructorId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /instructors/{id}/earnings - Invalid instructor ID: %s", vars["instructorId"])
		handlers.RespondBadRequest(w, msgInvalidInstructorID)
		return
	}

	actorID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgAuthRequired)
		return
	}
	role := middleware.Role(r.Context())

	summary, err := h.service.EarningsSummary(r.Context(), instructorID, actorID, role)
	if err != nil {
		h.respondError(w, instructorID, actorID, err)
		return
	}

	response := &EarningsSummaryResponse{
		InstructorID: summary.InstructorID,
		Total:        summary.Total,
		Pending:      summary.Pending,
		ThisMonth:    summary.ThisMonth,
	}

	if r.URL.Query().Get("includeTransactions") == "true" {
		txs, err := h.service.GetTransactions(r.Context(), instructorID, actorID, role)
		if err != nil {
			h.respondError(w, instructorID, actorID, err)
			return
		}
		response.Transactions = txs.Transactions
	}

	h.logger.Info("GET /instructors/{id}/earnings - Summary returned: instructor_id=%d", instructorID)
	handlers.RespondJSON(w, http.StatusOK, response)
}

func (h *Handler) respondError(w http.ResponseWriter, instructorID, actorID int64, err error) {
	switch {
	case errors.Is(err, ledgerService.ErrInstructorNotFound):
		h.logger.Warn("GET /instructors/{id}/earnings - Instructor not found: instructor_id=%d", instructorID)
		handlers.RespondNotFound(w, msgInstructorNotFound)

	case errors.Is(err, ledgerService.ErrAccessDenied):
		h.logger.Warn("GET /instructors/{id}/earnings - Access denied: instructor_id=%d, actor_id=%d", instructorID, actorID)
		handlers.RespondForbidden(w, msgAccessDenied)

	default:
		h.logger.Error("GET /instructors/{id}/earnings - Failed: instructor_id=%d, error=%v", instructorID, err)
		handlers.RespondInternalError(w)
	}
}
