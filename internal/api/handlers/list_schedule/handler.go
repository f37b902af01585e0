package list_schedule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/ayurveda-booking-service/internal/api/handlers"
	"github.com/m04kA/ayurveda-booking-service/internal/api/middleware"
	"github.com/m04kA/ayurveda-booking-service/internal/service/schedule"
)

const (
	msgInvalidPractitionerID = "некорректный ID специалиста"
	msgMissingUserID         = "отсутствует ID пользователя"
	msgForbidden             = "доступ запрещен"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/practitioners/{practitionerId}/schedule/rows
// Сохраненные строки расписания, доступно только самому специалисту
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	practitionerID, err := strconv.ParseInt(mux.Vars(r)["practitionerId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /practitioners/{id}/schedule/rows - Invalid practitioner ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPractitionerID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /practitioners/{id}/schedule/rows - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	rows, err := h.service.List(r.Context(), practitionerID, userID)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrAccessDenied):
			h.logger.Warn("GET /practitioners/{id}/schedule/rows - Access denied: practitioner_id=%d, user_id=%d", practitionerID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /practitioners/{id}/schedule/rows - Failed to list rows: practitioner_id=%d, error=%v", practitionerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /practitioners/{id}/schedule/rows - Rows retrieved: practitioner_id=%d, count=%d", practitionerID, len(rows.Schedules))
	handlers.RespondJSON(w, http.StatusOK, rows)
}
