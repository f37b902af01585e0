package delete_schedule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/ayurveda-booking-service/internal/api/handlers"
	"github.com/m04kA/ayurveda-booking-service/internal/api/middleware"
	"github.com/m04kA/ayurveda-booking-service/internal/service/schedule"
	"github.com/m04kA/ayurveda-booking-service/internal/service/schedule/models"
)

const (
	msgInvalidPractitionerID = "некорректный ID специалиста"
	msgMissingUserID         = "отсутствует ID пользователя"
	msgForbidden             = "расписание может менять только сам специалист"
	msgInvalidWeekday        = "некорректный день недели"
	msgNotFound              = "строка расписания не найдена"
	msgInvalidSchedule       = "после удаления расписание станет противоречивым"
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

// Handle DELETE /api/v1/practitioners/{practitionerId}/schedule
// Query params: weekday (optional, без него удаляется общая строка)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	practitionerID, err := strconv.ParseInt(mux.Vars(r)["practitionerId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /practitioners/{id}/schedule - Invalid practitioner ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPractitionerID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /practitioners/{id}/schedule - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	req := &models.DeleteScheduleRequest{
		UserID:         userID,
		PractitionerID: practitionerID,
		Weekday:        handlers.OptionalQueryString(r, "weekday"),
	}

	if err := h.service.Delete(r.Context(), req); err != nil {
		switch {
		case errors.Is(err, schedule.ErrAccessDenied):
			h.logger.Warn("DELETE /practitioners/{id}/schedule - Access denied: practitioner_id=%d, user_id=%d", practitionerID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("DELETE /practitioners/{id}/schedule - Invalid weekday: %v", err)
			handlers.RespondBadRequest(w, msgInvalidWeekday)

		case errors.Is(err, schedule.ErrScheduleNotFound):
			h.logger.Warn("DELETE /practitioners/{id}/schedule - Row not found: practitioner_id=%d", practitionerID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, schedule.ErrInvalidSchedule):
			h.logger.Warn("DELETE /practitioners/{id}/schedule - Invalid schedule: %v", err)
			handlers.RespondBadRequest(w, msgInvalidSchedule)

		default:
			h.logger.Error("DELETE /practitioners/{id}/schedule - Failed to delete row: practitioner_id=%d, error=%v", practitionerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /practitioners/{id}/schedule - Row deleted: practitioner_id=%d", practitionerID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
