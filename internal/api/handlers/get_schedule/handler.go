package get_schedule

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/ayurveda-booking-service/internal/api/handlers"
)

const msgInvalidPractitionerID = "некорректный ID специалиста"

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

// Handle GET /api/v1/practitioners/{practitionerId}/schedule
// Итоговое недельное расписание; специалист без настроек получает расписание по умолчанию
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	practitionerID, err := strconv.ParseInt(mux.Vars(r)["practitionerId"], 10, 64)
	if err != nil || practitionerID <= 0 {
		h.logger.Warn("GET /practitioners/{id}/schedule - Invalid practitioner ID: %s", mux.Vars(r)["practitionerId"])
		handlers.RespondBadRequest(w, msgInvalidPractitionerID)
		return
	}

	weekly, err := h.service.GetWeekly(r.Context(), practitionerID)
	if err != nil {
		h.logger.Error("GET /practitioners/{id}/schedule - Failed to get schedule: practitioner_id=%d, error=%v", practitionerID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /practitioners/{id}/schedule - Schedule retrieved: practitioner_id=%d", practitionerID)
	handlers.RespondJSON(w, http.StatusOK, weekly)
}
