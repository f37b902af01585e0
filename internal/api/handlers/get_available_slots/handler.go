package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/ayurveda-booking-service/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/ayurveda-booking-service/internal/usecase/get_available_slots"
)

const (
	msgInvalidPractitionerID = "некорректный ID специалиста"
	msgMissingDate           = "дата обязательна"
	msgInvalidDuration       = "некорректная длительность"
	msgInvalidInput          = "некорректные параметры запроса, дата ожидается в формате YYYY-MM-DD"
	msgInvalidDate           = "дата в прошлом"
	msgDateTooFar            = "дата слишком далеко в будущем"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/practitioners/{practitionerId}/available-slots
// Query params: date (required, YYYY-MM-DD), duration (optional, minutes)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	practitionerID, err := strconv.ParseInt(mux.Vars(r)["practitionerId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /practitioners/{id}/available-slots - Invalid practitioner ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPractitionerID)
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		h.logger.Warn("GET /practitioners/{id}/available-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	duration, err := handlers.OptionalQueryInt(r, "duration")
	if err != nil {
		h.logger.Warn("GET /practitioners/{id}/available-slots - Invalid duration: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDuration)
		return
	}

	result, err := h.useCase.Execute(r.Context(), ToUseCaseRequest(practitionerID, date, duration))
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /practitioners/{id}/available-slots - Invalid input: practitioner_id=%d, error=%v", practitionerID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, getAvailableSlots.ErrInvalidDate):
			h.logger.Warn("GET /practitioners/{id}/available-slots - Date in the past: practitioner_id=%d, date=%s", practitionerID, date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, getAvailableSlots.ErrDateTooFarInFuture):
			h.logger.Warn("GET /practitioners/{id}/available-slots - Date too far: practitioner_id=%d, date=%s", practitionerID, date)
			handlers.RespondBadRequest(w, msgDateTooFar)

		default:
			h.logger.Error("GET /practitioners/{id}/available-slots - Failed to get slots: practitioner_id=%d, date=%s, error=%v",
				practitionerID, date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /practitioners/{id}/available-slots - Slots retrieved successfully: practitioner_id=%d, date=%s, slots_count=%d",
		practitionerID, date, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
