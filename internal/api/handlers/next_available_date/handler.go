package next_available_date

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/ayurveda-booking-service/internal/api/handlers"
	nextAvailableDate "github.com/m04kA/ayurveda-booking-service/internal/usecase/next_available_date"
)

const (
	msgInvalidPractitionerID = "некорректный ID специалиста"
	msgInvalidParams         = "некорректные параметры daysAhead или duration"
)

type Handler struct {
	useCase NextAvailableDateUseCase
	logger  Logger
}

func NewHandler(useCase NextAvailableDateUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/practitioners/{practitionerId}/next-available-date
// Query params: daysAhead (optional), duration (optional, minutes)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	practitionerID, err := strconv.ParseInt(mux.Vars(r)["practitionerId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /practitioners/{id}/next-available-date - Invalid practitioner ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPractitionerID)
		return
	}

	daysAhead, err := handlers.OptionalQueryInt(r, "daysAhead")
	if err != nil {
		h.logger.Warn("GET /practitioners/{id}/next-available-date - Invalid daysAhead: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	duration, err := handlers.OptionalQueryInt(r, "duration")
	if err != nil {
		h.logger.Warn("GET /practitioners/{id}/next-available-date - Invalid duration: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &nextAvailableDate.Request{
		PractitionerID:  practitionerID,
		DaysAhead:       daysAhead,
		DurationMinutes: duration,
	})
	if err != nil {
		switch {
		case errors.Is(err, nextAvailableDate.ErrInvalidInput):
			h.logger.Warn("GET /practitioners/{id}/next-available-date - Invalid input: practitioner_id=%d, error=%v", practitionerID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /practitioners/{id}/next-available-date - Failed to search: practitioner_id=%d, error=%v",
				practitionerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /practitioners/{id}/next-available-date - Search finished: practitioner_id=%d, found=%t",
		practitionerID, result.Found)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
