package check_slot

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/ayurveda-booking-service/internal/api/handlers"
	checkSlot "github.com/m04kA/ayurveda-booking-service/internal/usecase/check_slot"
)

const (
	msgInvalidPractitionerID = "некорректный ID специалиста"
	msgMissingStartsAt       = "время начала обязательно"
	msgInvalidStartsAt       = "некорректный формат времени начала, ожидается RFC 3339"
	msgInvalidDuration       = "некорректная длительность"
)

type Handler struct {
	useCase CheckSlotUseCase
	logger  Logger
}

func NewHandler(useCase CheckSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/practitioners/{practitionerId}/slot-availability
// Query params: startsAt (required, RFC 3339), duration (optional, minutes)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	practitionerID, err := strconv.ParseInt(mux.Vars(r)["practitionerId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /practitioners/{id}/slot-availability - Invalid practitioner ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPractitionerID)
		return
	}

	startsAt := r.URL.Query().Get("startsAt")
	if startsAt == "" {
		h.logger.Warn("GET /practitioners/{id}/slot-availability - Missing startsAt")
		handlers.RespondBadRequest(w, msgMissingStartsAt)
		return
	}

	duration, err := handlers.OptionalQueryInt(r, "duration")
	if err != nil {
		h.logger.Warn("GET /practitioners/{id}/slot-availability - Invalid duration: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDuration)
		return
	}

	useCaseReq, err := ToUseCaseRequest(practitionerID, startsAt, duration)
	if err != nil {
		h.logger.Warn("GET /practitioners/{id}/slot-availability - Invalid startsAt: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStartsAt)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, checkSlot.ErrInvalidInput):
			h.logger.Warn("GET /practitioners/{id}/slot-availability - Invalid input: practitioner_id=%d, error=%v", practitionerID, err)
			handlers.RespondBadRequest(w, msgInvalidDuration)

		default:
			h.logger.Error("GET /practitioners/{id}/slot-availability - Failed to check slot: practitioner_id=%d, error=%v",
				practitionerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /practitioners/{id}/slot-availability - Checked: practitioner_id=%d, starts_at=%s, bookable=%t",
		practitionerID, startsAt, result.Bookable)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
