package get_practitioner_bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/ayurveda-booking-service/internal/api/handlers"
	"github.com/m04kA/ayurveda-booking-service/internal/api/middleware"
	"github.com/m04kA/ayurveda-booking-service/internal/service/bookings"
	"github.com/m04kA/ayurveda-booking-service/internal/service/bookings/models"
)

const (
	msgInvalidPractitionerID = "некорректный ID специалиста"
	msgMissingUserID         = "отсутствует ID пользователя"
	msgInvalidIncludeParam   = "некорректное значение includeInactive"
	msgForbidden             = "доступ запрещен"
	msgInvalidTimeRange      = "некорректный период, даты ожидаются в формате YYYY-MM-DD"
	msgInvalidStatus         = "некорректный статус бронирования"
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

// Handle GET /api/v1/practitioners/{practitionerId}/bookings
// Query params: startDate, endDate (YYYY-MM-DD, включительно), status, includeInactive
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	practitionerID, err := strconv.ParseInt(mux.Vars(r)["practitionerId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /practitioners/{id}/bookings - Invalid practitioner ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPractitionerID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /practitioners/{id}/bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	includeInactive, err := handlers.OptionalQueryBool(r, "includeInactive")
	if err != nil {
		h.logger.Warn("GET /practitioners/{id}/bookings - Invalid includeInactive: %v", err)
		handlers.RespondBadRequest(w, msgInvalidIncludeParam)
		return
	}

	req := &models.GetPractitionerBookingsRequest{
		UserID:          userID,
		PractitionerID:  practitionerID,
		StartDate:       handlers.OptionalQueryString(r, "startDate"),
		EndDate:         handlers.OptionalQueryString(r, "endDate"),
		Status:          handlers.OptionalQueryString(r, "status"),
		IncludeInactive: includeInactive,
	}

	result, err := h.service.GetPractitionerBookings(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /practitioners/{id}/bookings - Access denied: practitioner_id=%d, user_id=%d", practitionerID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrInvalidTimeRange):
			h.logger.Warn("GET /practitioners/{id}/bookings - Invalid time range: %v", err)
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /practitioners/{id}/bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /practitioners/{id}/bookings - Failed to get bookings: practitioner_id=%d, error=%v", practitionerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /practitioners/{id}/bookings - Bookings retrieved: practitioner_id=%d, count=%d",
		practitionerID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
