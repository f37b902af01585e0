package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/ayurveda-booking-service/internal/api/handlers"
	"github.com/m04kA/ayurveda-booking-service/internal/api/middleware"
	createBooking "github.com/m04kA/ayurveda-booking-service/internal/usecase/create_booking"
	"github.com/m04kA/ayurveda-booking-service/pkg/txmanager"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidStartsAt     = "некорректный формат времени начала, ожидается RFC 3339"
	msgMissingUserID       = "отсутствует ID пользователя"
	msgInvalidInput        = "некорректные данные бронирования"
	msgSlotNotAvailable    = "выбранное время уже занято"
	msgConcurrentBooking   = "время бронируется параллельно, попробуйте еще раз"
	msgPractitionerDayOff  = "специалист не работает в выбранную дату"
	msgOutsideWorkingHours = "время вне рабочих часов специалиста"
	msgInvalidBookingDate  = "дата бронирования в прошлом"
	msgDateTooFar          = "дата бронирования слишком далеко в будущем"
	msgTooLateToBook       = "слишком поздно для бронирования этого времени"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	clientID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(clientID)
	if err != nil {
		h.logger.Warn("POST /bookings - Invalid startsAt: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStartsAt)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot not available: client_id=%d, practitioner_id=%d", clientID, req.PractitionerID)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, txmanager.ErrRetriesExhausted):
			h.logger.Warn("POST /bookings - Serialization retries exhausted: client_id=%d, practitioner_id=%d, error=%v",
				clientID, req.PractitionerID, err)
			handlers.RespondConflict(w, msgConcurrentBooking)

		case errors.Is(err, createBooking.ErrPractitionerUnavailable):
			h.logger.Warn("POST /bookings - Practitioner day off: client_id=%d, practitioner_id=%d", clientID, req.PractitionerID)
			handlers.RespondBadRequest(w, msgPractitionerDayOff)

		case errors.Is(err, createBooking.ErrOutsideWorkingHours):
			h.logger.Warn("POST /bookings - Outside working hours: client_id=%d, practitioner_id=%d", clientID, req.PractitionerID)
			handlers.RespondBadRequest(w, msgOutsideWorkingHours)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Invalid booking date: client_id=%d, practitioner_id=%d", clientID, req.PractitionerID)
			handlers.RespondBadRequest(w, msgInvalidBookingDate)

		case errors.Is(err, createBooking.ErrDateTooFarInFuture):
			h.logger.Warn("POST /bookings - Date too far in future: client_id=%d, practitioner_id=%d", clientID, req.PractitionerID)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, createBooking.ErrTooLateToBook):
			h.logger.Warn("POST /bookings - Too late to book: client_id=%d, practitioner_id=%d", clientID, req.PractitionerID)
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: client_id=%d, error=%v", clientID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: client_id=%d, practitioner_id=%d, error=%v",
				clientID, req.PractitionerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, client_id=%d, practitioner_id=%d",
		result.ID, clientID, req.PractitionerID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
