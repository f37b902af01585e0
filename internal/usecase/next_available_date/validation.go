package next_available_date

import (
	"fmt"

	"github.com/m04kA/ayurveda-booking-service/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.PractitionerID <= 0 {
		return fmt.Errorf("%w: practitionerID must be positive", ErrInvalidInput)
	}

	if req.DaysAhead != 0 && (req.DaysAhead < domain.MinDaysAhead || req.DaysAhead > domain.MaxDaysAhead) {
		return fmt.Errorf("%w: daysAhead must be between %d and %d",
			ErrInvalidInput, domain.MinDaysAhead, domain.MaxDaysAhead)
	}

	if req.DurationMinutes != 0 &&
		(req.DurationMinutes < domain.MinSlotDurationMinutes || req.DurationMinutes > domain.MaxSlotDurationMinutes) {
		return fmt.Errorf("%w: duration must be between %d and %d minutes",
			ErrInvalidInput, domain.MinSlotDurationMinutes, domain.MaxSlotDurationMinutes)
	}

	return nil
}

// searchWindow ограничивает окно поиска сроком бронирования заранее
// Сегодня плюс advanceBookingDays дней - это advanceBookingDays+1 календарных дней
func searchWindow(daysAhead int, policy domain.BookingPolicy) int {
	if policy.HasAdvanceBookingLimit() && daysAhead > policy.AdvanceBookingDays+1 {
		return policy.AdvanceBookingDays + 1
	}
	return daysAhead
}
