package availability

import (
	"fmt"
	"time"

	"github.com/m04kA/ayurveda-booking-service/internal/domain"
)

// Overlaps reports whether [start, start+durationMinutes) intersects any active booking.
// Intervals are half-open, so a booking ending exactly at start is not a conflict.
// Inactive bookings (cancelled, no-show) are ignored.
func Overlaps(start time.Time, durationMinutes int, bookings []*domain.Booking) (bool, error) {
	if durationMinutes <= 0 {
		return false, fmt.Errorf("%w: candidate duration %d", ErrInvalidDuration, durationMinutes)
	}
	if err := validateBookings(bookings); err != nil {
		return false, err
	}

	return overlapsAny(start, start.Add(minutes(durationMinutes)), bookings), nil
}

// IsSlotAvailable is the negation of Overlaps
func IsSlotAvailable(start time.Time, durationMinutes int, bookings []*domain.Booking) (bool, error) {
	overlaps, err := Overlaps(start, durationMinutes, bookings)
	if err != nil {
		return false, err
	}
	return !overlaps, nil
}

// overlapsAny expects bookings already checked by validateBookings
func overlapsAny(start, end time.Time, bookings []*domain.Booking) bool {
	for _, b := range bookings {
		if b == nil || !b.IsActive() {
			continue
		}
		// [start,end) and [b.start,b.end) intersect iff start < b.end && end > b.start
		if start.Before(b.EndsAt()) && end.After(b.StartsAt) {
			return true
		}
	}
	return false
}

func validateBookings(bookings []*domain.Booking) error {
	for _, b := range bookings {
		if b == nil || !b.IsActive() {
			continue
		}
		if b.DurationMinutes <= 0 {
			return fmt.Errorf("%w: booking id=%d has duration %d", ErrInvalidDuration, b.ID, b.DurationMinutes)
		}
	}
	return nil
}

func minutes(n int) time.Duration {
	return time.Duration(n) * time.Minute
}
