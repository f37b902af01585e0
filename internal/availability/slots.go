package availability

import (
	"fmt"
	"time"

	"github.com/m04kA/ayurveda-booking-service/internal/domain"
	"github.com/m04kA/ayurveda-booking-service/pkg/zoned"
)

// GenerateSlots enumerates fixed-size slots of one local day.
//
// The cursor starts at the schedule start and advances by the slot duration. A candidate that
// touches the break moves the cursor straight to the break end. A candidate that overlaps an
// active booking is skipped. Only slots ending at or before the schedule end are emitted, so a
// trailing remainder shorter than the slot duration stays unused.
//
// An unavailable day yields an empty, non-nil slice.
func GenerateSlots(day zoned.Day, bookings []*domain.Booking, schedule domain.WorkSchedule, slotDurationMinutes int) ([]domain.Slot, error) {
	if slotDurationMinutes <= 0 {
		return nil, fmt.Errorf("%w: slot duration %d", ErrInvalidDuration, slotDurationMinutes)
	}
	if err := schedule.Validate(); err != nil {
		return nil, err
	}
	if err := validateBookings(bookings); err != nil {
		return nil, err
	}

	slots := make([]domain.Slot, 0)
	if !schedule.Available {
		return slots, nil
	}

	step := minutes(slotDurationMinutes)
	dayStart := day.At(schedule.StartTime)
	dayEnd := day.At(schedule.EndTime)

	hasBreak := schedule.HasBreak()
	breakStart := day.At(schedule.BreakStart)
	breakEnd := day.At(schedule.BreakEnd)

	cursor := dayStart
	for !cursor.Add(step).After(dayEnd) {
		end := cursor.Add(step)

		if hasBreak && cursor.Before(breakEnd) && end.After(breakStart) {
			cursor = breakEnd
			continue
		}

		if !overlapsAny(cursor, end, bookings) {
			slots = append(slots, domain.Slot{
				Start:           cursor,
				End:             end,
				DurationMinutes: slotDurationMinutes,
				Available:       true,
			})
		}

		cursor = end
	}

	return slots, nil
}

// WithinSchedule reports whether [start, start+durationMinutes) lies inside the working window
// of day and does not touch its break. It does not look at bookings and does not require the
// interval to be aligned to the slot grid.
func WithinSchedule(day zoned.Day, schedule domain.WorkSchedule, start time.Time, durationMinutes int) (bool, error) {
	if durationMinutes <= 0 {
		return false, fmt.Errorf("%w: duration %d", ErrInvalidDuration, durationMinutes)
	}
	if err := schedule.Validate(); err != nil {
		return false, err
	}
	if !schedule.Available {
		return false, nil
	}

	end := start.Add(minutes(durationMinutes))
	if start.Before(day.At(schedule.StartTime)) || end.After(day.At(schedule.EndTime)) {
		return false, nil
	}
	if schedule.HasBreak() && start.Before(day.At(schedule.BreakEnd)) && end.After(day.At(schedule.BreakStart)) {
		return false, nil
	}

	return true, nil
}
