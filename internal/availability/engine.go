// Package availability computes open appointment slots and booking conflicts for a single
// practitioner. Everything here is a pure function of its arguments: no I/O, no clock, no
// shared state, so an Engine may be used from any number of goroutines.
package availability

import (
	"fmt"
	"time"
	_ "time/tzdata"

	"github.com/m04kA/ayurveda-booking-service/internal/domain"
	"github.com/m04kA/ayurveda-booking-service/pkg/zoned"
)

// ScheduleLookup resolves the working window for a weekday.
// domain.WorkSchedule (same every day) and domain.WeeklySchedule implement it.
type ScheduleLookup interface {
	ScheduleFor(weekday time.Weekday) domain.WorkSchedule
}

// Engine binds slot generation to a time zone
type Engine struct {
	loc *time.Location
}

// NewEngine creates an engine for loc
func NewEngine(loc *time.Location) (*Engine, error) {
	if loc == nil {
		return nil, ErrNoLocation
	}
	return &Engine{loc: loc}, nil
}

// NewColomboEngine creates an engine for domain.Timezone
func NewColomboEngine() (*Engine, error) {
	loc, err := time.LoadLocation(domain.Timezone)
	if err != nil {
		return nil, fmt.Errorf("availability: load %s: %w", domain.Timezone, err)
	}
	return NewEngine(loc)
}

// Location returns the engine zone
func (e *Engine) Location() *time.Location {
	return e.loc
}

// Day returns the local date of t in the engine zone
func (e *Engine) Day(t time.Time) zoned.Day {
	return zoned.DayOf(t, e.loc)
}

// GenerateSlots normalizes t into the engine zone and generates the slots of that local day.
// A nil lookup means the default schedule.
func (e *Engine) GenerateSlots(t time.Time, bookings []*domain.Booking, lookup ScheduleLookup, slotDurationMinutes int) ([]domain.Slot, error) {
	day := e.Day(t)
	return GenerateSlots(day, bookings, scheduleFor(lookup, day.Weekday()), slotDurationMinutes)
}

// IsSlotAvailable checks a single proposed interval
func (e *Engine) IsSlotAvailable(start time.Time, durationMinutes int, bookings []*domain.Booking) (bool, error) {
	return IsSlotAvailable(start, durationMinutes, bookings)
}

// NextAvailableDate scans daysAhead local days starting with the day of from and returns the
// first one that has at least one slot starting at or after from. found is false when the whole
// window is booked, which is a normal outcome rather than an error.
//
// Bookings carry absolute timestamps, so one list covering the whole window is correct:
// a booking can only remove slots it actually intersects.
func (e *Engine) NextAvailableDate(
	from time.Time,
	bookings []*domain.Booking,
	lookup ScheduleLookup,
	slotDurationMinutes int,
	daysAhead int,
) (zoned.Day, bool, error) {
	if daysAhead <= 0 {
		return zoned.Day{}, false, fmt.Errorf("%w: got %d", ErrInvalidDaysAhead, daysAhead)
	}

	first := e.Day(from)
	for i := 0; i < daysAhead; i++ {
		candidate := first.AddDays(i)

		slots, err := GenerateSlots(candidate, bookings, scheduleFor(lookup, candidate.Weekday()), slotDurationMinutes)
		if err != nil {
			return zoned.Day{}, false, err
		}

		if len(StartingFrom(slots, from)) > 0 {
			return candidate, true, nil
		}
	}

	return zoned.Day{}, false, nil
}

// StartingFrom drops slots that start before t
func StartingFrom(slots []domain.Slot, t time.Time) []domain.Slot {
	result := make([]domain.Slot, 0, len(slots))
	for _, s := range slots {
		if !s.Start.Before(t) {
			result = append(result, s)
		}
	}
	return result
}

func scheduleFor(lookup ScheduleLookup, weekday time.Weekday) domain.WorkSchedule {
	if lookup == nil {
		return domain.DefaultWorkSchedule()
	}
	return lookup.ScheduleFor(weekday)
}
