package domain

import "time"

// BookingPolicy rules that bound what can be booked and queried
type BookingPolicy struct {
	SlotDurationMinutes     int // длительность слота по умолчанию
	DaysAhead               int // окно поиска ближайшей свободной даты по умолчанию
	AdvanceBookingDays      int // 0 = без ограничения
	MinBookingNoticeMinutes int
}

// DefaultBookingPolicy returns the built-in defaults
func DefaultBookingPolicy() BookingPolicy {
	return BookingPolicy{
		SlotDurationMinutes:     DefaultSlotDurationMinutes,
		DaysAhead:               DefaultDaysAhead,
		AdvanceBookingDays:      DefaultAdvanceBookingDays,
		MinBookingNoticeMinutes: DefaultMinBookingNoticeMinutes,
	}
}

// HasAdvanceBookingLimit returns true if there's a limit on how far in advance bookings can be made
func (p BookingPolicy) HasAdvanceBookingLimit() bool {
	return p.AdvanceBookingDays > 0
}

// EarliestStart is the first instant a new booking may start at
func (p BookingPolicy) EarliestStart(now time.Time) time.Time {
	return now.Add(time.Duration(p.MinBookingNoticeMinutes) * time.Minute)
}

// BookingLookbehind is how far before a window bookings must be loaded to catch ones running into it
const BookingLookbehind = MaxSlotDurationMinutes * time.Minute
