package domain

import "time"

// Slot is a bookable interval [Start, End) produced by slot generation.
// Emitted slots are always available; taken slots are omitted rather than flagged.
type Slot struct {
	Start           time.Time
	End             time.Time
	DurationMinutes int
	Available       bool
}

// Overlaps uses the half-open test: touching intervals do not overlap
func (s Slot) Overlaps(start, end time.Time) bool {
	return s.Start.Before(end) && s.End.After(start)
}
