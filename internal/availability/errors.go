package availability

import "errors"

var (
	// ErrInvalidDuration is returned for a non-positive slot or booking duration
	ErrInvalidDuration = errors.New("availability: duration must be positive")

	// ErrInvalidDaysAhead is returned when the search window is empty
	ErrInvalidDaysAhead = errors.New("availability: days ahead must be positive")

	// ErrNoLocation is returned when an engine is built without a time zone
	ErrNoLocation = errors.New("availability: location is required")
)
