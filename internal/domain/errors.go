package domain

import "errors"

var (
	// ErrInvalidSchedule is returned when a work schedule breaks its ordering rules
	ErrInvalidSchedule = errors.New("domain: invalid work schedule")

	// ErrInvalidWeekday is returned for an unknown weekday name
	ErrInvalidWeekday = errors.New("domain: invalid weekday")
)
