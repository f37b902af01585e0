// Package zoned models a calendar day bound to an explicit time zone.
//
// Wall-clock arithmetic (working hours, breaks) is always done through a Day so that
// local times are resolved in the zone the schedule is defined in, never in time.Local
// or in whatever location an incoming timestamp happened to carry.
package zoned

import (
	"fmt"
	"time"

	"github.com/m04kA/ayurveda-booking-service/pkg/types"
)

// DateLayout is the wire format of a Day
const DateLayout = "2006-01-02"

// Day is a (date, zone) pair. The zero value has no location and IsZero reports true.
type Day struct {
	year  int
	month time.Month
	day   int
	loc   *time.Location
}

// NewDay builds a day; out-of-range values are normalized the way time.Date does
func NewDay(year int, month time.Month, day int, loc *time.Location) Day {
	t := time.Date(year, month, day, 0, 0, 0, 0, loc)
	y, m, d := t.Date()
	return Day{year: y, month: m, day: d, loc: loc}
}

// DayOf converts an absolute timestamp into loc and takes its local date
func DayOf(t time.Time, loc *time.Location) Day {
	y, m, d := t.In(loc).Date()
	return Day{year: y, month: m, day: d, loc: loc}
}

// ParseDay parses YYYY-MM-DD as a date in loc
func ParseDay(s string, loc *time.Location) (Day, error) {
	t, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return Day{}, fmt.Errorf("zoned: parse day %q: %w", s, err)
	}
	return DayOf(t, loc), nil
}

// Location returns the zone of the day
func (d Day) Location() *time.Location {
	return d.loc
}

// IsZero reports whether the day was never set
func (d Day) IsZero() bool {
	return d.loc == nil && d.year == 0 && d.month == 0 && d.day == 0
}

// StartOfDay is local midnight
func (d Day) StartOfDay() time.Time {
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, d.loc)
}

// At returns the absolute instant of the given wall-clock time on this day
func (d Day) At(tod types.TimeString) time.Time {
	return time.Date(d.year, d.month, d.day, tod.Hour(), tod.Minute(), 0, 0, d.loc)
}

// AddDays moves by n calendar days, keeping the zone
func (d Day) AddDays(n int) Day {
	return NewDay(d.year, d.month, d.day+n, d.loc)
}

// Weekday of the local date
func (d Day) Weekday() time.Weekday {
	return d.StartOfDay().Weekday()
}

// Contains reports whether t falls on this local date
func (d Day) Contains(t time.Time) bool {
	return DayOf(t, d.loc).Equal(d)
}

// Equal compares dates; zones are compared by name
func (d Day) Equal(other Day) bool {
	return d.year == other.year && d.month == other.month && d.day == other.day &&
		d.locName() == other.locName()
}

// Before compares calendar dates only
func (d Day) Before(other Day) bool {
	if d.year != other.year {
		return d.year < other.year
	}
	if d.month != other.month {
		return d.month < other.month
	}
	return d.day < other.day
}

// String formats the day as YYYY-MM-DD
func (d Day) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.year, int(d.month), d.day)
}

func (d Day) locName() string {
	if d.loc == nil {
		return ""
	}
	return d.loc.String()
}
