package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/ayurveda-booking-service/pkg/types"
)

// WorkSchedule is the working window of one practitioner for one local day.
// Times are wall-clock values in the practitioner zone. The break is optional;
// either both break fields are set or neither is.
type WorkSchedule struct {
	StartTime  types.TimeString
	EndTime    types.TimeString
	BreakStart types.TimeString
	BreakEnd   types.TimeString
	Available  bool
}

// DefaultWorkSchedule returns 09:00-18:00 with a 12:00-13:00 break
func DefaultWorkSchedule() WorkSchedule {
	return WorkSchedule{
		StartTime:  DefaultWorkStart,
		EndTime:    DefaultWorkEnd,
		BreakStart: DefaultBreakStart,
		BreakEnd:   DefaultBreakEnd,
		Available:  true,
	}
}

// HasBreak returns true if a break window is configured
func (s WorkSchedule) HasBreak() bool {
	return !s.BreakStart.IsZero() && !s.BreakEnd.IsZero()
}

// ScheduleFor returns the same schedule for every weekday
func (s WorkSchedule) ScheduleFor(time.Weekday) WorkSchedule {
	return s
}

// Validate checks start < end and, when a break is set, start <= breakStart < breakEnd <= end
func (s WorkSchedule) Validate() error {
	if err := s.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: start time: %v", ErrInvalidSchedule, err)
	}
	if err := s.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: end time: %v", ErrInvalidSchedule, err)
	}
	if !s.StartTime.IsBefore(s.EndTime) {
		return fmt.Errorf("%w: start %s must be before end %s", ErrInvalidSchedule, s.StartTime, s.EndTime)
	}

	if s.BreakStart.IsZero() != s.BreakEnd.IsZero() {
		return fmt.Errorf("%w: break start and break end must be set together", ErrInvalidSchedule)
	}
	if !s.HasBreak() {
		return nil
	}

	if err := s.BreakStart.Validate(); err != nil {
		return fmt.Errorf("%w: break start: %v", ErrInvalidSchedule, err)
	}
	if err := s.BreakEnd.Validate(); err != nil {
		return fmt.Errorf("%w: break end: %v", ErrInvalidSchedule, err)
	}
	if !s.BreakStart.IsBefore(s.BreakEnd) {
		return fmt.Errorf("%w: break start %s must be before break end %s", ErrInvalidSchedule, s.BreakStart, s.BreakEnd)
	}
	if s.BreakStart.IsBefore(s.StartTime) || s.BreakEnd.IsAfter(s.EndTime) {
		return fmt.Errorf("%w: break %s-%s must lie within %s-%s",
			ErrInvalidSchedule, s.BreakStart, s.BreakEnd, s.StartTime, s.EndTime)
	}

	return nil
}

// ScheduleOverrides is a partial WorkSchedule. Nil fields keep the base value.
// WithoutBreak removes the base break; it is applied before BreakStart/BreakEnd.
type ScheduleOverrides struct {
	StartTime    *types.TimeString
	EndTime      *types.TimeString
	BreakStart   *types.TimeString
	BreakEnd     *types.TimeString
	Available    *bool
	WithoutBreak bool
}

// MergeSchedule applies overrides to base field by field
func MergeSchedule(base WorkSchedule, o ScheduleOverrides) WorkSchedule {
	merged := base

	if o.StartTime != nil {
		merged.StartTime = *o.StartTime
	}
	if o.EndTime != nil {
		merged.EndTime = *o.EndTime
	}
	if o.WithoutBreak {
		merged.BreakStart = ""
		merged.BreakEnd = ""
	}
	if o.BreakStart != nil {
		merged.BreakStart = *o.BreakStart
	}
	if o.BreakEnd != nil {
		merged.BreakEnd = *o.BreakEnd
	}
	if o.Available != nil {
		merged.Available = *o.Available
	}

	return merged
}

// PractitionerSchedule is a stored schedule row.
// Weekday == nil means the row applies to every day of the week; a weekday row is applied on top of it.
type PractitionerSchedule struct {
	ID             int64
	PractitionerID int64
	Weekday        *time.Weekday
	StartTime      *types.TimeString
	EndTime        *types.TimeString
	BreakStart     *types.TimeString
	BreakEnd       *types.TimeString
	Available      *bool
	WithoutBreak   bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsPractitionerWide returns true if the row is not bound to a weekday
func (p *PractitionerSchedule) IsPractitionerWide() bool {
	return p.Weekday == nil
}

// AppliesTo reports whether the row affects the given weekday
func (p *PractitionerSchedule) AppliesTo(weekday time.Weekday) bool {
	return p.Weekday == nil || *p.Weekday == weekday
}

// Overrides converts the row into merge overrides
func (p *PractitionerSchedule) Overrides() ScheduleOverrides {
	return ScheduleOverrides{
		StartTime:    p.StartTime,
		EndTime:      p.EndTime,
		BreakStart:   p.BreakStart,
		BreakEnd:     p.BreakEnd,
		Available:    p.Available,
		WithoutBreak: p.WithoutBreak,
	}
}

// WeeklySchedule holds the resolved schedule for every weekday, indexed by time.Weekday
type WeeklySchedule [7]WorkSchedule

// NewWeeklySchedule repeats the same schedule for all days
func NewWeeklySchedule(s WorkSchedule) WeeklySchedule {
	var w WeeklySchedule
	for i := range w {
		w[i] = s
	}
	return w
}

// ScheduleFor returns the schedule of a weekday
func (w WeeklySchedule) ScheduleFor(weekday time.Weekday) WorkSchedule {
	return w[weekday]
}

// Validate validates every day
func (w WeeklySchedule) Validate() error {
	for i, s := range w {
		if err := s.Validate(); err != nil {
			return fmt.Errorf("%s: %w", time.Weekday(i), err)
		}
	}
	return nil
}

// ResolveWeeklySchedule applies stored rows to base for every weekday:
// base <- practitioner-wide row <- weekday row
func ResolveWeeklySchedule(base WorkSchedule, rows []*PractitionerSchedule) WeeklySchedule {
	weekly := NewWeeklySchedule(base)

	for _, row := range rows {
		if row.IsPractitionerWide() {
			for i := range weekly {
				weekly[i] = MergeSchedule(weekly[i], row.Overrides())
			}
		}
	}

	for _, row := range rows {
		if !row.IsPractitionerWide() {
			weekly[*row.Weekday] = MergeSchedule(weekly[*row.Weekday], row.Overrides())
		}
	}

	return weekly
}

// ParseWeekday parses an English weekday name such as "monday" (case-insensitive)
func ParseWeekday(s string) (time.Weekday, error) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(s, d.String()) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidWeekday, s)
}
