package domain

import "github.com/m04kA/ayurveda-booking-service/pkg/types"

// Timezone all schedules are defined in. Clinics operate in Sri Lanka only.
const Timezone = "Asia/Colombo"

// Default configuration values
const (
	DefaultSlotDurationMinutes     = 60
	DefaultDaysAhead               = 30
	DefaultAdvanceBookingDays      = 0  // 0 = unlimited
	DefaultMinBookingNoticeMinutes = 60 // 1 hour
)

// Default working window
const (
	DefaultWorkStart  types.TimeString = "09:00"
	DefaultWorkEnd    types.TimeString = "18:00"
	DefaultBreakStart types.TimeString = "12:00"
	DefaultBreakEnd   types.TimeString = "13:00"
)

// Business validation constants
const (
	MinSlotDurationMinutes      = 5
	MaxSlotDurationMinutes      = 480 // 8 hours
	MinDaysAhead                = 1
	MaxDaysAhead                = 365
	MinAdvanceBookingDays       = 0
	MaxAdvanceBookingDays       = 365 // 1 year
	MinBookingNoticeMinutes     = 0
	MaxBookingNoticeMinutes     = 10080 // 1 week
	MaxNotesLength              = 500
	MaxTreatmentNameLength      = 200
	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses список статусов неактивных бронирований
// Такие бронирования не занимают время специалиста
var InactiveStatuses = []BookingStatus{
	StatusCancelledByClient,
	StatusCancelledByPractitioner,
	StatusNoShow,
}

// ActiveStatuses список статусов активных бронирований
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusInProgress,
	StatusCompleted,
}
