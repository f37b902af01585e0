package domain

import (
	"time"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending                 BookingStatus = "pending"
	StatusConfirmed               BookingStatus = "confirmed"
	StatusInProgress              BookingStatus = "in_progress"
	StatusCompleted               BookingStatus = "completed"
	StatusCancelledByClient       BookingStatus = "cancelled_by_client"
	StatusCancelledByPractitioner BookingStatus = "cancelled_by_practitioner"
	StatusNoShow                  BookingStatus = "no_show"
)

// IsValid reports whether s is a known status
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusInProgress, StatusCompleted,
		StatusCancelledByClient, StatusCancelledByPractitioner, StatusNoShow:
		return true
	}
	return false
}

// Booking is a client's appointment with a practitioner.
// StartsAt is an absolute instant; local dates are derived in the practitioner zone when needed.
type Booking struct {
	ID              int64
	ClientID        int64
	PractitionerID  int64
	StartsAt        time.Time
	DurationMinutes int
	Status          BookingStatus

	TreatmentName *string
	Notes         *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EndsAt returns the exclusive end of the booking
func (b *Booking) EndsAt() time.Time {
	return b.StartsAt.Add(time.Duration(b.DurationMinutes) * time.Minute)
}

// IsActive returns true if the booking still occupies the practitioner's time
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelledByClient &&
		b.Status != StatusCancelledByPractitioner &&
		b.Status != StatusNoShow
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsCancelled returns true if the booking has been cancelled by either side
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelledByClient || b.Status == StatusCancelledByPractitioner
}

// IsCompleted returns true if the booking is completed or was a no-show
func (b *Booking) IsCompleted() bool {
	return b.Status == StatusCompleted || b.Status == StatusNoShow
}

// IsParticipant reports whether the user is the client or the practitioner of the booking
func (b *Booking) IsParticipant(userID int64) bool {
	return b.ClientID == userID || b.PractitionerID == userID
}

// PractitionerBookingsFilter фильтр для получения бронирований практикующего специалиста
type PractitionerBookingsFilter struct {
	PractitionerID  int64          // Обязательный параметр
	From            *time.Time     // Начало периода по starts_at, включительно (nil - без ограничения)
	To              *time.Time     // Конец периода по starts_at, не включительно (nil - без ограничения)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли неактивные бронирования (отмененные, no-show)
}
