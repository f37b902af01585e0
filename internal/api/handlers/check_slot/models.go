package check_slot

import (
	"time"

	checkSlot "github.com/m04kA/ayurveda-booking-service/internal/usecase/check_slot"
)

// SlotAvailabilityResponse HTTP response model
type SlotAvailabilityResponse struct {
	PractitionerID     int64     `json:"practitionerId"`
	StartsAt           time.Time `json:"startsAt"`
	EndsAt             time.Time `json:"endsAt"`
	DurationMinutes    int       `json:"durationMinutes"`
	Available          bool      `json:"available"`
	WithinWorkingHours bool      `json:"withinWorkingHours"`
	Bookable           bool      `json:"bookable"`
}

// ToUseCaseRequest разбирает startsAt (RFC 3339) и формирует запрос к use case
func ToUseCaseRequest(practitionerID int64, startsAt string, durationMinutes int) (*checkSlot.Request, error) {
	start, err := time.Parse(time.RFC3339, startsAt)
	if err != nil {
		return nil, err
	}

	return &checkSlot.Request{
		PractitionerID:  practitionerID,
		StartsAt:        start,
		DurationMinutes: durationMinutes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkSlot.Response) *SlotAvailabilityResponse {
	return &SlotAvailabilityResponse{
		PractitionerID:     resp.PractitionerID,
		StartsAt:           resp.StartsAt,
		EndsAt:             resp.EndsAt,
		DurationMinutes:    resp.DurationMinutes,
		Available:          resp.Available,
		WithinWorkingHours: resp.WithinWorkingHours,
		Bookable:           resp.Bookable,
	}
}
