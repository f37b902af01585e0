package create_booking

import (
	"time"

	"github.com/m04kA/ayurveda-booking-service/internal/domain"
	createBooking "github.com/m04kA/ayurveda-booking-service/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
// Клиент берется из заголовка X-User-ID
type CreateBookingRequest struct {
	PractitionerID  int64   `json:"practitionerId"`
	StartsAt        string  `json:"startsAt"` // RFC 3339, "2025-10-15T10:00:00+05:30"
	DurationMinutes int     `json:"durationMinutes,omitempty"`
	TreatmentName   *string `json:"treatmentName,omitempty"`
	Notes           *string `json:"notes,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID              int64     `json:"id"`
	ClientID        int64     `json:"clientId"`
	PractitionerID  int64     `json:"practitionerId"`
	Date            string    `json:"date"`
	StartTime       string    `json:"startTime"`
	StartsAt        time.Time `json:"startsAt"`
	EndsAt          time.Time `json:"endsAt"`
	DurationMinutes int       `json:"durationMinutes"`
	Status          string    `json:"status"`
	TreatmentName   *string   `json:"treatmentName,omitempty"`
	Notes           *string   `json:"notes,omitempty"`
	CreatedAt       string    `json:"createdAt"`
	UpdatedAt       string    `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(clientID int64) (*createBooking.Request, error) {
	startsAt, err := time.Parse(time.RFC3339, r.StartsAt)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		ClientID:        clientID,
		PractitionerID:  r.PractitionerID,
		StartsAt:        startsAt,
		DurationMinutes: r.DurationMinutes,
		TreatmentName:   r.TreatmentName,
		Notes:           r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:              resp.ID,
		ClientID:        resp.ClientID,
		PractitionerID:  resp.PractitionerID,
		Date:            resp.StartsAt.Format(domain.DateFormat),
		StartTime:       resp.StartsAt.Format(domain.TimeFormat),
		StartsAt:        resp.StartsAt,
		EndsAt:          resp.EndsAt,
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		TreatmentName:   resp.TreatmentName,
		Notes:           resp.Notes,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
