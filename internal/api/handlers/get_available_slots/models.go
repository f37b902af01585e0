package get_available_slots

import (
	"time"

	"github.com/m04kA/ayurveda-booking-service/internal/domain"
	getAvailableSlots "github.com/m04kA/ayurveda-booking-service/internal/usecase/get_available_slots"
)

// SlotResponse HTTP модель слота
type SlotResponse struct {
	StartTime       string    `json:"startTime"` // "10:00" по времени специалиста
	EndTime         string    `json:"endTime"`
	StartsAt        time.Time `json:"startsAt"`
	EndsAt          time.Time `json:"endsAt"`
	DurationMinutes int       `json:"durationMinutes"`
	Available       bool      `json:"available"`
}

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	PractitionerID  int64          `json:"practitionerId"`
	Date            string         `json:"date"`
	Timezone        string         `json:"timezone"`
	DurationMinutes int            `json:"durationMinutes"`
	Slots           []SlotResponse `json:"slots"`
}

// ToUseCaseRequest формирует запрос к use case
func ToUseCaseRequest(practitionerID int64, date string, durationMinutes int) *getAvailableSlots.Request {
	return &getAvailableSlots.Request{
		PractitionerID:  practitionerID,
		Date:            date,
		DurationMinutes: durationMinutes,
	}
}

// FromDomainSlot конвертирует слот в HTTP модель
func FromDomainSlot(slot domain.Slot) SlotResponse {
	return SlotResponse{
		StartTime:       slot.Start.Format(domain.TimeFormat),
		EndTime:         slot.End.Format(domain.TimeFormat),
		StartsAt:        slot.Start,
		EndsAt:          slot.End,
		DurationMinutes: slot.DurationMinutes,
		Available:       slot.Available,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, slot := range resp.Slots {
		slots = append(slots, FromDomainSlot(slot))
	}

	return &AvailableSlotsResponse{
		PractitionerID:  resp.PractitionerID,
		Date:            resp.Date.String(),
		Timezone:        resp.Timezone,
		DurationMinutes: resp.DurationMinutes,
		Slots:           slots,
	}
}
