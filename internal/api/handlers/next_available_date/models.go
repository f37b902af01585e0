package next_available_date

import (
	getAvailableSlotsHandler "github.com/m04kA/ayurveda-booking-service/internal/api/handlers/get_available_slots"
	nextAvailableDate "github.com/m04kA/ayurveda-booking-service/internal/usecase/next_available_date"
)

// NextAvailableDateResponse HTTP response model
// Found = false и пустые date/firstSlot - в окне поиска нет свободных слотов
type NextAvailableDateResponse struct {
	PractitionerID  int64                                  `json:"practitionerId"`
	Found           bool                                   `json:"found"`
	Date            *string                                `json:"date,omitempty"`
	FirstSlot       *getAvailableSlotsHandler.SlotResponse `json:"firstSlot,omitempty"`
	DaysAhead       int                                    `json:"daysAhead"`
	DurationMinutes int                                    `json:"durationMinutes"`
	Timezone        string                                 `json:"timezone"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *nextAvailableDate.Response) *NextAvailableDateResponse {
	out := &NextAvailableDateResponse{
		PractitionerID:  resp.PractitionerID,
		Found:           resp.Found,
		DaysAhead:       resp.DaysAhead,
		DurationMinutes: resp.DurationMinutes,
		Timezone:        resp.Timezone,
	}

	if resp.Date != nil {
		date := resp.Date.String()
		out.Date = &date
	}
	if resp.FirstSlot != nil {
		slot := getAvailableSlotsHandler.FromDomainSlot(*resp.FirstSlot)
		out.FirstSlot = &slot
	}

	return out
}
