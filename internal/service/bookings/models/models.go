package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/ayurveda-booking-service/internal/domain"
	"github.com/m04kA/ayurveda-booking-service/pkg/ptr"
	"github.com/m04kA/ayurveda-booking-service/pkg/zoned"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")

	// ErrInvalidDateRange возвращается, когда период задан некорректно
	ErrInvalidDateRange = errors.New("invalid date range")
)

// Request модели

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	UserID             int64  `json:"-"`
	CancellationReason string `json:"cancellationReason"`
}

// UpdateStatusRequest запрос на обновление статуса бронирования
type UpdateStatusRequest struct {
	UserID int64  `json:"-"`
	Status string `json:"status"`
}

// GetClientBookingsRequest запрос на получение бронирований клиента
type GetClientBookingsRequest struct {
	ClientID int64
	Status   *string
}

// GetPractitionerBookingsRequest запрос на получение бронирований специалиста
type GetPractitionerBookingsRequest struct {
	UserID          int64
	PractitionerID  int64
	StartDate       *string // Начало периода YYYY-MM-DD, включительно (опционально)
	EndDate         *string // Конец периода YYYY-MM-DD, включительно (опционально)
	Status          *string // Фильтр по статусу (опционально)
	IncludeInactive bool    // Включить отменённые и неявки
}

// ToDomainFilter конвертирует request в domain фильтр
// Даты понимаются как локальные дни в loc
func (r *GetPractitionerBookingsRequest) ToDomainFilter(loc *time.Location) (domain.PractitionerBookingsFilter, error) {
	filter := domain.PractitionerBookingsFilter{
		PractitionerID:  r.PractitionerID,
		IncludeInactive: r.IncludeInactive,
	}

	var start, end zoned.Day
	if r.StartDate != nil {
		day, err := zoned.ParseDay(*r.StartDate, loc)
		if err != nil {
			return filter, fmt.Errorf("%w: startDate: %v", ErrInvalidDateRange, err)
		}
		start = day
		filter.From = ptr.Ptr(day.StartOfDay())
	}

	if r.EndDate != nil {
		day, err := zoned.ParseDay(*r.EndDate, loc)
		if err != nil {
			return filter, fmt.Errorf("%w: endDate: %v", ErrInvalidDateRange, err)
		}
		end = day
		filter.To = ptr.Ptr(day.AddDays(1).StartOfDay())
	}

	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		return filter, fmt.Errorf("%w: endDate %s is before startDate %s", ErrInvalidDateRange, end, start)
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID              int64     `json:"id"`
	ClientID        int64     `json:"clientId"`
	PractitionerID  int64     `json:"practitionerId"`
	Date            string    `json:"date"`      // "2025-10-15" по времени специалиста
	StartTime       string    `json:"startTime"` // "10:00"
	StartsAt        time.Time `json:"startsAt"`
	EndsAt          time.Time `json:"endsAt"`
	DurationMinutes int       `json:"durationMinutes"`
	Status          string    `json:"status"`

	TreatmentName *string `json:"treatmentName,omitempty"`
	Notes         *string `json:"notes,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO, время выводится в loc
func FromDomainBooking(b *domain.Booking, loc *time.Location) *BookingResponse {
	if b == nil {
		return nil
	}

	startsAt := b.StartsAt.In(loc)
	resp := &BookingResponse{
		ID:                 b.ID,
		ClientID:           b.ClientID,
		PractitionerID:     b.PractitionerID,
		Date:               startsAt.Format(domain.DateFormat),
		StartTime:          startsAt.Format(domain.TimeFormat),
		StartsAt:           startsAt,
		EndsAt:             b.EndsAt().In(loc),
		DurationMinutes:    b.DurationMinutes,
		Status:             string(b.Status),
		TreatmentName:      b.TreatmentName,
		Notes:              b.Notes,
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	// Конвертируем CancelledAt в строку ISO 8601
	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.In(loc).Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking, loc *time.Location) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking, loc); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)
	if !s.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	return s, nil
}
