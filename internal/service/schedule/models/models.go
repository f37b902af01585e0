package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/ayurveda-booking-service/internal/domain"
	"github.com/m04kA/ayurveda-booking-service/pkg/types"
)

// Request модели

// UpsertScheduleRequest запрос на создание или замену строки расписания
// Weekday == nil - строка для всех дней недели
// Все поля времени опциональны - незаданные берутся из уровня ниже
type UpsertScheduleRequest struct {
	UserID         int64   `json:"-"`
	PractitionerID int64   `json:"-"`
	Weekday        *string `json:"weekday,omitempty"`    // "monday" ... "sunday"
	StartTime      *string `json:"startTime,omitempty"`  // "09:00"
	EndTime        *string `json:"endTime,omitempty"`    // "18:00"
	BreakStart     *string `json:"breakStart,omitempty"` // "12:00"
	BreakEnd       *string `json:"breakEnd,omitempty"`   // "13:00"
	Available      *bool   `json:"available,omitempty"`  // false - выходной
	WithoutBreak   bool    `json:"withoutBreak,omitempty"`
}

// DeleteScheduleRequest запрос на удаление строки расписания
type DeleteScheduleRequest struct {
	UserID         int64
	PractitionerID int64
	Weekday        *string
}

// ParseWeekday разбирает необязательный день недели
func ParseWeekday(weekday *string) (*time.Weekday, error) {
	if weekday == nil || *weekday == "" {
		return nil, nil
	}
	d, err := domain.ParseWeekday(*weekday)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// ToDomainSchedule конвертирует request в строку расписания
func (r *UpsertScheduleRequest) ToDomainSchedule() (*domain.PractitionerSchedule, error) {
	weekday, err := ParseWeekday(r.Weekday)
	if err != nil {
		return nil, err
	}

	row := &domain.PractitionerSchedule{
		PractitionerID: r.PractitionerID,
		Weekday:        weekday,
		Available:      r.Available,
		WithoutBreak:   r.WithoutBreak,
	}

	fields := []struct {
		name  string
		value *string
		dst   **types.TimeString
	}{
		{name: "startTime", value: r.StartTime, dst: &row.StartTime},
		{name: "endTime", value: r.EndTime, dst: &row.EndTime},
		{name: "breakStart", value: r.BreakStart, dst: &row.BreakStart},
		{name: "breakEnd", value: r.BreakEnd, dst: &row.BreakEnd},
	}

	for _, f := range fields {
		if f.value == nil {
			continue
		}
		ts, err := types.NewTimeStringFromString(*f.value)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f.name, err)
		}
		*f.dst = &ts
	}

	if row.WithoutBreak && (row.BreakStart != nil || row.BreakEnd != nil) {
		return nil, fmt.Errorf("withoutBreak cannot be combined with breakStart/breakEnd")
	}

	return row, nil
}

// Response модели

// ScheduleResponse ответ с данными строки расписания
type ScheduleResponse struct {
	ID             int64     `json:"id"`
	PractitionerID int64     `json:"practitionerId"`
	Weekday        *string   `json:"weekday,omitempty"`
	StartTime      *string   `json:"startTime,omitempty"`
	EndTime        *string   `json:"endTime,omitempty"`
	BreakStart     *string   `json:"breakStart,omitempty"`
	BreakEnd       *string   `json:"breakEnd,omitempty"`
	Available      *bool     `json:"available,omitempty"`
	WithoutBreak   bool      `json:"withoutBreak"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// ScheduleListResponse ответ со списком строк расписания
type ScheduleListResponse struct {
	Schedules []ScheduleResponse `json:"schedules"`
}

// DayScheduleResponse итоговое расписание на день недели
type DayScheduleResponse struct {
	Weekday    string  `json:"weekday"`
	Available  bool    `json:"available"`
	StartTime  string  `json:"startTime"`
	EndTime    string  `json:"endTime"`
	BreakStart *string `json:"breakStart,omitempty"`
	BreakEnd   *string `json:"breakEnd,omitempty"`
}

// WeeklyScheduleResponse итоговое недельное расписание специалиста
type WeeklyScheduleResponse struct {
	PractitionerID int64                 `json:"practitionerId"`
	Timezone       string                `json:"timezone"`
	Days           []DayScheduleResponse `json:"days"` // с понедельника по воскресенье
}

// Методы конвертации

// FromDomainSchedule конвертирует domain модель в DTO
func FromDomainSchedule(s *domain.PractitionerSchedule) *ScheduleResponse {
	if s == nil {
		return nil
	}

	resp := &ScheduleResponse{
		ID:             s.ID,
		PractitionerID: s.PractitionerID,
		StartTime:      timeStringPtr(s.StartTime),
		EndTime:        timeStringPtr(s.EndTime),
		BreakStart:     timeStringPtr(s.BreakStart),
		BreakEnd:       timeStringPtr(s.BreakEnd),
		Available:      s.Available,
		WithoutBreak:   s.WithoutBreak,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}

	if s.Weekday != nil {
		name := strings.ToLower(s.Weekday.String())
		resp.Weekday = &name
	}

	return resp
}

// FromDomainScheduleList конвертирует список domain моделей в DTO
func FromDomainScheduleList(rows []*domain.PractitionerSchedule) *ScheduleListResponse {
	resp := &ScheduleListResponse{
		Schedules: make([]ScheduleResponse, 0, len(rows)),
	}

	for _, row := range rows {
		if r := FromDomainSchedule(row); r != nil {
			resp.Schedules = append(resp.Schedules, *r)
		}
	}

	return resp
}

// FromWeeklySchedule конвертирует итоговое расписание в DTO
func FromWeeklySchedule(practitionerID int64, timezone string, weekly domain.WeeklySchedule) *WeeklyScheduleResponse {
	resp := &WeeklyScheduleResponse{
		PractitionerID: practitionerID,
		Timezone:       timezone,
		Days:           make([]DayScheduleResponse, 0, len(weekly)),
	}

	// Неделя начинается с понедельника
	for i := 1; i <= len(weekly); i++ {
		weekday := time.Weekday(i % len(weekly))
		day := weekly.ScheduleFor(weekday)

		dayResp := DayScheduleResponse{
			Weekday:   strings.ToLower(weekday.String()),
			Available: day.Available,
			StartTime: day.StartTime.String(),
			EndTime:   day.EndTime.String(),
		}
		if day.HasBreak() {
			dayResp.BreakStart = timeStringPtr(&day.BreakStart)
			dayResp.BreakEnd = timeStringPtr(&day.BreakEnd)
		}

		resp.Days = append(resp.Days, dayResp)
	}

	return resp
}

func timeStringPtr(ts *types.TimeString) *string {
	if ts == nil {
		return nil
	}
	s := ts.String()
	return &s
}
