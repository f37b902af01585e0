package check_slot

import (
	"context"
	"time"

	"github.com/m04kA/ayurveda-booking-service/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// GetByPractitionerWithFilter получает бронирования специалиста по фильтру
	GetByPractitionerWithFilter(ctx context.Context, filter domain.PractitionerBookingsFilter) ([]*domain.Booking, error)
}

// ScheduleProvider интерфейс получения недельного расписания специалиста
type ScheduleProvider interface {
	// GetWeeklySchedule возвращает расписание с учетом иерархии (день недели -> общее -> по умолчанию)
	GetWeeklySchedule(ctx context.Context, practitionerID int64) (domain.WeeklySchedule, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
