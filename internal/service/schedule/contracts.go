package schedule

import (
	"context"
	"time"

	"github.com/m04kA/ayurveda-booking-service/internal/domain"
)

// ScheduleRepository интерфейс репозитория расписаний
type ScheduleRepository interface {
	Create(ctx context.Context, s *domain.PractitionerSchedule) (*domain.PractitionerSchedule, error)
	Update(ctx context.Context, id int64, s *domain.PractitionerSchedule) (*domain.PractitionerSchedule, error)
	GetAllByPractitioner(ctx context.Context, practitionerID int64) ([]*domain.PractitionerSchedule, error)
	Delete(ctx context.Context, practitionerID int64, weekday *time.Weekday) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
