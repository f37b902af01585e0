package get_schedule

import (
	"context"

	"github.com/m04kA/ayurveda-booking-service/internal/service/schedule/models"
)

type ScheduleService interface {
	GetWeekly(ctx context.Context, practitionerID int64) (*models.WeeklyScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
