package list_schedule

import (
	"context"

	"github.com/m04kA/ayurveda-booking-service/internal/service/schedule/models"
)

type ScheduleService interface {
	List(ctx context.Context, practitionerID int64, userID int64) (*models.ScheduleListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
