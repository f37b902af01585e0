package jobs

import (
	"context"
	"fmt"
	"time"
)

// BookingCompleter переводит закончившиеся бронирования в completed
type BookingCompleter interface {
	CompleteEnded(ctx context.Context, endedBefore time.Time) (int64, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// CompleteBookingsJob закрывает подтвержденные и идущие сеансы,
// которые закончились больше чем grace назад
type CompleteBookingsJob struct {
	repo    BookingCompleter
	grace   time.Duration
	timeout time.Duration
	logger  Logger
	now     func() time.Time
}

func NewCompleteBookingsJob(repo BookingCompleter, grace time.Duration, logger Logger) *CompleteBookingsJob {
	return &CompleteBookingsJob{
		repo:    repo,
		grace:   grace,
		timeout: time.Minute,
		logger:  logger,
		now:     time.Now,
	}
}

// Name используется в логах планировщика
func (j *CompleteBookingsJob) Name() string {
	return "complete_bookings"
}

// Execute выполняет один проход
func (j *CompleteBookingsJob) Execute(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, j.timeout)
	defer cancel()

	endedBefore := j.now().Add(-j.grace)

	completed, err := j.repo.CompleteEnded(ctx, endedBefore)
	if err != nil {
		j.logger.Error("CompleteBookingsJob: failed to complete bookings ended before %s: %v",
			endedBefore.Format(time.RFC3339), err)
		return fmt.Errorf("complete ended bookings: %w", err)
	}

	if completed > 0 {
		j.logger.Info("CompleteBookingsJob: completed %d bookings ended before %s", completed, endedBefore.Format(time.RFC3339))
	}
	return nil
}
