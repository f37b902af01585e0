package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// Job периодическая задача
type Job interface {
	Name() string
	Execute(ctx context.Context) error
}

// Scheduler запускает задачи по cron выражениям (время Asia/Colombo)
// Запуск задачи пропускается, если предыдущий еще не закончился
type Scheduler struct {
	cron   *cron.Cron
	ctx    context.Context
	cancel context.CancelFunc
	logger Logger
}

func NewScheduler(loc *time.Location, logger Logger) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	cronLogger := &cronLogger{logger: logger}

	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithLogger(cronLogger),
			cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
		),
		ctx:    ctx,
		cancel: cancel,
		logger: logger,
	}
}

// Register добавляет задачу; spec - стандартное выражение из 5 полей
func (s *Scheduler) Register(spec string, job Job) error {
	_, err := s.cron.AddFunc(spec, func() {
		if err := job.Execute(s.ctx); err != nil {
			s.logger.Warn("Scheduler: job %s failed: %v", job.Name(), err)
		}
	})
	if err != nil {
		return fmt.Errorf("register job %s with spec %q: %w", job.Name(), spec, err)
	}

	s.logger.Info("Scheduler: job %s registered with spec %q", job.Name(), spec)
	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop отменяет контекст задач и ждет завершения запущенных
func (s *Scheduler) Stop(ctx context.Context) error {
	s.cancel()
	done := s.cron.Stop()

	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// cronLogger адаптирует Logger к интерфейсу cron.Logger
type cronLogger struct {
	logger Logger
}

func (l *cronLogger) Info(msg string, keysAndValues ...interface{}) {
	// cron пишет служебные сообщения о каждом запуске, нам они не нужны
}

func (l *cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error("cron: %s: %v %v", msg, err, keysAndValues)
}
