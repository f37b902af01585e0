package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/ayurveda-booking-service/pkg/logger"
)

type MockBookingCompleter struct {
	mock.Mock
}

func (m *MockBookingCompleter) CompleteEnded(ctx context.Context, endedBefore time.Time) (int64, error) {
	args := m.Called(ctx, endedBefore)
	return args.Get(0).(int64), args.Error(1)
}

func TestCompleteBookingsJob_UsesGrace(t *testing.T) {
	now := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

	repo := new(MockBookingCompleter)
	repo.On("CompleteEnded", mock.Anything, now.Add(-30*time.Minute)).Return(int64(3), nil)

	job := NewCompleteBookingsJob(repo, 30*time.Minute, logger.NewNop())
	job.now = func() time.Time { return now }

	require.NoError(t, job.Execute(context.Background()))
	repo.AssertExpectations(t)
}

func TestCompleteBookingsJob_Error(t *testing.T) {
	repo := new(MockBookingCompleter)
	repo.On("CompleteEnded", mock.Anything, mock.Anything).Return(int64(0), errors.New("connection reset"))

	job := NewCompleteBookingsJob(repo, time.Minute, logger.NewNop())

	assert.Error(t, job.Execute(context.Background()))
}

func TestScheduler_RejectsBadSpec(t *testing.T) {
	s := NewScheduler(time.UTC, logger.NewNop())
	job := NewCompleteBookingsJob(new(MockBookingCompleter), time.Minute, logger.NewNop())

	assert.Error(t, s.Register("every quarter hour", job))
	assert.NoError(t, s.Register("*/15 * * * *", job))
}

func TestScheduler_StartStop(t *testing.T) {
	s := NewScheduler(time.UTC, logger.NewNop())
	s.Start()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	assert.NoError(t, s.Stop(ctx))
	assert.Error(t, s.ctx.Err(), "job context is cancelled on stop")
}
