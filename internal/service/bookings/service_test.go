package bookings

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/ayurveda-booking-service/internal/domain"
	bookingRepo "github.com/m04kA/ayurveda-booking-service/internal/infra/storage/booking"
	"github.com/m04kA/ayurveda-booking-service/internal/service/bookings/models"
	"github.com/m04kA/ayurveda-booking-service/pkg/ptr"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(*domain.Booking)
	return b, args.Error(1)
}

func (m *mockRepo) GetByClientID(ctx context.Context, clientID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	args := m.Called(ctx, clientID, status)
	b, _ := args.Get(0).([]*domain.Booking)
	return b, args.Error(1)
}

func (m *mockRepo) GetByPractitionerWithFilter(ctx context.Context, filter domain.PractitionerBookingsFilter) ([]*domain.Booking, error) {
	args := m.Called(ctx, filter)
	b, _ := args.Get(0).([]*domain.Booking)
	return b, args.Error(1)
}

func (m *mockRepo) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *mockRepo) Cancel(ctx context.Context, id int64, status domain.BookingStatus, reason string) error {
	return m.Called(ctx, id, status, reason).Error(0)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func colombo(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(domain.Timezone)
	require.NoError(t, err)
	return loc
}

func sampleBooking(status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:              1,
		ClientID:        100,
		PractitionerID:  200,
		StartsAt:        time.Date(2024, 1, 16, 4, 30, 0, 0, time.UTC), // 10:00 Colombo
		DurationMinutes: 60,
		Status:          status,
	}
}

func TestGetByID_Access(t *testing.T) {
	ctx := context.Background()
	repo := &mockRepo{}
	svc := NewService(repo, colombo(t), nopLogger{})
	repo.On("GetByID", ctx, int64(1)).Return(sampleBooking(domain.StatusConfirmed), nil)

	resp, err := svc.GetByID(ctx, 1, 100)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-16", resp.Date)
	assert.Equal(t, "10:00", resp.StartTime)
	assert.Equal(t, 11, resp.EndsAt.Hour())

	_, err = svc.GetByID(ctx, 1, 200)
	assert.NoError(t, err)

	_, err = svc.GetByID(ctx, 1, 300)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := &mockRepo{}
	svc := NewService(repo, colombo(t), nopLogger{})
	repo.On("GetByID", ctx, int64(9)).Return(nil, bookingRepo.ErrBookingNotFound)

	_, err := svc.GetByID(ctx, 9, 100)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetClientBookings(t *testing.T) {
	ctx := context.Background()
	repo := &mockRepo{}
	svc := NewService(repo, colombo(t), nopLogger{})

	status := domain.StatusConfirmed
	repo.On("GetByClientID", ctx, int64(100), &status).Return([]*domain.Booking{sampleBooking(status)}, nil)

	resp, err := svc.GetClientBookings(ctx, &models.GetClientBookingsRequest{ClientID: 100, Status: ptr.Ptr("confirmed")})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 1)

	_, err = svc.GetClientBookings(ctx, &models.GetClientBookingsRequest{ClientID: 100, Status: ptr.Ptr("cancelled")})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetPractitionerBookings(t *testing.T) {
	ctx := context.Background()
	loc := colombo(t)
	repo := &mockRepo{}
	svc := NewService(repo, loc, nopLogger{})

	repo.On("GetByPractitionerWithFilter", ctx, mock.MatchedBy(func(f domain.PractitionerBookingsFilter) bool {
		return f.PractitionerID == 200 &&
			f.From.Equal(time.Date(2024, 1, 15, 0, 0, 0, 0, loc)) &&
			f.To.Equal(time.Date(2024, 1, 18, 0, 0, 0, 0, loc)) &&
			f.IncludeInactive
	})).Return(nil, nil)

	resp, err := svc.GetPractitionerBookings(ctx, &models.GetPractitionerBookingsRequest{
		UserID:          200,
		PractitionerID:  200,
		StartDate:       ptr.Ptr("2024-01-15"),
		EndDate:         ptr.Ptr("2024-01-17"),
		IncludeInactive: true,
	})
	require.NoError(t, err)
	assert.NotNil(t, resp.Bookings)
	assert.Empty(t, resp.Bookings)

	_, err = svc.GetPractitionerBookings(ctx, &models.GetPractitionerBookingsRequest{UserID: 100, PractitionerID: 200})
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.GetPractitionerBookings(ctx, &models.GetPractitionerBookingsRequest{
		UserID:         200,
		PractitionerID: 200,
		StartDate:      ptr.Ptr("2024-01-17"),
		EndDate:        ptr.Ptr("2024-01-15"),
	})
	assert.ErrorIs(t, err, ErrInvalidTimeRange)
}

func TestCancel_StatusDependsOnRole(t *testing.T) {
	tests := []struct {
		name   string
		userID int64
		want   domain.BookingStatus
	}{
		{name: "client", userID: 100, want: domain.StatusCancelledByClient},
		{name: "practitioner", userID: 200, want: domain.StatusCancelledByPractitioner},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			repo := &mockRepo{}
			svc := NewService(repo, colombo(t), nopLogger{})

			repo.On("GetByID", ctx, int64(1)).Return(sampleBooking(domain.StatusConfirmed), nil)
			repo.On("Cancel", ctx, int64(1), tt.want, "fever").Return(nil)

			require.NoError(t, svc.Cancel(ctx, 1, &models.CancelBookingRequest{UserID: tt.userID, CancellationReason: "fever"}))
			repo.AssertExpectations(t)
		})
	}
}

func TestCancel_Rejections(t *testing.T) {
	ctx := context.Background()

	t.Run("stranger", func(t *testing.T) {
		repo := &mockRepo{}
		svc := NewService(repo, colombo(t), nopLogger{})
		repo.On("GetByID", ctx, int64(1)).Return(sampleBooking(domain.StatusConfirmed), nil)

		err := svc.Cancel(ctx, 1, &models.CancelBookingRequest{UserID: 300})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("already completed", func(t *testing.T) {
		repo := &mockRepo{}
		svc := NewService(repo, colombo(t), nopLogger{})
		repo.On("GetByID", ctx, int64(1)).Return(sampleBooking(domain.StatusCompleted), nil)

		err := svc.Cancel(ctx, 1, &models.CancelBookingRequest{UserID: 100})
		assert.ErrorIs(t, err, ErrCannotCancel)
		repo.AssertNotCalled(t, "Cancel", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("concurrent change", func(t *testing.T) {
		repo := &mockRepo{}
		svc := NewService(repo, colombo(t), nopLogger{})
		repo.On("GetByID", ctx, int64(1)).Return(sampleBooking(domain.StatusPending), nil)
		repo.On("Cancel", ctx, int64(1), domain.StatusCancelledByClient, "").Return(bookingRepo.ErrCannotCancel)

		err := svc.Cancel(ctx, 1, &models.CancelBookingRequest{UserID: 100})
		assert.ErrorIs(t, err, ErrCannotCancel)
	})

	t.Run("reason too long", func(t *testing.T) {
		svc := NewService(&mockRepo{}, colombo(t), nopLogger{})

		err := svc.Cancel(ctx, 1, &models.CancelBookingRequest{
			UserID:             100,
			CancellationReason: strings.Repeat("r", domain.MaxCancellationReasonLength+1),
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestUpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("practitioner completes", func(t *testing.T) {
		repo := &mockRepo{}
		svc := NewService(repo, colombo(t), nopLogger{})
		repo.On("GetByID", ctx, int64(1)).Return(sampleBooking(domain.StatusConfirmed), nil)
		repo.On("UpdateStatus", ctx, int64(1), domain.StatusCompleted).Return(nil)

		require.NoError(t, svc.UpdateStatus(ctx, 1, &models.UpdateStatusRequest{UserID: 200, Status: "completed"}))
	})

	t.Run("client cannot", func(t *testing.T) {
		repo := &mockRepo{}
		svc := NewService(repo, colombo(t), nopLogger{})
		repo.On("GetByID", ctx, int64(1)).Return(sampleBooking(domain.StatusConfirmed), nil)

		err := svc.UpdateStatus(ctx, 1, &models.UpdateStatusRequest{UserID: 100, Status: "completed"})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("final booking", func(t *testing.T) {
		repo := &mockRepo{}
		svc := NewService(repo, colombo(t), nopLogger{})
		repo.On("GetByID", ctx, int64(1)).Return(sampleBooking(domain.StatusNoShow), nil)

		err := svc.UpdateStatus(ctx, 1, &models.UpdateStatusRequest{UserID: 200, Status: "completed"})
		assert.ErrorIs(t, err, ErrBookingFinal)
	})

	t.Run("cancellation status rejected", func(t *testing.T) {
		svc := NewService(&mockRepo{}, colombo(t), nopLogger{})

		err := svc.UpdateStatus(ctx, 1, &models.UpdateStatusRequest{UserID: 200, Status: "cancelled_by_practitioner"})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("repository failure", func(t *testing.T) {
		repo := &mockRepo{}
		svc := NewService(repo, colombo(t), nopLogger{})
		repo.On("GetByID", ctx, int64(1)).Return(nil, errors.New("db down"))

		err := svc.UpdateStatus(ctx, 1, &models.UpdateStatusRequest{UserID: 200, Status: "in_progress"})
		assert.ErrorIs(t, err, ErrInternal)
	})
}
