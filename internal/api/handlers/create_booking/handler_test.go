package create_booking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/ayurveda-booking-service/internal/api/middleware"
	createBooking "github.com/m04kA/ayurveda-booking-service/internal/usecase/create_booking"
	"github.com/m04kA/ayurveda-booking-service/pkg/logger"
	"github.com/m04kA/ayurveda-booking-service/pkg/txmanager"
)

type MockUseCase struct {
	mock.Mock
}

func (m *MockUseCase) Execute(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*createBooking.Response), args.Error(1)
}

const validBody = `{"practitionerId":7,"startsAt":"2024-01-15T10:00:00+05:30","durationMinutes":60,"treatmentName":"Abhyanga"}`

func post(h *Handler, body string, userID int64) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader(body))
	if userID > 0 {
		req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	}
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandler_Created(t *testing.T) {
	colombo := time.FixedZone("Asia/Colombo", 5*3600+1800)
	start := time.Date(2024, 1, 15, 10, 0, 0, 0, colombo)
	treatment := "Abhyanga"

	uc := new(MockUseCase)
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(req *createBooking.Request) bool {
		return req.ClientID == 42 &&
			req.PractitionerID == 7 &&
			req.StartsAt.Equal(start) &&
			req.DurationMinutes == 60 &&
			req.TreatmentName != nil && *req.TreatmentName == treatment
	})).Return(&createBooking.Response{
		ID:              100,
		ClientID:        42,
		PractitionerID:  7,
		StartsAt:        start,
		EndsAt:          start.Add(time.Hour),
		DurationMinutes: 60,
		Status:          "confirmed",
		TreatmentName:   &treatment,
	}, nil)

	rec := post(NewHandler(uc, logger.NewNop()), validBody, 42)

	require.Equal(t, http.StatusCreated, rec.Code)

	var body BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(100), body.ID)
	assert.Equal(t, "2024-01-15", body.Date)
	assert.Equal(t, "10:00", body.StartTime)
	assert.Equal(t, "confirmed", body.Status)
	uc.AssertExpectations(t)
}

func TestHandler_RequestErrors(t *testing.T) {
	uc := new(MockUseCase)
	h := NewHandler(uc, logger.NewNop())

	assert.Equal(t, http.StatusUnauthorized, post(h, validBody, 0).Code)
	assert.Equal(t, http.StatusBadRequest, post(h, `{"practitionerId":`, 42).Code)
	assert.Equal(t, http.StatusBadRequest, post(h, `{"practitionerId":7,"unknown":true}`, 42).Code)
	assert.Equal(t, http.StatusBadRequest, post(h, `{"practitionerId":7,"startsAt":"2024-01-15 10:00"}`, 42).Code)

	uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}

func TestHandler_UseCaseErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "slot taken", err: createBooking.ErrSlotNotAvailable, status: http.StatusConflict},
		{name: "retries exhausted", err: fmt.Errorf("%w: could not serialize access", txmanager.ErrRetriesExhausted), status: http.StatusConflict},
		{name: "day off", err: createBooking.ErrPractitionerUnavailable, status: http.StatusBadRequest},
		{name: "outside hours", err: createBooking.ErrOutsideWorkingHours, status: http.StatusBadRequest},
		{name: "past date", err: createBooking.ErrInvalidDate, status: http.StatusBadRequest},
		{name: "too far", err: createBooking.ErrDateTooFarInFuture, status: http.StatusBadRequest},
		{name: "too late", err: createBooking.ErrTooLateToBook, status: http.StatusBadRequest},
		{name: "invalid input", err: fmt.Errorf("%w: duration", createBooking.ErrInvalidInput), status: http.StatusBadRequest},
		{name: "internal", err: createBooking.ErrInternal, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := new(MockUseCase)
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)

			rec := post(NewHandler(uc, logger.NewNop()), validBody, 42)

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
