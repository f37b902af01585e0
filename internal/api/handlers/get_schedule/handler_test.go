package get_schedule

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/ayurveda-booking-service/internal/service/schedule/models"
	"github.com/m04kA/ayurveda-booking-service/pkg/logger"
)

type MockScheduleService struct {
	mock.Mock
}

func (m *MockScheduleService) GetWeekly(ctx context.Context, practitionerID int64) (*models.WeeklyScheduleResponse, error) {
	args := m.Called(ctx, practitionerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WeeklyScheduleResponse), args.Error(1)
}

func get(h *Handler, target string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/practitioners/{practitionerId}/schedule", h.Handle)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandler(t *testing.T) {
	svc := new(MockScheduleService)
	svc.On("GetWeekly", mock.Anything, int64(7)).Return(&models.WeeklyScheduleResponse{
		PractitionerID: 7,
		Timezone:       "Asia/Colombo",
		Days:           []models.DayScheduleResponse{{Weekday: "monday", Available: true, StartTime: "09:00", EndTime: "18:00"}},
	}, nil).Once()
	svc.On("GetWeekly", mock.Anything, int64(7)).Return(nil, errors.New("db down")).Once()
	h := NewHandler(svc, logger.NewNop())

	rec := get(h, "/practitioners/7/schedule")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"weekday":"monday"`)

	assert.Equal(t, http.StatusInternalServerError, get(h, "/practitioners/7/schedule").Code)
	assert.Equal(t, http.StatusBadRequest, get(h, "/practitioners/0/schedule").Code)
}
