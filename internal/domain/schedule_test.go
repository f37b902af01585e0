package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/ayurveda-booking-service/pkg/ptr"
	"github.com/m04kA/ayurveda-booking-service/pkg/types"
)

func TestWorkSchedule_Validate(t *testing.T) {
	tests := []struct {
		name     string
		schedule WorkSchedule
		wantErr  bool
	}{
		{name: "default", schedule: DefaultWorkSchedule()},
		{name: "no break", schedule: WorkSchedule{StartTime: "08:00", EndTime: "16:00", Available: true}},
		{name: "break touching edges", schedule: WorkSchedule{StartTime: "08:00", EndTime: "16:00", BreakStart: "08:00", BreakEnd: "16:00"}},
		{name: "start equals end", schedule: WorkSchedule{StartTime: "10:00", EndTime: "10:00"}, wantErr: true},
		{name: "start after end", schedule: WorkSchedule{StartTime: "18:00", EndTime: "09:00"}, wantErr: true},
		{name: "invalid start", schedule: WorkSchedule{StartTime: "9am", EndTime: "18:00"}, wantErr: true},
		{name: "only break start", schedule: WorkSchedule{StartTime: "09:00", EndTime: "18:00", BreakStart: "12:00"}, wantErr: true},
		{name: "inverted break", schedule: WorkSchedule{StartTime: "09:00", EndTime: "18:00", BreakStart: "13:00", BreakEnd: "12:00"}, wantErr: true},
		{name: "break before start", schedule: WorkSchedule{StartTime: "09:00", EndTime: "18:00", BreakStart: "08:30", BreakEnd: "09:30"}, wantErr: true},
		{name: "break after end", schedule: WorkSchedule{StartTime: "09:00", EndTime: "18:00", BreakStart: "17:30", BreakEnd: "18:30"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.schedule.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidSchedule)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestMergeSchedule_FieldByField(t *testing.T) {
	base := DefaultWorkSchedule()

	merged := MergeSchedule(base, ScheduleOverrides{
		EndTime:  ptr.Ptr(types.TimeString("16:00")),
		BreakEnd: ptr.Ptr(types.TimeString("12:30")),
	})

	assert.Equal(t, types.TimeString("09:00"), merged.StartTime)
	assert.Equal(t, types.TimeString("16:00"), merged.EndTime)
	assert.Equal(t, types.TimeString("12:00"), merged.BreakStart, "break start keeps the default")
	assert.Equal(t, types.TimeString("12:30"), merged.BreakEnd)
	assert.True(t, merged.Available)

	// исходное значение не меняется
	assert.Equal(t, types.TimeString("18:00"), base.EndTime)
}

func TestMergeSchedule_WithoutBreak(t *testing.T) {
	merged := MergeSchedule(DefaultWorkSchedule(), ScheduleOverrides{WithoutBreak: true})
	assert.False(t, merged.HasBreak())
	require.NoError(t, merged.Validate())

	// новый перерыв задаётся поверх удалённого
	merged = MergeSchedule(DefaultWorkSchedule(), ScheduleOverrides{
		WithoutBreak: true,
		BreakStart:   ptr.Ptr(types.TimeString("14:00")),
		BreakEnd:     ptr.Ptr(types.TimeString("14:30")),
	})
	assert.Equal(t, types.TimeString("14:00"), merged.BreakStart)
	assert.Equal(t, types.TimeString("14:30"), merged.BreakEnd)
}

func TestMergeSchedule_Available(t *testing.T) {
	merged := MergeSchedule(DefaultWorkSchedule(), ScheduleOverrides{Available: ptr.Ptr(false)})
	assert.False(t, merged.Available)
}

func TestResolveWeeklySchedule(t *testing.T) {
	sunday := time.Sunday
	saturday := time.Saturday

	rows := []*PractitionerSchedule{
		// строка для конкретного дня идёт первой, но применяется после общей
		{PractitionerID: 7, Weekday: &saturday, EndTime: ptr.Ptr(types.TimeString("14:00")), WithoutBreak: true},
		{PractitionerID: 7, StartTime: ptr.Ptr(types.TimeString("08:00")), EndTime: ptr.Ptr(types.TimeString("17:00"))},
		{PractitionerID: 7, Weekday: &sunday, Available: ptr.Ptr(false)},
	}

	weekly := ResolveWeeklySchedule(DefaultWorkSchedule(), rows)

	monday := weekly.ScheduleFor(time.Monday)
	assert.Equal(t, WorkSchedule{StartTime: "08:00", EndTime: "17:00", BreakStart: "12:00", BreakEnd: "13:00", Available: true}, monday)

	sat := weekly.ScheduleFor(time.Saturday)
	assert.Equal(t, WorkSchedule{StartTime: "08:00", EndTime: "14:00", Available: true}, sat)

	assert.False(t, weekly.ScheduleFor(time.Sunday).Available)
	require.NoError(t, weekly.Validate())
}

func TestWeeklySchedule_ValidateReportsDay(t *testing.T) {
	weekly := NewWeeklySchedule(DefaultWorkSchedule())
	weekly[time.Wednesday] = WorkSchedule{StartTime: "12:00", EndTime: "11:00"}

	err := weekly.Validate()
	require.ErrorIs(t, err, ErrInvalidSchedule)
	assert.Contains(t, err.Error(), "Wednesday")
}

func TestPractitionerSchedule_AppliesTo(t *testing.T) {
	friday := time.Friday
	wide := &PractitionerSchedule{}
	fri := &PractitionerSchedule{Weekday: &friday}

	assert.True(t, wide.IsPractitionerWide())
	assert.True(t, wide.AppliesTo(time.Monday))
	assert.False(t, fri.IsPractitionerWide())
	assert.True(t, fri.AppliesTo(time.Friday))
	assert.False(t, fri.AppliesTo(time.Monday))
}

func TestParseWeekday(t *testing.T) {
	d, err := ParseWeekday("monday")
	require.NoError(t, err)
	assert.Equal(t, time.Monday, d)

	d, err = ParseWeekday("Sunday")
	require.NoError(t, err)
	assert.Equal(t, time.Sunday, d)

	_, err = ParseWeekday("mon")
	assert.ErrorIs(t, err, ErrInvalidWeekday)
}
