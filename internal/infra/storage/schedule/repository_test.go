package schedule

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/ayurveda-booking-service/internal/domain"
	"github.com/m04kA/ayurveda-booking-service/pkg/dbmetrics"
	"github.com/m04kA/ayurveda-booking-service/pkg/ptr"
	"github.com/m04kA/ayurveda-booking-service/pkg/types"
)

func openTestDB(t *testing.T) *dbmetrics.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("TEST_DATABASE_DSN is not set")
	}

	db, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	require.NoError(t, db.Ping())
	t.Cleanup(func() { _ = db.Close() })

	return dbmetrics.New(db, nil, "test")
}

func TestRepository_Lifecycle(t *testing.T) {
	repo := NewRepository(openTestDB(t))
	ctx := context.Background()
	practitionerID := time.Now().UnixNano() % 1_000_000_000
	saturday := time.Saturday

	wide, err := repo.Create(ctx, &domain.PractitionerSchedule{
		PractitionerID: practitionerID,
		StartTime:      ptr.Ptr(types.TimeString("08:00")),
		EndTime:        ptr.Ptr(types.TimeString("16:00")),
	})
	require.NoError(t, err)
	require.NotZero(t, wide.ID)

	_, err = repo.Create(ctx, &domain.PractitionerSchedule{
		PractitionerID: practitionerID,
		Weekday:        &saturday,
		Available:      ptr.Ptr(false),
	})
	require.NoError(t, err)

	rows, err := repo.GetAllByPractitioner(ctx, practitionerID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.True(t, rows[0].IsPractitionerWide(), "wide row is first")
	assert.Equal(t, types.TimeString("08:00"), *rows[0].StartTime)
	assert.Nil(t, rows[0].BreakStart)
	require.NotNil(t, rows[1].Weekday)
	assert.Equal(t, time.Saturday, *rows[1].Weekday)
	assert.False(t, *rows[1].Available)

	wide.EndTime = ptr.Ptr(types.TimeString("17:30"))
	_, err = repo.Update(ctx, wide.ID, wide)
	require.NoError(t, err)

	rows, err = repo.GetAllByPractitioner(ctx, practitionerID)
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("17:30"), *rows[0].EndTime)

	require.NoError(t, repo.Delete(ctx, practitionerID, &saturday))
	assert.ErrorIs(t, repo.Delete(ctx, practitionerID, &saturday), ErrScheduleNotFound)

	rows, err = repo.GetAllByPractitioner(ctx, practitionerID)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestWeekdayValue(t *testing.T) {
	assert.Nil(t, weekdayValue(nil))

	monday := time.Monday
	assert.Equal(t, int16(1), weekdayValue(&monday))
}
