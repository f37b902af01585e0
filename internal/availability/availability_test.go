package availability

import (
	"fmt"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/ayurveda-booking-service/internal/domain"
	"github.com/m04kA/ayurveda-booking-service/pkg/types"
	"github.com/m04kA/ayurveda-booking-service/pkg/zoned"
)

func newEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := NewColomboEngine()
	require.NoError(t, err)
	return e
}

func colomboDay(t *testing.T, e *Engine, year int, month time.Month, d int) zoned.Day {
	t.Helper()
	return zoned.NewDay(year, month, d, e.Location())
}

func booking(day zoned.Day, at string, durationMinutes int) *domain.Booking {
	return &domain.Booking{
		StartsAt:        day.At(types.MustTimeString(at)),
		DurationMinutes: durationMinutes,
		Status:          domain.StatusConfirmed,
	}
}

func startTimes(slots []domain.Slot, loc *time.Location) []string {
	result := make([]string, 0, len(slots))
	for _, s := range slots {
		result = append(result, s.Start.In(loc).Format(domain.TimeFormat))
	}
	return result
}

func TestGenerateSlots_DefaultScheduleNoBookings(t *testing.T) {
	e := newEngine(t)
	day := colomboDay(t, e, 2024, time.January, 15)

	slots, err := GenerateSlots(day, nil, domain.DefaultWorkSchedule(), domain.DefaultSlotDurationMinutes)
	require.NoError(t, err)

	assert.Equal(t,
		[]string{"09:00", "10:00", "11:00", "13:00", "14:00", "15:00", "16:00", "17:00"},
		startTimes(slots, e.Location()),
	)
	for _, s := range slots {
		assert.True(t, s.Available)
		assert.Equal(t, 60, s.DurationMinutes)
		assert.Equal(t, time.Hour, s.End.Sub(s.Start))
	}
}

func TestGenerateSlots_ExistingBookingRemovesSlot(t *testing.T) {
	e := newEngine(t)
	day := colomboDay(t, e, 2024, time.January, 15)

	slots, err := GenerateSlots(day, []*domain.Booking{booking(day, "10:00", 60)}, domain.DefaultWorkSchedule(), 60)
	require.NoError(t, err)

	assert.Equal(t,
		[]string{"09:00", "11:00", "13:00", "14:00", "15:00", "16:00", "17:00"},
		startTimes(slots, e.Location()),
	)
}

func TestGenerateSlots_InactiveBookingsIgnored(t *testing.T) {
	e := newEngine(t)
	day := colomboDay(t, e, 2024, time.January, 15)

	cancelled := booking(day, "10:00", 60)
	cancelled.Status = domain.StatusCancelledByClient
	noShow := booking(day, "11:00", 60)
	noShow.Status = domain.StatusNoShow

	slots, err := GenerateSlots(day, []*domain.Booking{cancelled, noShow}, domain.DefaultWorkSchedule(), 60)
	require.NoError(t, err)
	assert.Len(t, slots, 8)
}

func TestGenerateSlots_PartialTrailingSlotNotEmitted(t *testing.T) {
	e := newEngine(t)
	day := colomboDay(t, e, 2024, time.January, 15)
	schedule := domain.WorkSchedule{StartTime: "09:00", EndTime: "11:30", Available: true}

	slots, err := GenerateSlots(day, nil, schedule, 45)
	require.NoError(t, err)

	// 09:00-09:45, 09:45-10:30, 10:30-11:15; 11:15-12:00 does not fit
	assert.Equal(t, []string{"09:00", "09:45", "10:30"}, startTimes(slots, e.Location()))
}

func TestGenerateSlots_BreakJumpDoesNotSkipFirstSlotAfterBreak(t *testing.T) {
	e := newEngine(t)
	day := colomboDay(t, e, 2024, time.January, 15)
	schedule := domain.WorkSchedule{StartTime: "09:00", EndTime: "15:00", BreakStart: "12:30", BreakEnd: "13:15", Available: true}

	slots, err := GenerateSlots(day, nil, schedule, 90)
	require.NoError(t, err)

	// 09:00, 10:30; 12:00-13:30 hits the break so the cursor jumps to 13:15; 13:15-14:45 fits
	assert.Equal(t, []string{"09:00", "10:30", "13:15"}, startTimes(slots, e.Location()))
}

func TestGenerateSlots_NoBreak(t *testing.T) {
	e := newEngine(t)
	day := colomboDay(t, e, 2024, time.January, 15)
	schedule := domain.WorkSchedule{StartTime: "09:00", EndTime: "12:00", Available: true}

	slots, err := GenerateSlots(day, nil, schedule, 60)
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "10:00", "11:00"}, startTimes(slots, e.Location()))
}

func TestGenerateSlots_UnavailableDay(t *testing.T) {
	e := newEngine(t)
	day := colomboDay(t, e, 2024, time.January, 15)
	schedule := domain.DefaultWorkSchedule()
	schedule.Available = false

	slots, err := GenerateSlots(day, nil, schedule, 60)
	require.NoError(t, err)
	assert.NotNil(t, slots)
	assert.Empty(t, slots)
}

func TestGenerateSlots_SlotLongerThanDay(t *testing.T) {
	e := newEngine(t)
	day := colomboDay(t, e, 2024, time.January, 15)
	schedule := domain.WorkSchedule{StartTime: "09:00", EndTime: "10:00", Available: true}

	slots, err := GenerateSlots(day, nil, schedule, 90)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGenerateSlots_InvalidInput(t *testing.T) {
	e := newEngine(t)
	day := colomboDay(t, e, 2024, time.January, 15)

	_, err := GenerateSlots(day, nil, domain.DefaultWorkSchedule(), 0)
	assert.ErrorIs(t, err, ErrInvalidDuration)

	_, err = GenerateSlots(day, nil, domain.DefaultWorkSchedule(), -30)
	assert.ErrorIs(t, err, ErrInvalidDuration)

	_, err = GenerateSlots(day, nil, domain.WorkSchedule{StartTime: "18:00", EndTime: "09:00", Available: true}, 60)
	assert.ErrorIs(t, err, domain.ErrInvalidSchedule)

	_, err = GenerateSlots(day, nil, domain.WorkSchedule{StartTime: "09:00", EndTime: "18:00", BreakStart: "08:00", BreakEnd: "08:30", Available: true}, 60)
	assert.ErrorIs(t, err, domain.ErrInvalidSchedule)

	_, err = GenerateSlots(day, []*domain.Booking{booking(day, "10:00", 0)}, domain.DefaultWorkSchedule(), 60)
	assert.ErrorIs(t, err, ErrInvalidDuration)
}

func TestGenerateSlots_CrossMidnightBookingFromPreviousDay(t *testing.T) {
	e := newEngine(t)
	day := colomboDay(t, e, 2024, time.January, 15)
	schedule := domain.WorkSchedule{StartTime: "00:00", EndTime: "03:00", Available: true}

	// 23:30 накануне + 120 минут = до 01:30
	late := booking(day.AddDays(-1), "23:30", 120)

	slots, err := GenerateSlots(day, []*domain.Booking{late}, schedule, 60)
	require.NoError(t, err)
	assert.Equal(t, []string{"02:00"}, startTimes(slots, e.Location()))
}

func TestEngine_GenerateSlots_NormalizesIntoColombo(t *testing.T) {
	e := newEngine(t)

	// 2024-01-14 20:00 UTC is 2024-01-15 01:30 in Colombo
	utc := time.Date(2024, 1, 14, 20, 0, 0, 0, time.UTC)

	slots, err := e.GenerateSlots(utc, nil, nil, 60)
	require.NoError(t, err)
	require.Len(t, slots, 8)

	first := slots[0].Start
	assert.Equal(t, time.Date(2024, 1, 15, 3, 30, 0, 0, time.UTC), first.UTC(), "09:00 Colombo is 03:30 UTC")
	assert.Equal(t, "2024-01-15", first.In(e.Location()).Format(domain.DateFormat))
}

func TestEngine_GenerateSlots_UsesWeekdaySchedule(t *testing.T) {
	e := newEngine(t)

	weekly := domain.NewWeeklySchedule(domain.DefaultWorkSchedule())
	weekly[time.Sunday] = domain.WorkSchedule{StartTime: "09:00", EndTime: "18:00", Available: false}
	weekly[time.Saturday] = domain.WorkSchedule{StartTime: "10:00", EndTime: "12:00", Available: true}

	sunday := colomboDay(t, e, 2024, time.January, 14)
	slots, err := e.GenerateSlots(sunday.StartOfDay(), nil, weekly, 60)
	require.NoError(t, err)
	assert.Empty(t, slots)

	saturday := colomboDay(t, e, 2024, time.January, 13)
	slots, err = e.GenerateSlots(saturday.At("11:00"), nil, weekly, 60)
	require.NoError(t, err)
	assert.Equal(t, []string{"10:00", "11:00"}, startTimes(slots, e.Location()))
}

func TestOverlaps_Boundaries(t *testing.T) {
	e := newEngine(t)
	day := colomboDay(t, e, 2024, time.January, 15)
	existing := []*domain.Booking{booking(day, "09:00", 60)}

	touching, err := Overlaps(day.At("10:00"), 60, existing)
	require.NoError(t, err)
	assert.False(t, touching, "booking ending at 10:00 does not conflict with 10:00")

	before, err := Overlaps(day.At("08:00"), 60, existing)
	require.NoError(t, err)
	assert.False(t, before, "candidate ending at 09:00 does not conflict")

	partial := []*domain.Booking{booking(day, "10:00", 60)}
	overlaps, err := Overlaps(day.At("10:30"), 60, partial)
	require.NoError(t, err)
	assert.True(t, overlaps, "10:00-11:00 and 10:30-11:30 conflict")

	inside, err := Overlaps(day.At("10:15"), 15, partial)
	require.NoError(t, err)
	assert.True(t, inside)

	covering, err := Overlaps(day.At("09:00"), 180, partial)
	require.NoError(t, err)
	assert.True(t, covering)
}

func TestOverlaps_OrderIndependent(t *testing.T) {
	e := newEngine(t)
	day := colomboDay(t, e, 2024, time.January, 15)
	a := booking(day, "09:00", 30)
	b := booking(day, "14:00", 30)
	c := booking(day, "16:00", 60)

	for _, candidate := range []string{"08:30", "09:15", "13:45", "15:00", "16:30", "17:00"} {
		forward, err := Overlaps(day.At(types.TimeString(candidate)), 30, []*domain.Booking{a, b, c})
		require.NoError(t, err)
		backward, err := Overlaps(day.At(types.TimeString(candidate)), 30, []*domain.Booking{c, b, a})
		require.NoError(t, err)
		assert.Equal(t, forward, backward, candidate)
	}
}

func TestOverlaps_InvalidDuration(t *testing.T) {
	_, err := Overlaps(time.Now(), 0, nil)
	assert.ErrorIs(t, err, ErrInvalidDuration)

	_, err = IsSlotAvailable(time.Now(), -1, nil)
	assert.ErrorIs(t, err, ErrInvalidDuration)

	// некорректная бронь отклоняется независимо от порядка
	now := time.Now()
	bad := &domain.Booking{ID: 9, StartsAt: now, DurationMinutes: 0, Status: domain.StatusConfirmed}
	hit := &domain.Booking{ID: 1, StartsAt: now, DurationMinutes: 30, Status: domain.StatusConfirmed}
	_, err = Overlaps(now, 30, []*domain.Booking{hit, bad})
	assert.ErrorIs(t, err, ErrInvalidDuration)
}

func TestIsSlotAvailable_ColomboAfternoon(t *testing.T) {
	e := newEngine(t)
	day := colomboDay(t, e, 2024, time.January, 15)

	available, err := e.IsSlotAvailable(day.At("14:00"), 30, []*domain.Booking{booking(day, "14:15", 30)})
	require.NoError(t, err)
	assert.False(t, available)

	available, err = e.IsSlotAvailable(day.At("14:45"), 30, []*domain.Booking{booking(day, "14:15", 30)})
	require.NoError(t, err)
	assert.True(t, available)
}

func TestNextAvailableDate_FirstOpenDayAfterFullyBookedDays(t *testing.T) {
	e := newEngine(t)
	today := colomboDay(t, e, 2024, time.March, 4)

	var bookings []*domain.Booking
	for i := 0; i < 5; i++ {
		d := today.AddDays(i)
		bookings = append(bookings, booking(d, "09:00", 180), booking(d, "13:00", 300))
	}

	day, found, err := e.NextAvailableDate(today.StartOfDay(), bookings, domain.DefaultWorkSchedule(), 60, 30)
	require.NoError(t, err)
	require.True(t, found)
	assert.True(t, day.Equal(today.AddDays(5)), "got %s", day)
}

func TestNextAvailableDate_Today(t *testing.T) {
	e := newEngine(t)
	today := colomboDay(t, e, 2024, time.March, 4)

	day, found, err := e.NextAvailableDate(today.At("08:00"), nil, nil, 60, 30)
	require.NoError(t, err)
	require.True(t, found)
	assert.True(t, day.Equal(today))
}

func TestNextAvailableDate_IgnoresSlotsBeforeFrom(t *testing.T) {
	e := newEngine(t)
	today := colomboDay(t, e, 2024, time.March, 4)

	// после 17:00 сегодня слотов уже нет
	day, found, err := e.NextAvailableDate(today.At("17:01"), nil, nil, 60, 30)
	require.NoError(t, err)
	require.True(t, found)
	assert.True(t, day.Equal(today.AddDays(1)))
}

func TestNextAvailableDate_NoneFound(t *testing.T) {
	e := newEngine(t)
	today := colomboDay(t, e, 2024, time.March, 4)
	closed := domain.DefaultWorkSchedule()
	closed.Available = false

	day, found, err := e.NextAvailableDate(today.StartOfDay(), nil, closed, 60, 30)
	require.NoError(t, err)
	assert.False(t, found)
	assert.True(t, day.IsZero())
}

func TestNextAvailableDate_WindowIsExclusive(t *testing.T) {
	e := newEngine(t)
	today := colomboDay(t, e, 2024, time.March, 4)

	var bookings []*domain.Booking
	for i := 0; i < 3; i++ {
		bookings = append(bookings, booking(today.AddDays(i), "09:00", 540))
	}

	_, found, err := e.NextAvailableDate(today.StartOfDay(), bookings, nil, 60, 3)
	require.NoError(t, err)
	assert.False(t, found)

	day, found, err := e.NextAvailableDate(today.StartOfDay(), bookings, nil, 60, 4)
	require.NoError(t, err)
	assert.True(t, found)
	assert.True(t, day.Equal(today.AddDays(3)))
}

func TestNextAvailableDate_InvalidInput(t *testing.T) {
	e := newEngine(t)

	_, _, err := e.NextAvailableDate(time.Now(), nil, nil, 60, 0)
	assert.ErrorIs(t, err, ErrInvalidDaysAhead)

	_, _, err = e.NextAvailableDate(time.Now(), nil, nil, 0, 30)
	assert.ErrorIs(t, err, ErrInvalidDuration)
}

func TestNewEngine_RequiresLocation(t *testing.T) {
	_, err := NewEngine(nil)
	assert.ErrorIs(t, err, ErrNoLocation)
}

// Свойства генерации проверяются на случайных расписаниях и бронированиях
func TestGenerateSlots_Properties(t *testing.T) {
	e := newEngine(t)
	rnd := rand.New(rand.NewSource(42))
	durations := []int{15, 30, 45, 50, 60, 90, 120}

	for i := 0; i < 300; i++ {
		day := colomboDay(t, e, 2024, time.January, 1).AddDays(rnd.Intn(365))
		schedule := randomSchedule(rnd)
		bookings := randomBookings(rnd, day)
		duration := durations[rnd.Intn(len(durations))]

		t.Run(fmt.Sprintf("case_%d", i), func(t *testing.T) {
			slots, err := GenerateSlots(day, bookings, schedule, duration)
			require.NoError(t, err)

			again, err := GenerateSlots(day, bookings, schedule, duration)
			require.NoError(t, err)
			assert.Equal(t, slots, again, "idempotence")

			workStart, workEnd := day.At(schedule.StartTime), day.At(schedule.EndTime)
			for j, s := range slots {
				assert.False(t, s.Start.Before(workStart), "containment start")
				assert.False(t, s.End.After(workEnd), "containment end")
				assert.Equal(t, minutes(duration), s.End.Sub(s.Start))

				if schedule.HasBreak() {
					assert.False(t, s.Overlaps(day.At(schedule.BreakStart), day.At(schedule.BreakEnd)), "break")
				}
				for _, b := range bookings {
					if b.IsActive() {
						assert.False(t, s.Overlaps(b.StartsAt, b.EndsAt()), "booking conflict")
					}
				}
				for _, other := range slots[j+1:] {
					assert.False(t, s.Overlaps(other.Start, other.End), "slots overlap")
				}
			}
		})
	}
}

func TestGenerateSlots_ConcurrentCalls(t *testing.T) {
	e := newEngine(t)
	day := colomboDay(t, e, 2024, time.January, 15)
	bookings := []*domain.Booking{booking(day, "10:00", 60), booking(day, "15:30", 45)}

	expected, err := e.GenerateSlots(day.StartOfDay(), bookings, nil, 30)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := e.GenerateSlots(day.StartOfDay(), bookings, nil, 30)
			assert.NoError(t, err)
			assert.Equal(t, expected, got)
		}()
	}
	wg.Wait()
}

func randomSchedule(rnd *rand.Rand) domain.WorkSchedule {
	start := rnd.Intn(12*4) * 15          // 00:00 .. 11:45
	end := start + 60 + rnd.Intn(10*4)*15 // минимум час
	s := domain.WorkSchedule{
		StartTime: minutesToTime(start),
		EndTime:   minutesToTime(end),
		Available: true,
	}
	if rnd.Intn(3) > 0 {
		bs := start + rnd.Intn((end-start)/15)*15
		be := bs + 15 + rnd.Intn((end-bs)/15)*15
		if be > end {
			be = end
		}
		if bs < be {
			s.BreakStart = minutesToTime(bs)
			s.BreakEnd = minutesToTime(be)
		}
	}
	return s
}

func randomBookings(rnd *rand.Rand, day zoned.Day) []*domain.Booking {
	statuses := append(append([]domain.BookingStatus{}, domain.ActiveStatuses...), domain.InactiveStatuses...)
	n := rnd.Intn(6)
	bookings := make([]*domain.Booking, 0, n)
	for i := 0; i < n; i++ {
		bookings = append(bookings, &domain.Booking{
			ID:              int64(i + 1),
			StartsAt:        day.StartOfDay().Add(time.Duration(rnd.Intn(24*60)) * time.Minute),
			DurationMinutes: 10 + rnd.Intn(170),
			Status:          statuses[rnd.Intn(len(statuses))],
		})
	}
	return bookings
}

func minutesToTime(m int) types.TimeString {
	return types.TimeString(fmt.Sprintf("%02d:%02d", m/60, m%60))
}

func TestWithinSchedule(t *testing.T) {
	e := newEngine(t)
	day := colomboDay(t, e, 2024, time.January, 15)
	schedule := domain.DefaultWorkSchedule()

	tests := []struct {
		at       string
		duration int
		want     bool
	}{
		{at: "09:00", duration: 60, want: true},
		{at: "11:00", duration: 60, want: true},
		{at: "11:30", duration: 60, want: false}, // заходит на перерыв
		{at: "12:30", duration: 15, want: false},
		{at: "13:00", duration: 45, want: true},
		{at: "17:15", duration: 45, want: true},
		{at: "17:30", duration: 45, want: false}, // после конца дня
		{at: "08:45", duration: 30, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.at, func(t *testing.T) {
			got, err := WithinSchedule(day, schedule, day.At(types.TimeString(tt.at)), tt.duration)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	closed := schedule
	closed.Available = false
	got, err := WithinSchedule(day, closed, day.At("10:00"), 60)
	require.NoError(t, err)
	assert.False(t, got)

	_, err = WithinSchedule(day, schedule, day.At("10:00"), 0)
	assert.ErrorIs(t, err, ErrInvalidDuration)
}
