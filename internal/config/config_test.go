package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/ayurveda-booking-service/internal/domain"
	"github.com/m04kA/ayurveda-booking-service/pkg/types"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const minimalConfig = `
[database]
user = "ayurveda"
dbname = "bookings"
`

func TestLoad_AppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, domain.DefaultDaysAhead, cfg.Booking.DaysAhead)
	assert.Equal(t, domain.DefaultSlotDurationMinutes, cfg.Schedule.SlotDurationMinutes)
	assert.Equal(t, domain.DefaultWorkSchedule(), cfg.Schedule.WorkSchedule())
	assert.Equal(t, "*/15 * * * *", cfg.Jobs.CompleteBookingsCron)
}

func TestLoad_FullFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
[server]
http_port = 9090

[database]
host = "db"
port = 6543
user = "ayurveda"
password = "secret"
dbname = "bookings"
sslmode = "require"

[logs]
level = "debug"

[metrics]
enabled = true
path = "/internal/metrics"
service_name = "ayurveda"

[schedule]
work_start = "08:00"
work_end = "17:00"
without_break = true
slot_duration_minutes = 90

[booking]
days_ahead = 60
advance_booking_days = 90
min_booking_notice_minutes = 120

[cors]
allowed_origins = ["https://ayurveda.lk"]

[rate_limit]
enabled = true
requests_per_second = 5
burst = 10
`))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, "host=db port=6543 user=ayurveda password=secret dbname=bookings sslmode=require", cfg.Database.DSN())
	assert.Equal(t, "debug", cfg.Logs.Level)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, domain.WorkSchedule{StartTime: "08:00", EndTime: "17:00", Available: true}, cfg.Schedule.WorkSchedule())
	assert.Equal(t, 90, cfg.Schedule.SlotDurationMinutes)
	assert.Equal(t, 60, cfg.Booking.DaysAhead)
	assert.Equal(t, 90, cfg.Booking.AdvanceBookingDays)
	assert.Equal(t, 120, cfg.Booking.MinBookingNoticeMinutes)
	assert.Equal(t, []string{"https://ayurveda.lk"}, cfg.CORS.AllowedOrigins)
	assert.Contains(t, cfg.CORS.AllowedHeaders, "X-User-ID")
	assert.Equal(t, 5.0, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, domain.BookingPolicy{
		SlotDurationMinutes:     90,
		DaysAhead:               60,
		AdvanceBookingDays:      90,
		MinBookingNoticeMinutes: 120,
	}, cfg.BookingPolicy())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DB_PASSWORD", "from-env")
	t.Setenv("DB_HOST", "postgres.internal")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.lk, https://b.lk")

	cfg, err := Load(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Database.Password)
	assert.Equal(t, "postgres.internal", cfg.Database.Host)
	assert.Equal(t, []string{"https://a.lk", "https://b.lk"}, cfg.CORS.AllowedOrigins)
}

func TestApplyEnv_InvalidPort(t *testing.T) {
	cfg := &Config{}
	err := cfg.applyEnv(func(key string) (string, bool) {
		if key == "DB_PORT" {
			return "five", true
		}
		return "", false
	})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "missing dbname", content: "[database]\nuser = \"x\"\n"},
		{name: "inverted schedule", content: minimalConfig + "[schedule]\nwork_start = \"18:00\"\nwork_end = \"09:00\"\n"},
		{name: "break outside hours", content: minimalConfig + "[schedule]\nbreak_start = \"19:00\"\nbreak_end = \"20:00\"\n"},
		{name: "slot too long", content: minimalConfig + "[schedule]\nslot_duration_minutes = 600\n"},
		{name: "days ahead too large", content: minimalConfig + "[booking]\ndays_ahead = 1000\n"},
		{name: "negative notice", content: minimalConfig + "[booking]\nmin_booking_notice_minutes = -5\n"},
		{name: "bad metrics path", content: minimalConfig + "[metrics]\npath = \"metrics\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestScheduleConfig_WorkSchedule(t *testing.T) {
	s := ScheduleConfig{WorkStart: "10:00", WorkEnd: "16:00", BreakStart: "13:00", BreakEnd: "13:30"}
	ws := s.WorkSchedule()
	assert.Equal(t, types.TimeString("13:00"), ws.BreakStart)
	assert.True(t, ws.Available)

	s.WithoutBreak = true
	assert.False(t, s.WorkSchedule().HasBreak())
}
