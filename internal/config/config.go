package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/m04kA/ayurveda-booking-service/internal/domain"
	"github.com/m04kA/ayurveda-booking-service/pkg/types"
)

// ErrInvalidConfig возвращается, если конфигурация не прошла валидацию
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Schedule  ScheduleConfig  `toml:"schedule"`
	Booking   BookingConfig   `toml:"booking"`
	CORS      CORSConfig      `toml:"cors"`
	RateLimit RateLimitConfig `toml:"rate_limit"`
	Jobs      JobsConfig      `toml:"jobs"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// ScheduleConfig расписание по умолчанию, если у специалиста нет своих настроек
type ScheduleConfig struct {
	WorkStart           string `toml:"work_start"`
	WorkEnd             string `toml:"work_end"`
	BreakStart          string `toml:"break_start"`
	BreakEnd            string `toml:"break_end"`
	WithoutBreak        bool   `toml:"without_break"`
	SlotDurationMinutes int    `toml:"slot_duration_minutes"`
}

// WorkSchedule собирает базовое расписание
func (s ScheduleConfig) WorkSchedule() domain.WorkSchedule {
	ws := domain.WorkSchedule{
		StartTime:  types.TimeString(s.WorkStart),
		EndTime:    types.TimeString(s.WorkEnd),
		BreakStart: types.TimeString(s.BreakStart),
		BreakEnd:   types.TimeString(s.BreakEnd),
		Available:  true,
	}
	if s.WithoutBreak {
		ws.BreakStart = ""
		ws.BreakEnd = ""
	}
	return ws
}

// BookingConfig правила бронирования
type BookingConfig struct {
	DaysAhead               int `toml:"days_ahead"`
	AdvanceBookingDays      int `toml:"advance_booking_days"` // 0 = без ограничения
	MinBookingNoticeMinutes int `toml:"min_booking_notice_minutes"`
}

// BookingPolicy собирает правила бронирования из секций [schedule] и [booking]
func (c *Config) BookingPolicy() domain.BookingPolicy {
	return domain.BookingPolicy{
		SlotDurationMinutes:     c.Schedule.SlotDurationMinutes,
		DaysAhead:               c.Booking.DaysAhead,
		AdvanceBookingDays:      c.Booking.AdvanceBookingDays,
		MinBookingNoticeMinutes: c.Booking.MinBookingNoticeMinutes,
	}
}

// CORSConfig настройки CORS для фронтенда
type CORSConfig struct {
	AllowedOrigins []string `toml:"allowed_origins"`
	AllowedMethods []string `toml:"allowed_methods"`
	AllowedHeaders []string `toml:"allowed_headers"`
}

// RateLimitConfig ограничение частоты запросов на клиента
type RateLimitConfig struct {
	Enabled           bool    `toml:"enabled"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
	Burst             int     `toml:"burst"`
}

// JobsConfig фоновые задачи
type JobsConfig struct {
	Enabled               bool   `toml:"enabled"`
	CompleteBookingsCron  string `toml:"complete_bookings_cron"`
	CompleteBookingsGrace int    `toml:"complete_bookings_grace_minutes"`
}

// Load загружает конфигурацию из TOML файла.
// Значения из окружения (и .env файла рядом с бинарником, если он есть) имеют приоритет.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config: load .env: %w", err)
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	cfg.applyDefaults()
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	setInt(&c.Server.HTTPPort, 8080)
	setInt(&c.Server.ReadTimeout, 15)
	setInt(&c.Server.WriteTimeout, 15)
	setInt(&c.Server.IdleTimeout, 60)
	setInt(&c.Server.ShutdownTimeout, 10)

	setString(&c.Database.Host, "localhost")
	setInt(&c.Database.Port, 5432)
	setString(&c.Database.SSLMode, "disable")
	setInt(&c.Database.MaxOpenConns, 25)
	setInt(&c.Database.MaxIdleConns, 5)
	setInt(&c.Database.ConnMaxLifetime, 300)

	setString(&c.Logs.Level, "info")

	setString(&c.Metrics.Path, "/metrics")
	setString(&c.Metrics.ServiceName, "ayurveda-booking-service")

	setString(&c.Schedule.WorkStart, string(domain.DefaultWorkStart))
	setString(&c.Schedule.WorkEnd, string(domain.DefaultWorkEnd))
	if !c.Schedule.WithoutBreak {
		setString(&c.Schedule.BreakStart, string(domain.DefaultBreakStart))
		setString(&c.Schedule.BreakEnd, string(domain.DefaultBreakEnd))
	}
	setInt(&c.Schedule.SlotDurationMinutes, domain.DefaultSlotDurationMinutes)

	setInt(&c.Booking.DaysAhead, domain.DefaultDaysAhead)
	// 0 - допустимое значение для advance_booking_days и min_booking_notice_minutes,
	// поэтому для них дефолты задаются в example конфиге, а не здесь

	if len(c.CORS.AllowedMethods) == 0 {
		c.CORS.AllowedMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	}
	if len(c.CORS.AllowedHeaders) == 0 {
		c.CORS.AllowedHeaders = []string{"Content-Type", "X-User-ID", "X-Request-ID"}
	}

	if c.RateLimit.RequestsPerSecond == 0 {
		c.RateLimit.RequestsPerSecond = 10
	}
	setInt(&c.RateLimit.Burst, 20)

	setString(&c.Jobs.CompleteBookingsCron, "*/15 * * * *")
	setInt(&c.Jobs.CompleteBookingsGrace, 30)
}

// applyEnv переопределяет секреты и адреса из переменных окружения
func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("DB_HOST"); ok && v != "" {
		c.Database.Host = v
	}
	if v, ok := lookup("DB_PORT"); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: DB_PORT=%q: %v", ErrInvalidConfig, v, err)
		}
		c.Database.Port = port
	}
	if v, ok := lookup("DB_USER"); ok && v != "" {
		c.Database.User = v
	}
	if v, ok := lookup("DB_PASSWORD"); ok {
		c.Database.Password = v
	}
	if v, ok := lookup("DB_NAME"); ok && v != "" {
		c.Database.DBName = v
	}
	if v, ok := lookup("HTTP_PORT"); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: HTTP_PORT=%q: %v", ErrInvalidConfig, v, err)
		}
		c.Server.HTTPPort = port
	}
	if v, ok := lookup("CORS_ALLOWED_ORIGINS"); ok && v != "" {
		origins := strings.Split(v, ",")
		for i := range origins {
			origins[i] = strings.TrimSpace(origins[i])
		}
		c.CORS.AllowedOrigins = origins
	}
	return nil
}

// Validate проверяет согласованность настроек
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port %d out of range", ErrInvalidConfig, c.Server.HTTPPort)
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("%w: database.dbname is required", ErrInvalidConfig)
	}
	if c.Database.User == "" {
		return fmt.Errorf("%w: database.user is required", ErrInvalidConfig)
	}
	if !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("%w: metrics.path must start with /", ErrInvalidConfig)
	}

	if err := c.Schedule.WorkSchedule().Validate(); err != nil {
		return fmt.Errorf("%w: schedule: %v", ErrInvalidConfig, err)
	}
	if d := c.Schedule.SlotDurationMinutes; d < domain.MinSlotDurationMinutes || d > domain.MaxSlotDurationMinutes {
		return fmt.Errorf("%w: schedule.slot_duration_minutes must be between %d and %d",
			ErrInvalidConfig, domain.MinSlotDurationMinutes, domain.MaxSlotDurationMinutes)
	}

	if d := c.Booking.DaysAhead; d < domain.MinDaysAhead || d > domain.MaxDaysAhead {
		return fmt.Errorf("%w: booking.days_ahead must be between %d and %d",
			ErrInvalidConfig, domain.MinDaysAhead, domain.MaxDaysAhead)
	}
	if d := c.Booking.AdvanceBookingDays; d < domain.MinAdvanceBookingDays || d > domain.MaxAdvanceBookingDays {
		return fmt.Errorf("%w: booking.advance_booking_days must be between %d and %d",
			ErrInvalidConfig, domain.MinAdvanceBookingDays, domain.MaxAdvanceBookingDays)
	}
	if m := c.Booking.MinBookingNoticeMinutes; m < domain.MinBookingNoticeMinutes || m > domain.MaxBookingNoticeMinutes {
		return fmt.Errorf("%w: booking.min_booking_notice_minutes must be between %d and %d",
			ErrInvalidConfig, domain.MinBookingNoticeMinutes, domain.MaxBookingNoticeMinutes)
	}

	if c.RateLimit.Enabled && (c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf("%w: rate_limit requires positive requests_per_second and burst", ErrInvalidConfig)
	}

	return nil
}

func setInt(v *int, def int) {
	if *v == 0 {
		*v = def
	}
}

func setString(v *string, def string) {
	if *v == "" {
		*v = def
	}
}
