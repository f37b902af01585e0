package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	gorillaHandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelBookingHandler "github.com/m04kA/ayurveda-booking-service/internal/api/handlers/cancel_booking"
	checkSlotHandler "github.com/m04kA/ayurveda-booking-service/internal/api/handlers/check_slot"
	createBookingHandler "github.com/m04kA/ayurveda-booking-service/internal/api/handlers/create_booking"
	deleteScheduleHandler "github.com/m04kA/ayurveda-booking-service/internal/api/handlers/delete_schedule"
	getAvailableSlotsHandler "github.com/m04kA/ayurveda-booking-service/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/ayurveda-booking-service/internal/api/handlers/get_booking"
	getClientBookingsHandler "github.com/m04kA/ayurveda-booking-service/internal/api/handlers/get_client_bookings"
	getPractitionerBookingsHandler "github.com/m04kA/ayurveda-booking-service/internal/api/handlers/get_practitioner_bookings"
	getScheduleHandler "github.com/m04kA/ayurveda-booking-service/internal/api/handlers/get_schedule"
	healthHandler "github.com/m04kA/ayurveda-booking-service/internal/api/handlers/health"
	listScheduleHandler "github.com/m04kA/ayurveda-booking-service/internal/api/handlers/list_schedule"
	nextAvailableDateHandler "github.com/m04kA/ayurveda-booking-service/internal/api/handlers/next_available_date"
	updateBookingStatusHandler "github.com/m04kA/ayurveda-booking-service/internal/api/handlers/update_booking_status"
	upsertScheduleHandler "github.com/m04kA/ayurveda-booking-service/internal/api/handlers/upsert_schedule"
	"github.com/m04kA/ayurveda-booking-service/internal/api/middleware"
	"github.com/m04kA/ayurveda-booking-service/internal/availability"
	"github.com/m04kA/ayurveda-booking-service/internal/config"
	bookingRepo "github.com/m04kA/ayurveda-booking-service/internal/infra/storage/booking"
	scheduleRepo "github.com/m04kA/ayurveda-booking-service/internal/infra/storage/schedule"
	"github.com/m04kA/ayurveda-booking-service/internal/jobs"
	bookingsService "github.com/m04kA/ayurveda-booking-service/internal/service/bookings"
	scheduleService "github.com/m04kA/ayurveda-booking-service/internal/service/schedule"
	checkSlotUC "github.com/m04kA/ayurveda-booking-service/internal/usecase/check_slot"
	createBookingUC "github.com/m04kA/ayurveda-booking-service/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/ayurveda-booking-service/internal/usecase/get_available_slots"
	nextAvailableDateUC "github.com/m04kA/ayurveda-booking-service/internal/usecase/next_available_date"
	"github.com/m04kA/ayurveda-booking-service/pkg/dbmetrics"
	"github.com/m04kA/ayurveda-booking-service/pkg/logger"
	"github.com/m04kA/ayurveda-booking-service/pkg/metrics"
	"github.com/m04kA/ayurveda-booking-service/pkg/txmanager"
)

// maxRequestBodyBytes ограничение на размер тела запроса
const maxRequestBodyBytes = 1 << 20

func main() {
	configPath := "config.toml"
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		configPath = p
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting ayurveda-booking-service...")
	log.Info("Configuration loaded from %s", configPath)

	// Все расписания и даты считаются в Asia/Colombo
	engine, err := availability.NewColomboEngine()
	if err != nil {
		log.Fatal("Failed to load timezone: %v", err)
	}

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Без метрик обёртка просто пропускает запросы к *sql.DB
	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.New(db, nil, cfg.Metrics.ServiceName)
	}

	// Инициализируем репозитории и менеджер транзакций
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	scheduleRepository := scheduleRepo.NewRepository(wrappedDB)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	policy := cfg.BookingPolicy()
	baseSchedule := cfg.Schedule.WorkSchedule()
	if err := baseSchedule.Validate(); err != nil {
		log.Fatal("Invalid default schedule in config: %v", err)
	}

	// Инициализируем сервисы
	scheduleSvc := scheduleService.NewService(
		scheduleRepository,
		txMgr,
		baseSchedule,
		engine.Location(),
		log,
	)
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		engine.Location(),
		log,
	)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(bookingRepository, scheduleSvc, engine, policy, log)
	checkSlotUseCase := checkSlotUC.NewUseCase(bookingRepository, scheduleSvc, engine, policy, log)
	nextAvailableDateUseCase := nextAvailableDateUC.NewUseCase(bookingRepository, scheduleSvc, engine, policy, log)
	createBookingUseCase := createBookingUC.NewUseCase(bookingRepository, scheduleSvc, txMgr, engine, policy, log)

	// Инициализируем handlers
	health := healthHandler.NewHandler(wrappedDB, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	checkSlot := checkSlotHandler.NewHandler(checkSlotUseCase, log)
	nextAvailableDate := nextAvailableDateHandler.NewHandler(nextAvailableDateUseCase, log)
	getSchedule := getScheduleHandler.NewHandler(scheduleSvc, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	getClientBookings := getClientBookingsHandler.NewHandler(bookingSvc, log)
	getPractitionerBookings := getPractitionerBookingsHandler.NewHandler(bookingSvc, log)
	listSchedule := listScheduleHandler.NewHandler(scheduleSvc, log)
	upsertSchedule := upsertScheduleHandler.NewHandler(scheduleSvc, log)
	deleteSchedule := deleteScheduleHandler.NewHandler(scheduleSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Служебные маршруты
	r.HandleFunc("/health", health.Handle).Methods(http.MethodGet)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.BodyLimit(maxRequestBodyBytes))

	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
		api.Use(limiter.Middleware)
		log.Info("Rate limiting enabled: %.1f rps, burst %d", cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	}

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Свободные слоты специалиста на дату
	api.HandleFunc("/practitioners/{practitionerId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Проверка конкретного интервала
	api.HandleFunc("/practitioners/{practitionerId}/slot-availability",
		checkSlot.Handle).Methods(http.MethodGet)

	// Ближайшая дата со свободным слотом
	api.HandleFunc("/practitioners/{practitionerId}/next-available-date",
		nextAvailableDate.Handle).Methods(http.MethodGet)

	// Итоговое недельное расписание
	api.HandleFunc("/practitioners/{practitionerId}/schedule",
		getSchedule.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)

	// История бронирований клиента
	protected.HandleFunc("/clients/me/bookings", getClientBookings.Handle).Methods(http.MethodGet)

	// --- Для специалистов ---
	protected.HandleFunc("/practitioners/{practitionerId}/bookings",
		getPractitionerBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/practitioners/{practitionerId}/schedule/rows",
		listSchedule.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/practitioners/{practitionerId}/schedule",
		upsertSchedule.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/practitioners/{practitionerId}/schedule",
		deleteSchedule.Handle).Methods(http.MethodDelete)

	// CORS для фронтенда клиники
	var handler http.Handler = r
	if len(cfg.CORS.AllowedOrigins) > 0 {
		handler = gorillaHandlers.CORS(
			gorillaHandlers.AllowedOrigins(cfg.CORS.AllowedOrigins),
			gorillaHandlers.AllowedMethods(cfg.CORS.AllowedMethods),
			gorillaHandlers.AllowedHeaders(cfg.CORS.AllowedHeaders),
			gorillaHandlers.ExposedHeaders([]string{middleware.RequestIDHeader}),
		)(r)
		log.Info("CORS enabled for origins %v", cfg.CORS.AllowedOrigins)
	}

	// Фоновые задачи
	scheduler := jobs.NewScheduler(engine.Location(), log)
	if cfg.Jobs.Enabled {
		completeJob := jobs.NewCompleteBookingsJob(
			bookingRepository,
			time.Duration(cfg.Jobs.CompleteBookingsGrace)*time.Minute,
			log,
		)
		if err := scheduler.Register(cfg.Jobs.CompleteBookingsCron, completeJob); err != nil {
			log.Fatal("Failed to register job: %v", err)
		}
		scheduler.Start()
	}

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	if err := scheduler.Stop(shutdownCtx); err != nil {
		log.Error("Background jobs did not finish in time: %v", err)
	}

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	log.Info("Server stopped gracefully")
}
