package create_booking

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/ayurveda-booking-service/internal/availability"
	"github.com/m04kA/ayurveda-booking-service/internal/domain"
	"github.com/m04kA/ayurveda-booking-service/pkg/ptr"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo      BookingRepository
	scheduleProvider ScheduleProvider
	txManager        TransactionManager
	engine           *availability.Engine
	policy           domain.BookingPolicy
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	scheduleProvider ScheduleProvider,
	txManager TransactionManager,
	engine *availability.Engine,
	policy domain.BookingPolicy,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:      bookingRepo,
		scheduleProvider: scheduleProvider,
		txManager:        txManager,
		engine:           engine,
		policy:           policy,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет use case создания бронирования
// Использует сериализуемую транзакцию для предотвращения двойного бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: client=%d, practitioner=%d, startsAt=%s, duration=%d",
		req.ClientID, req.PractitionerID, req.StartsAt.Format(time.RFC3339), req.DurationMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	duration := req.DurationMinutes
	if duration == 0 {
		duration = uc.policy.SlotDurationMinutes
	}

	// 2. Приводим время к часовому поясу специалиста
	now := uc.timeProvider.Now()
	start := req.StartsAt.In(uc.engine.Location())
	end := start.Add(time.Duration(duration) * time.Minute)
	day := uc.engine.Day(start)

	// 3. Проверяем дату и минимальное время до записи
	if err := validateDate(day, uc.engine.Day(now), uc.policy.AdvanceBookingDays); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return nil, err
	}

	if err := validateBookingTime(start, uc.policy, now); err != nil {
		uc.logger.Warn("CreateBooking: booking time validation failed: %v", err)
		return nil, err
	}

	var result *domain.Booking

	// 4. Выполняем операции с БД в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Получаем расписание специалиста на этот день
		weekly, err := uc.scheduleProvider.GetWeeklySchedule(txCtx, req.PractitionerID)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get schedule for practitioner=%d: %v", req.PractitionerID, err)
			return fmt.Errorf("%w: failed to get schedule: %w", ErrInternal, err)
		}

		schedule := weekly.ScheduleFor(day.Weekday())
		if !schedule.Available {
			uc.logger.Warn("CreateBooking: practitioner=%d is not working on %s", req.PractitionerID, day)
			return ErrPractitionerUnavailable
		}

		// 4.2. Интервал должен целиком лежать в рабочих часах
		within, err := availability.WithinSchedule(day, schedule, start, duration)
		if err != nil {
			uc.logger.Error("CreateBooking: schedule check failed: %v", err)
			return fmt.Errorf("%w: schedule check failed: %v", ErrInternal, err)
		}
		if !within {
			uc.logger.Warn("CreateBooking: %s-%s is outside working hours %s-%s",
				start.Format(domain.TimeFormat), end.Format(domain.TimeFormat), schedule.StartTime, schedule.EndTime)
			return ErrOutsideWorkingHours
		}

		// 4.3. Получаем активные бронирования, которые могут пересечься, с блокировкой (FOR UPDATE)
		filter := domain.PractitionerBookingsFilter{
			PractitionerID:  req.PractitionerID,
			From:            ptr.Ptr(start.Add(-domain.BookingLookbehind)),
			To:              ptr.Ptr(end),
			IncludeInactive: false,
		}

		bookings, err := uc.bookingRepo.GetByPractitionerWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %w", ErrInternal, err)
		}

		// 4.4. Проверяем пересечения
		available, err := uc.engine.IsSlotAvailable(start, duration, bookings)
		if err != nil {
			uc.logger.Error("CreateBooking: conflict check failed: %v", err)
			return fmt.Errorf("%w: conflict check failed: %v", ErrInternal, err)
		}
		if !available {
			uc.logger.Warn("CreateBooking: %s overlaps an existing booking of practitioner=%d",
				start.Format(time.RFC3339), req.PractitionerID)
			return ErrSlotNotAvailable
		}

		// 4.5. Сохраняем бронирование
		created, err := uc.bookingRepo.Create(txCtx, &domain.Booking{
			ClientID:        req.ClientID,
			PractitionerID:  req.PractitionerID,
			StartsAt:        start,
			DurationMinutes: duration,
			Status:          domain.StatusConfirmed,
			TreatmentName:   req.TreatmentName,
			Notes:           req.Notes,
		})
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	return &Response{
		ID:              result.ID,
		ClientID:        result.ClientID,
		PractitionerID:  result.PractitionerID,
		StartsAt:        result.StartsAt.In(uc.engine.Location()),
		EndsAt:          result.EndsAt().In(uc.engine.Location()),
		DurationMinutes: result.DurationMinutes,
		Status:          string(result.Status),
		TreatmentName:   result.TreatmentName,
		Notes:           result.Notes,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}
