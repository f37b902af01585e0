package check_slot

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/ayurveda-booking-service/internal/availability"
	"github.com/m04kA/ayurveda-booking-service/internal/domain"
	"github.com/m04kA/ayurveda-booking-service/pkg/ptr"
)

// UseCase use case проверки произвольного интервала без перебора слотов
type UseCase struct {
	bookingRepo      BookingRepository
	scheduleProvider ScheduleProvider
	engine           *availability.Engine
	policy           domain.BookingPolicy
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	scheduleProvider ScheduleProvider,
	engine *availability.Engine,
	policy domain.BookingPolicy,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:      bookingRepo,
		scheduleProvider: scheduleProvider,
		engine:           engine,
		policy:           policy,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет проверку интервала
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckSlot: practitioner=%d, startsAt=%s, duration=%d",
		req.PractitionerID, req.StartsAt.Format(time.RFC3339), req.DurationMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckSlot: validation failed: %v", err)
		return nil, err
	}

	duration := req.DurationMinutes
	if duration == 0 {
		duration = uc.policy.SlotDurationMinutes
	}

	start := req.StartsAt.In(uc.engine.Location())
	end := start.Add(time.Duration(duration) * time.Minute)

	// 2. Получаем бронирования, которые могут пересекать интервал
	filter := domain.PractitionerBookingsFilter{
		PractitionerID:  req.PractitionerID,
		From:            ptr.Ptr(start.Add(-domain.BookingLookbehind)),
		To:              ptr.Ptr(end),
		IncludeInactive: false,
	}

	bookings, err := uc.bookingRepo.GetByPractitionerWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("CheckSlot: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 3. Проверяем пересечения
	available, err := uc.engine.IsSlotAvailable(start, duration, bookings)
	if err != nil {
		uc.logger.Error("CheckSlot: conflict check failed: %v", err)
		return nil, fmt.Errorf("%w: conflict check failed: %v", ErrInternal, err)
	}

	// 4. Проверяем рабочие часы
	weekly, err := uc.scheduleProvider.GetWeeklySchedule(ctx, req.PractitionerID)
	if err != nil {
		uc.logger.Error("CheckSlot: failed to get schedule for practitioner=%d: %v", req.PractitionerID, err)
		return nil, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
	}

	day := uc.engine.Day(start)
	withinHours, err := availability.WithinSchedule(day, weekly.ScheduleFor(day.Weekday()), start, duration)
	if err != nil {
		uc.logger.Error("CheckSlot: schedule check failed: %v", err)
		return nil, fmt.Errorf("%w: schedule check failed: %v", ErrInternal, err)
	}

	// 5. Учитываем минимальное время до записи
	bookable := available && withinHours && !start.Before(uc.policy.EarliestStart(uc.timeProvider.Now()))

	uc.logger.Info("CheckSlot: practitioner=%d, startsAt=%s: available=%t, withinHours=%t, bookable=%t",
		req.PractitionerID, start.Format(time.RFC3339), available, withinHours, bookable)

	return &Response{
		PractitionerID:     req.PractitionerID,
		StartsAt:           start,
		EndsAt:             end,
		DurationMinutes:    duration,
		Available:          available,
		WithinWorkingHours: withinHours,
		Bookable:           bookable,
	}, nil
}
