package get_available_slots

import (
	"context"
	"fmt"

	"github.com/m04kA/ayurveda-booking-service/internal/availability"
	"github.com/m04kA/ayurveda-booking-service/internal/domain"
	"github.com/m04kA/ayurveda-booking-service/pkg/ptr"
	"github.com/m04kA/ayurveda-booking-service/pkg/zoned"
)

// UseCase use case для получения свободных слотов специалиста на дату
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

// Execute выполняет use case получения свободных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: practitioner=%d, date=%s, duration=%d",
		req.PractitionerID, req.Date, req.DurationMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	day, err := zoned.ParseDay(req.Date, uc.engine.Location())
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: invalid date %q: %v", req.Date, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	duration := req.DurationMinutes
	if duration == 0 {
		duration = uc.policy.SlotDurationMinutes
	}

	// 2. Получаем текущее время и проверяем дату
	now := uc.timeProvider.Now()
	if err := validateDate(day, uc.engine.Day(now), uc.policy.AdvanceBookingDays); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	// 3. Получаем расписание специалиста
	weekly, err := uc.scheduleProvider.GetWeeklySchedule(ctx, req.PractitionerID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get schedule for practitioner=%d: %v", req.PractitionerID, err)
		return nil, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
	}

	// 4. Получаем активные бронирования, которые могут пересекать этот день
	// Бронирование накануне может заходить за полночь, поэтому окно начинается раньше
	filter := domain.PractitionerBookingsFilter{
		PractitionerID:  req.PractitionerID,
		From:            ptr.Ptr(day.StartOfDay().Add(-domain.BookingLookbehind)),
		To:              ptr.Ptr(day.AddDays(1).StartOfDay()),
		IncludeInactive: false,
	}

	bookings, err := uc.bookingRepo.GetByPractitionerWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 5. Генерируем слоты
	slots, err := availability.GenerateSlots(day, bookings, weekly.ScheduleFor(day.Weekday()), duration)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
	}

	// 6. Убираем слоты, которые начинаются раньше минимального времени до записи
	slots = availability.StartingFrom(slots, uc.policy.EarliestStart(now))

	uc.logger.Info("GetAvailableSlots: generated %d slots for practitioner=%d, date=%s",
		len(slots), req.PractitionerID, day)

	return &Response{
		PractitionerID:  req.PractitionerID,
		Date:            day,
		Timezone:        uc.engine.Location().String(),
		DurationMinutes: duration,
		Slots:           slots,
	}, nil
}
