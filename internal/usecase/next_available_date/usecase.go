package next_available_date

import (
	"context"
	"fmt"

	"github.com/m04kA/ayurveda-booking-service/internal/availability"
	"github.com/m04kA/ayurveda-booking-service/internal/domain"
	"github.com/m04kA/ayurveda-booking-service/pkg/ptr"
)

// UseCase use case поиска ближайшей даты, в которой есть хотя бы один свободный слот
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

// Execute выполняет поиск
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("NextAvailableDate: practitioner=%d, daysAhead=%d, duration=%d",
		req.PractitionerID, req.DaysAhead, req.DurationMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("NextAvailableDate: validation failed: %v", err)
		return nil, err
	}

	duration := req.DurationMinutes
	if duration == 0 {
		duration = uc.policy.SlotDurationMinutes
	}

	daysAhead := req.DaysAhead
	if daysAhead == 0 {
		daysAhead = uc.policy.DaysAhead
	}
	daysAhead = searchWindow(daysAhead, uc.policy)

	// 2. Слоты раньше минимального времени до записи не считаются
	from := uc.policy.EarliestStart(uc.timeProvider.Now()).In(uc.engine.Location())
	firstDay := uc.engine.Day(from)

	// 3. Получаем расписание специалиста
	weekly, err := uc.scheduleProvider.GetWeeklySchedule(ctx, req.PractitionerID)
	if err != nil {
		uc.logger.Error("NextAvailableDate: failed to get schedule for practitioner=%d: %v", req.PractitionerID, err)
		return nil, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
	}

	// 4. Получаем бронирования одним запросом на все окно
	filter := domain.PractitionerBookingsFilter{
		PractitionerID:  req.PractitionerID,
		From:            ptr.Ptr(firstDay.StartOfDay().Add(-domain.BookingLookbehind)),
		To:              ptr.Ptr(firstDay.AddDays(daysAhead).StartOfDay()),
		IncludeInactive: false,
	}

	bookings, err := uc.bookingRepo.GetByPractitionerWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("NextAvailableDate: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 5. Ищем первый день со свободным слотом
	day, found, err := uc.engine.NextAvailableDate(from, bookings, weekly, duration, daysAhead)
	if err != nil {
		uc.logger.Error("NextAvailableDate: search failed: %v", err)
		return nil, fmt.Errorf("%w: search failed: %v", ErrInternal, err)
	}

	resp := &Response{
		PractitionerID:  req.PractitionerID,
		Found:           found,
		DaysAhead:       daysAhead,
		DurationMinutes: duration,
		Timezone:        uc.engine.Location().String(),
	}

	if !found {
		uc.logger.Info("NextAvailableDate: no free slots for practitioner=%d within %d days", req.PractitionerID, daysAhead)
		return resp, nil
	}

	// 6. Первый свободный слот найденного дня
	slots, err := availability.GenerateSlots(day, bookings, weekly.ScheduleFor(day.Weekday()), duration)
	if err != nil {
		uc.logger.Error("NextAvailableDate: failed to generate slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
	}
	if slots = availability.StartingFrom(slots, from); len(slots) > 0 {
		resp.FirstSlot = &slots[0]
	}
	resp.Date = &day

	uc.logger.Info("NextAvailableDate: practitioner=%d next available %s", req.PractitionerID, day)

	return resp, nil
}
