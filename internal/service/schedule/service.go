package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/ayurveda-booking-service/internal/domain"
	scheduleRepo "github.com/m04kA/ayurveda-booking-service/internal/infra/storage/schedule"
	"github.com/m04kA/ayurveda-booking-service/internal/service/schedule/models"
)

// Service сервис расписаний специалистов
// Итоговое расписание на день: по умолчанию (конфигурация) <- общая строка <- строка дня недели
type Service struct {
	scheduleRepo ScheduleRepository
	txManager    TransactionManager
	base         domain.WorkSchedule
	loc          *time.Location
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписаний
func NewService(
	scheduleRepo ScheduleRepository,
	txManager TransactionManager,
	base domain.WorkSchedule,
	loc *time.Location,
	logger Logger,
) *Service {
	return &Service{
		scheduleRepo: scheduleRepo,
		txManager:    txManager,
		base:         base,
		loc:          loc,
		logger:       logger,
	}
}

// GetWeeklySchedule возвращает итоговое расписание специалиста на неделю
// Используется usecase'ами доступности и бронирования
func (s *Service) GetWeeklySchedule(ctx context.Context, practitionerID int64) (domain.WeeklySchedule, error) {
	rows, err := s.scheduleRepo.GetAllByPractitioner(ctx, practitionerID)
	if err != nil {
		s.logger.Error("GetWeeklySchedule: repository error for practitioner=%d: %v", practitionerID, err)
		return domain.WeeklySchedule{}, fmt.Errorf("%w: GetWeeklySchedule - repository error: %w", ErrInternal, err)
	}

	return domain.ResolveWeeklySchedule(s.base, rows), nil
}

// GetWeekly получает итоговое расписание специалиста
// Публичный метод - доступен всем
func (s *Service) GetWeekly(ctx context.Context, practitionerID int64) (*models.WeeklyScheduleResponse, error) {
	s.logger.Info("GetWeekly: fetching schedule for practitioner=%d", practitionerID)

	weekly, err := s.GetWeeklySchedule(ctx, practitionerID)
	if err != nil {
		return nil, err
	}

	return models.FromWeeklySchedule(practitionerID, s.loc.String(), weekly), nil
}

// List получает сохраненные строки расписания специалиста
// Доступно только самому специалисту
func (s *Service) List(ctx context.Context, practitionerID int64, userID int64) (*models.ScheduleListResponse, error) {
	s.logger.Info("List: fetching schedule rows for practitioner=%d by user=%d", practitionerID, userID)

	if practitionerID != userID {
		s.logger.Warn("List: user=%d is not practitioner=%d", userID, practitionerID)
		return nil, ErrAccessDenied
	}

	rows, err := s.scheduleRepo.GetAllByPractitioner(ctx, practitionerID)
	if err != nil {
		s.logger.Error("List: repository error for practitioner=%d: %v", practitionerID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d rows for practitioner=%d", len(rows), practitionerID)
	return models.FromDomainScheduleList(rows), nil
}

// Upsert создает или заменяет строку расписания для дня недели (или общую)
// Доступно только самому специалисту
// Итоговое расписание после изменения должно оставаться корректным для каждого дня
func (s *Service) Upsert(ctx context.Context, req *models.UpsertScheduleRequest) (*models.ScheduleResponse, error) {
	s.logger.Info("Upsert: practitioner=%d, weekday=%v by user=%d", req.PractitionerID, req.Weekday, req.UserID)

	// 1. Проверяем права доступа
	if req.PractitionerID != req.UserID {
		s.logger.Warn("Upsert: user=%d is not practitioner=%d", req.UserID, req.PractitionerID)
		return nil, ErrAccessDenied
	}

	// 2. Конвертируем и валидируем формат
	row, err := req.ToDomainSchedule()
	if err != nil {
		s.logger.Warn("Upsert: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var result *domain.PractitionerSchedule

	// 3. Проверяем итоговое расписание и сохраняем в одной транзакции
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		rows, err := s.scheduleRepo.GetAllByPractitioner(txCtx, req.PractitionerID)
		if err != nil {
			s.logger.Error("Upsert: repository error: %v", err)
			return fmt.Errorf("%w: Upsert - repository error: %w", ErrInternal, err)
		}

		var existing *domain.PractitionerSchedule
		merged := make([]*domain.PractitionerSchedule, 0, len(rows)+1)
		for _, r := range rows {
			if sameWeekday(r.Weekday, row.Weekday) {
				existing = r
				continue
			}
			merged = append(merged, r)
		}
		merged = append(merged, row)

		if err := domain.ResolveWeeklySchedule(s.base, merged).Validate(); err != nil {
			s.logger.Warn("Upsert: resulting schedule is invalid: %v", err)
			return fmt.Errorf("%w: %v", ErrInvalidSchedule, err)
		}

		if existing != nil {
			result, err = s.scheduleRepo.Update(txCtx, existing.ID, row)
		} else {
			result, err = s.scheduleRepo.Create(txCtx, row)
		}
		if err != nil {
			s.logger.Error("Upsert: repository error: %v", err)
			return fmt.Errorf("%w: Upsert - repository error: %w", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Upsert: successfully saved schedule id=%d for practitioner=%d", result.ID, req.PractitionerID)
	return models.FromDomainSchedule(result), nil
}

// Delete удаляет строку расписания; день возвращается к уровню ниже
// Доступно только самому специалисту
func (s *Service) Delete(ctx context.Context, req *models.DeleteScheduleRequest) error {
	s.logger.Info("Delete: practitioner=%d, weekday=%v by user=%d", req.PractitionerID, req.Weekday, req.UserID)

	if req.PractitionerID != req.UserID {
		s.logger.Warn("Delete: user=%d is not practitioner=%d", req.UserID, req.PractitionerID)
		return ErrAccessDenied
	}

	weekday, err := models.ParseWeekday(req.Weekday)
	if err != nil {
		s.logger.Warn("Delete: validation failed: %v", err)
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return s.txManager.Do(ctx, func(txCtx context.Context) error {
		rows, err := s.scheduleRepo.GetAllByPractitioner(txCtx, req.PractitionerID)
		if err != nil {
			s.logger.Error("Delete: repository error: %v", err)
			return fmt.Errorf("%w: Delete - repository error: %w", ErrInternal, err)
		}

		remaining := make([]*domain.PractitionerSchedule, 0, len(rows))
		for _, r := range rows {
			if !sameWeekday(r.Weekday, weekday) {
				remaining = append(remaining, r)
			}
		}

		if err := domain.ResolveWeeklySchedule(s.base, remaining).Validate(); err != nil {
			s.logger.Warn("Delete: resulting schedule is invalid: %v", err)
			return fmt.Errorf("%w: %v", ErrInvalidSchedule, err)
		}

		if err := s.scheduleRepo.Delete(txCtx, req.PractitionerID, weekday); err != nil {
			if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
				s.logger.Warn("Delete: no schedule row for practitioner=%d, weekday=%v", req.PractitionerID, req.Weekday)
				return ErrScheduleNotFound
			}
			s.logger.Error("Delete: repository error: %v", err)
			return fmt.Errorf("%w: Delete - repository error: %w", ErrInternal, err)
		}

		s.logger.Info("Delete: successfully deleted schedule row for practitioner=%d", req.PractitionerID)
		return nil
	})
}

func sameWeekday(a, b *time.Weekday) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
