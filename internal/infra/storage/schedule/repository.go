package schedule

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/ayurveda-booking-service/internal/domain"
	"github.com/m04kA/ayurveda-booking-service/pkg/dbmetrics"
	"github.com/m04kA/ayurveda-booking-service/pkg/psqlbuilder"
)

const tableSchedules = "practitioner_schedules"

var scheduleColumns = []string{
	"id",
	"practitioner_id",
	"weekday",
	"start_time",
	"end_time",
	"break_start",
	"break_end",
	"available",
	"without_break",
	"created_at",
	"updated_at",
}

// Переиспользуем интерфейс из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий расписаний специалистов
// Поддерживает иерархию:
// 1. Строка для конкретного дня недели (practitioner_id, weekday)
// 2. Общая строка специалиста (practitioner_id, NULL)
// 3. Расписание по умолчанию из конфигурации (не хранится в БД)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает строку расписания
func (r *Repository) Create(ctx context.Context, s *domain.PractitionerSchedule) (*domain.PractitionerSchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableSchedules).
		Columns(
			"practitioner_id",
			"weekday",
			"start_time",
			"end_time",
			"break_start",
			"break_end",
			"available",
			"without_break",
		).
		Values(
			s.PractitionerID,
			weekdayValue(s.Weekday),
			s.StartTime,
			s.EndTime,
			s.BreakStart,
			s.BreakEnd,
			s.Available,
			s.WithoutBreak,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&s.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return s, nil
}

// Update перезаписывает поля строки расписания
func (r *Repository) Update(ctx context.Context, id int64, s *domain.PractitionerSchedule) (*domain.PractitionerSchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableSchedules).
		Set("start_time", s.StartTime).
		Set("end_time", s.EndTime).
		Set("break_start", s.BreakStart).
		Set("break_end", s.BreakEnd).
		Set("available", s.Available).
		Set("without_break", s.WithoutBreak).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrScheduleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, err)
	}

	s.ID = id
	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return s, nil
}

// GetAllByPractitioner получает все строки специалиста, общая строка первой
func (r *Repository) GetAllByPractitioner(ctx context.Context, practitionerID int64) ([]*domain.PractitionerSchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(scheduleColumns...).
		From(tableSchedules).
		Where(squirrel.Eq{"practitioner_id": practitionerID}).
		OrderBy("weekday ASC NULLS FIRST").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetAllByPractitioner - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAllByPractitioner - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	schedules := make([]*domain.PractitionerSchedule, 0)
	for rows.Next() {
		s, err := scanSchedule(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetAllByPractitioner - scan row: %v", ErrScanRow, err)
		}
		schedules = append(schedules, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetAllByPractitioner - rows error: %v", ErrScanRow, err)
	}

	return schedules, nil
}

// Delete удаляет строку специалиста для дня недели (weekday == nil - общая строка)
func (r *Repository) Delete(ctx context.Context, practitionerID int64, weekday *time.Weekday) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tableSchedules).
		Where(squirrel.Eq{"practitioner_id": practitionerID}).
		Where(squirrel.Eq{"weekday": weekdayValue(weekday)}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrScheduleNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSchedule(row rowScanner) (*domain.PractitionerSchedule, error) {
	var s domain.PractitionerSchedule
	var weekday sql.NullInt16
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&s.ID,
		&s.PractitionerID,
		&weekday,
		&s.StartTime,
		&s.EndTime,
		&s.BreakStart,
		&s.BreakEnd,
		&s.Available,
		&s.WithoutBreak,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if weekday.Valid {
		wd := time.Weekday(weekday.Int16)
		s.Weekday = &wd
	}
	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return &s, nil
}

// weekdayValue переводит день недели в значение колонки: nil превращается в IS NULL в squirrel.Eq
func weekdayValue(weekday *time.Weekday) interface{} {
	if weekday == nil {
		return nil
	}
	return int16(*weekday)
}
