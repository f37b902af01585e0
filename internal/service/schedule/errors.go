package schedule

import "errors"

var (
	// ErrScheduleNotFound возвращается, когда строка расписания не найдена
	ErrScheduleNotFound = errors.New("schedule not found")

	// ErrAccessDenied возвращается, когда пользователь не является этим специалистом
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidSchedule возвращается, когда итоговое расписание противоречиво
	ErrInvalidSchedule = errors.New("invalid schedule")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
