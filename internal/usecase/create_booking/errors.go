package create_booking

import "errors"

var (
	// ErrInvalidDate возвращается, когда дата бронирования в прошлом
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("create_booking: date is too far in the future")

	// ErrPractitionerUnavailable возвращается, когда у специалиста выходной в этот день
	ErrPractitionerUnavailable = errors.New("create_booking: practitioner is not working on this date")

	// ErrOutsideWorkingHours возвращается, когда интервал выходит за рабочие часы или задевает перерыв
	ErrOutsideWorkingHours = errors.New("create_booking: outside working hours")

	// ErrSlotNotAvailable возвращается, когда интервал пересекается с существующим бронированием
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrTooLateToBook возвращается, когда попытка забронировать нарушает minBookingNoticeMinutes
	ErrTooLateToBook = errors.New("create_booking: too late to book this slot")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
