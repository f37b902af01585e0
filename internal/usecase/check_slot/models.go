package check_slot

import "time"

// Request модель запроса проверки интервала
type Request struct {
	PractitionerID  int64
	StartsAt        time.Time
	DurationMinutes int // 0 - длительность слота по умолчанию
}

// Response результат проверки
type Response struct {
	PractitionerID  int64
	StartsAt        time.Time // в часовом поясе Asia/Colombo
	EndsAt          time.Time
	DurationMinutes int

	// Available - интервал не пересекается ни с одним активным бронированием
	Available bool
	// WithinWorkingHours - интервал целиком в рабочих часах и не задевает перерыв
	WithinWorkingHours bool
	// Bookable - интервал можно забронировать прямо сейчас
	Bookable bool
}
