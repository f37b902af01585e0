package create_booking

import "time"

// Request модель запроса на создание бронирования
type Request struct {
	ClientID        int64     // ID клиента (из заголовка авторизации)
	PractitionerID  int64     // ID специалиста
	StartsAt        time.Time // Начало сеанса, абсолютное время
	DurationMinutes int       // Длительность, 0 - длительность слота по умолчанию
	TreatmentName   *string   // Название процедуры (опционально)
	Notes           *string   // Дополнительные заметки (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              int64
	ClientID        int64
	PractitionerID  int64
	StartsAt        time.Time // в часовом поясе Asia/Colombo
	EndsAt          time.Time
	DurationMinutes int
	Status          string
	TreatmentName   *string
	Notes           *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
