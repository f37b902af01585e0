package get_available_slots

import (
	"github.com/m04kA/ayurveda-booking-service/internal/domain"
	"github.com/m04kA/ayurveda-booking-service/pkg/zoned"
)

// Request модель запроса на получение свободных слотов
type Request struct {
	PractitionerID  int64  // ID специалиста
	Date            string // Дата в формате YYYY-MM-DD (по времени Asia/Colombo)
	DurationMinutes int    // Длительность слота, 0 - по умолчанию из конфигурации
}

// Response модель ответа со списком свободных слотов
type Response struct {
	PractitionerID  int64
	Date            zoned.Day
	Timezone        string
	DurationMinutes int
	Slots           []domain.Slot // Отсортированы по времени начала
}
