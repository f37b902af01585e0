package next_available_date

import (
	"github.com/m04kA/ayurveda-booking-service/internal/domain"
	"github.com/m04kA/ayurveda-booking-service/pkg/zoned"
)

// Request модель запроса поиска ближайшей даты со свободным слотом
type Request struct {
	PractitionerID  int64
	DaysAhead       int // 0 - значение по умолчанию из конфигурации
	DurationMinutes int // 0 - длительность слота по умолчанию
}

// Response результат поиска
// Found = false - за все окно свободных слотов нет, это не ошибка
type Response struct {
	PractitionerID  int64
	Found           bool
	Date            *zoned.Day
	FirstSlot       *domain.Slot
	DaysAhead       int // фактически просмотренное окно
	DurationMinutes int
	Timezone        string
}
