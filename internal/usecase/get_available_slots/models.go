package get_available_slots

import (
	"time"

	"github.com/v0ronc/CRM-SchedulingService/internal/domain"
	"github.com/v0ronc/CRM-SchedulingService/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	Slug string    // Публичный slug страницы бронирования
	Date time.Time // Дата, на которую запрашиваются слоты (без времени)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	PageID              int64     // ID страницы бронирования
	Slug                string    // Slug страницы
	Date                time.Time // Дата, на которую запрашивались слоты
	Timezone            string    // Таймзона страницы (IANA)
	SlotDurationMinutes int       // Длительность слота в минутах
	Slots               []Slot    // Список доступных слотов (пустой список - нормальный результат)
}

// Slot модель временного слота
type Slot struct {
	StartTime types.TimeString // Время начала слота (например, "10:00")
	EndTime   types.TimeString // Время конца слота
}

// toSlots конвертирует доменные слоты в модель ответа
func toSlots(slots []domain.Slot) []Slot {
	result := make([]Slot, 0, len(slots))
	for _, s := range slots {
		result = append(result, Slot{
			StartTime: s.StartTime,
			EndTime:   s.EndTime,
		})
	}
	return result
}
