package get_available_slots

import (
	"github.com/v0ronc/CRM-SchedulingService/internal/domain"
	getAvailableSlots "github.com/v0ronc/CRM-SchedulingService/internal/usecase/get_available_slots"
)

// SlotResponse HTTP модель временного слота
type SlotResponse struct {
	StartTime string `json:"startTime"` // "10:00"
	EndTime   string `json:"endTime"`   // "10:30"
}

// SlotsResponse HTTP модель ответа со списком доступных слотов
type SlotsResponse struct {
	Slug                string         `json:"slug"`
	Date                string         `json:"date"` // "2026-03-09"
	Timezone            string         `json:"timezone"`
	SlotDurationMinutes int            `json:"slotDurationMinutes"`
	Slots               []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *SlotsResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, SlotResponse{
			StartTime: s.StartTime.String(),
			EndTime:   s.EndTime.String(),
		})
	}

	return &SlotsResponse{
		Slug:                resp.Slug,
		Date:                resp.Date.Format(domain.DateFormat),
		Timezone:            resp.Timezone,
		SlotDurationMinutes: resp.SlotDurationMinutes,
		Slots:               slots,
	}
}
