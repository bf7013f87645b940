package list_slots

import (
	listSlots "github.com/m04kA/SMC-EstateBookingService/internal/usecase/list_slots"
	"github.com/m04kA/SMC-EstateBookingService/pkg/types"
)

// SlotsResponse HTTP response model
type SlotsResponse struct {
	ResourceID     int64      `json:"resourceId"`
	Date           types.Date `json:"date"`
	AvailableCount int        `json:"availableCount"`
	Slots          []Slot     `json:"slots"`
}

// Slot модель временного слота
type Slot struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
	Priority  int    `json:"priority"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *listSlots.Response) *SlotsResponse {
	slots := make([]Slot, len(resp.Slots))
	available := 0
	for i, slot := range resp.Slots {
		slots[i] = Slot{
			Time:      slot.Time.String(),
			Available: slot.Available,
			Priority:  slot.Priority,
		}
		if slot.Available {
			available++
		}
	}

	return &SlotsResponse{
		ResourceID:     resp.ResourceID,
		Date:           resp.Date,
		AvailableCount: available,
		Slots:          slots,
	}
}
