package notifier

import (
	"time"

	"github.com/m04kA/SMC-EstateBookingService/internal/domain"
)

// StatusChangeEvent тело вебхука о смене статуса заявки
type StatusChangeEvent struct {
	EventID    string    `json:"event_id"`
	Kind       string    `json:"kind"` // stay | visit
	RequestID  int64     `json:"request_id"`
	ResourceID int64     `json:"resource_id"` // объект для stay, ресурс визитов для visit
	From       string    `json:"from"`
	To         string    `json:"to"`
	Reason     *string   `json:"reason,omitempty"`
	ChangedAt  time.Time `json:"changed_at"`
}

func newStatusChangeEvent(eventID string, change domain.StatusChange) StatusChangeEvent {
	return StatusChangeEvent{
		EventID:    eventID,
		Kind:       string(change.Ref.Kind),
		RequestID:  change.Ref.ID,
		ResourceID: change.ResourceID,
		From:       string(change.From),
		To:         string(change.To),
		Reason:     change.Reason,
		ChangedAt:  change.ChangedAt,
	}
}
