package kafka

import (
	"strings"
	"time"

	"delivery-relay/internal/service/events"
)

// EventDTO is the wire form of events.Event
type EventDTO struct {
	OrderID   int64     `json:"order_id"`
	CourierID int64     `json:"livreur_id,omitempty"`
	Status    string    `json:"status"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToDomain converts EventDTO to events.Event
func ToDomain(dto EventDTO) events.Event {
	return events.Event{
		OrderID:   dto.OrderID,
		CourierID: dto.CourierID,
		Status:    strings.ToUpper(strings.TrimSpace(dto.Status)),
		UpdatedAt: dto.UpdatedAt,
	}
}
