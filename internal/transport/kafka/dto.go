package kafka

import (
	"strings"
	"time"

	"swiftship/internal/service/shipments"
)

// EventDTO is the wire shape of a partner shipment event.
type EventDTO struct {
	BookingID string    `json:"booking_id"`
	Status    string    `json:"status"`
	Rating    int       `json:"rating,omitempty"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ToDomain converts EventDTO to shipments.Event.
func ToDomain(dto EventDTO) shipments.Event {
	return shipments.Event{
		BookingID: strings.TrimSpace(dto.BookingID),
		Status:    strings.TrimSpace(dto.Status),
		Rating:    dto.Rating,
		Comment:   strings.TrimSpace(dto.Comment),
		CreatedAt: dto.CreatedAt,
	}
}
