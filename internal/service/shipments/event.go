package shipments

import (
	"time"
)

// Event is a single shipment event published by the partner platform.
type Event struct {
	BookingID string    `json:"booking_id"`
	Status    string    `json:"status"`
	Rating    int       `json:"rating,omitempty"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
