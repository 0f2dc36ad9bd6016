package domain

import "time"

// Location is a pickup or drop point. Order within a booking's location
// lists is meaningful: items reference positions by index.
type Location struct {
	Address string `json:"address"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
}

// Item is a single shipment item belonging to exactly one booking.
type Item struct {
	Name                string `json:"name"`
	Weight              string `json:"weight,omitempty"`
	Size                string `json:"size,omitempty"`
	PickupLocationIndex int    `json:"pickupLocationIndex"`
	DropLocationIndex   int    `json:"dropLocationIndex"`
}

// Booking is a single shipment order from creation through delivery or
// cancellation.
type Booking struct {
	BookingID       string
	UserID          string
	Status          BookingStatus
	Date            time.Time
	Amount          float64
	DriverEarning   float64
	PickupLocations []Location
	DropLocations   []Location
	Items           []Item
	Driver          DriverSnapshot
	CompletionDate  *time.Time
	ServicePlan     string
}

// DriverStats is derived per call, never stored.
type DriverStats struct {
	Pending       int
	InTransit     int
	EarningsToday float64
	Rating        float64
}
