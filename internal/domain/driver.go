package domain

import "time"

// Rating is a single customer rating left for a driver.
type Rating struct {
	Rating  int       `json:"rating"`
	Comment string    `json:"comment,omitempty"`
	Date    time.Time `json:"date"`
}

// Driver represents a registered driver.
type Driver struct {
	ID            string
	Name          string
	Email         string
	Phone         string
	VehicleType   VehicleType
	VehicleNumber string
	IsAvailable   bool
	ProfileStatus ProfileStatus
	Address       string
	LicenseNumber string
	Gender        string
	Experience    int
	Ratings       []Rating
}

// DriverSnapshot is the point-in-time copy of a driver's public fields
// embedded in a booking at creation. It is never re-synced with the live
// driver record, so historical receipts stay stable.
type DriverSnapshot struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	Phone         string      `json:"phone"`
	VehicleType   VehicleType `json:"vehicleType"`
	VehicleNumber string      `json:"vehicleNumber"`
}

// PartialDriverProfile carries optional profile fields to update.
// A nil field means "do not change" that attribute.
type PartialDriverProfile struct {
	ID            string
	Name          *string
	Address       *string
	LicenseNumber *string
	VehicleType   *VehicleType
	VehicleNumber *string
	Phone         *string
	Gender        *string
	Experience    *int
}

// AverageRating returns the driver's mean rating rounded to one decimal.
// Drivers without ratings default to 5.
func (d *Driver) AverageRating() float64 {
	if len(d.Ratings) == 0 {
		return 5
	}
	total := 0
	for _, r := range d.Ratings {
		total += r.Rating
	}
	avg := float64(total) / float64(len(d.Ratings))
	return float64(int(avg*10+0.5)) / 10
}
