package handlers

import (
	"time"

	"swiftship/internal/domain"
)

type bookingDTO struct {
	BookingID       string                `json:"bookingId"`
	UserID          string                `json:"userId"`
	CustomerName    string                `json:"customerName,omitempty"`
	Status          domain.BookingStatus  `json:"status"`
	Date            time.Time             `json:"date"`
	Amount          float64               `json:"amount"`
	DriverEarning   float64               `json:"driverEarning"`
	PickupLocations []domain.Location     `json:"pickupLocations"`
	DropLocations   []domain.Location     `json:"dropLocations"`
	Items           []domain.Item         `json:"items"`
	Driver          domain.DriverSnapshot `json:"driver"`
	CompletionDate  *time.Time            `json:"completionDate,omitempty"`
	ServicePlan     string                `json:"servicePlan"`
}

type driverInfoRequest struct {
	Name          string             `json:"name"`
	Phone         string             `json:"phone"`
	VehicleType   domain.VehicleType `json:"vehicleType"`
	VehicleNumber string             `json:"vehicleNumber"`
}

type createBookingRequest struct {
	PickupLocations []domain.Location  `json:"pickupLocations"`
	DropLocations   []domain.Location  `json:"dropLocations"`
	Items           []domain.Item      `json:"items"`
	Amount          float64            `json:"amount"`
	ServicePlan     string             `json:"servicePlan,omitempty"`
	DriverInfo      *driverInfoRequest `json:"driverInfo,omitempty"`
}

type findDriverRequest struct {
	Items []domain.Item `json:"items"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

type availabilityRequest struct {
	IsAvailable bool `json:"isAvailable"`
}

type updateProfileRequest struct {
	Name          *string             `json:"name,omitempty"`
	Address       *string             `json:"address,omitempty"`
	LicenseNumber *string             `json:"licenseNumber,omitempty"`
	Phone         *string             `json:"phone,omitempty"`
	VehicleType   *domain.VehicleType `json:"vehicleType,omitempty"`
	VehicleNumber *string             `json:"vehicleNumber,omitempty"`
	Gender        *string             `json:"gender,omitempty"`
	Experience    *int                `json:"experience,omitempty"`
}

type driverDTO struct {
	ID            string               `json:"id"`
	Name          string               `json:"name"`
	Phone         string               `json:"phone"`
	VehicleType   domain.VehicleType   `json:"vehicleType"`
	VehicleNumber string               `json:"vehicleNumber"`
	IsAvailable   bool                 `json:"isAvailable"`
	ProfileStatus domain.ProfileStatus `json:"profileStatus"`
	Rating        float64              `json:"rating"`
}

type statsDTO struct {
	Pending       int     `json:"pending"`
	InTransit     int     `json:"inTransit"`
	EarningsToday float64 `json:"earningsToday"`
	Rating        float64 `json:"rating"`
}
