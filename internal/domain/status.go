package domain

type (
	// BookingStatus represents the lifecycle state of a booking.
	BookingStatus string
	// VehicleType represents the vehicle class of a driver.
	VehicleType string
	// ProfileStatus represents driver onboarding completeness.
	ProfileStatus string
)

// List of possible booking statuses
const (
	StatusPending   BookingStatus = "Pending"
	StatusInTransit BookingStatus = "In Transit"
	StatusDelivered BookingStatus = "Delivered"
	StatusCancelled BookingStatus = "Cancelled"
)

// List of possible vehicle types
const (
	VehicleBike       VehicleType = "Bike"
	VehicleSmallTruck VehicleType = "Small Truck"
	VehicleLargeTruck VehicleType = "Large Truck"
)

// List of possible profile statuses
const (
	ProfilePending  ProfileStatus = "Pending"
	ProfileComplete ProfileStatus = "Complete"
)

var allowedBookingStatuses = [...]BookingStatus{
	StatusPending, StatusInTransit, StatusDelivered, StatusCancelled,
}

var allowedVehicleTypes = [...]VehicleType{
	VehicleBike, VehicleSmallTruck, VehicleLargeTruck,
}

// driverTransitionTargets are the only statuses the assigned driver may
// move a booking to. Pending and Cancelled are never driver-settable.
var driverTransitionTargets = [...]BookingStatus{
	StatusInTransit, StatusDelivered,
}

// Valid checks if the BookingStatus is valid.
func (s BookingStatus) Valid() bool {
	for _, v := range allowedBookingStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// DriverSettable reports whether a driver may request this status as a
// transition target.
func (s BookingStatus) DriverSettable() bool {
	for _, v := range driverTransitionTargets {
		if s == v {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transitions exist out of this status.
func (s BookingStatus) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// Valid checks if the VehicleType is valid.
func (t VehicleType) Valid() bool {
	for _, v := range allowedVehicleTypes {
		if t == v {
			return true
		}
	}
	return false
}

// Valid checks if the ProfileStatus is valid.
func (p ProfileStatus) Valid() bool {
	return p == ProfilePending || p == ProfileComplete
}
