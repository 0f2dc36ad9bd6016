package handlers

import (
	"swiftship/internal/domain"
	"swiftship/internal/service/booking"
)

func (r createBookingRequest) toInput() booking.CreateInput {
	in := booking.CreateInput{
		PickupLocations: r.PickupLocations,
		DropLocations:   r.DropLocations,
		Items:           r.Items,
		Amount:          r.Amount,
		ServicePlan:     r.ServicePlan,
	}
	if r.DriverInfo != nil {
		in.DriverInfo = &booking.DriverInfo{
			Name:          r.DriverInfo.Name,
			Phone:         r.DriverInfo.Phone,
			VehicleType:   r.DriverInfo.VehicleType,
			VehicleNumber: r.DriverInfo.VehicleNumber,
		}
	}
	return in
}

func (r updateProfileRequest) toModel(driverID string) domain.PartialDriverProfile {
	return domain.PartialDriverProfile{
		ID:            driverID,
		Name:          r.Name,
		Address:       r.Address,
		LicenseNumber: r.LicenseNumber,
		Phone:         r.Phone,
		VehicleType:   r.VehicleType,
		VehicleNumber: r.VehicleNumber,
		Gender:        r.Gender,
		Experience:    r.Experience,
	}
}

func bookingToResponse(b domain.Booking) bookingDTO {
	return bookingDTO{
		BookingID:       b.BookingID,
		UserID:          b.UserID,
		Status:          b.Status,
		Date:            b.Date,
		Amount:          b.Amount,
		DriverEarning:   b.DriverEarning,
		PickupLocations: b.PickupLocations,
		DropLocations:   b.DropLocations,
		Items:           b.Items,
		Driver:          b.Driver,
		CompletionDate:  b.CompletionDate,
		ServicePlan:     b.ServicePlan,
	}
}

func bookingsToResponse(list []domain.Booking) []bookingDTO {
	out := make([]bookingDTO, 0, len(list))
	for _, b := range list {
		out = append(out, bookingToResponse(b))
	}
	return out
}

func driverToResponse(d domain.Driver) driverDTO {
	return driverDTO{
		ID:            d.ID,
		Name:          d.Name,
		Phone:         d.Phone,
		VehicleType:   d.VehicleType,
		VehicleNumber: d.VehicleNumber,
		IsAvailable:   d.IsAvailable,
		ProfileStatus: d.ProfileStatus,
		Rating:        d.AverageRating(),
	}
}

func statsToResponse(s domain.DriverStats) statsDTO {
	return statsDTO{
		Pending:       s.Pending,
		InTransit:     s.InTransit,
		EarningsToday: s.EarningsToday,
		Rating:        s.Rating,
	}
}
