package handlers

import (
	"context"

	"swiftship/internal/domain"
	"swiftship/internal/service/booking"
	"swiftship/internal/service/drivertasks"
)

type bookingUsecase interface {
	Create(ctx context.Context, userID string, in booking.CreateInput) (*domain.Booking, error)
	ListForUser(ctx context.Context, userID string) ([]domain.Booking, error)
	GetByBookingID(ctx context.Context, bookingID string) (*domain.Booking, string, error)
}

// NewBookingUsecase wires a booking.Service into a bookingUsecase.
func NewBookingUsecase(svc *booking.Service) bookingUsecase {
	return svc
}

type driverUsecase interface {
	Tasks(ctx context.Context, driverID string) ([]domain.Booking, error)
	UpdateStatus(ctx context.Context, driverID, bookingID string, status domain.BookingStatus) (*domain.Booking, error)
	SetAvailability(ctx context.Context, driverID string, available bool) (bool, error)
	Stats(ctx context.Context, driverID string) (domain.DriverStats, error)
	History(ctx context.Context, driverID string) ([]domain.Booking, error)
	ClearHistory(ctx context.Context, driverID string) (int64, error)
	UpdateProfile(ctx context.Context, u domain.PartialDriverProfile) (*domain.Driver, error)
	FindAvailable(ctx context.Context, items []domain.Item) (*domain.Driver, domain.VehicleType, error)
}

// NewDriverUsecase wires a drivertasks.Service into a driverUsecase.
func NewDriverUsecase(svc *drivertasks.Service) driverUsecase {
	return svc
}
