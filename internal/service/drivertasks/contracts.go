package drivertasks

import (
	"context"
	"time"

	"swiftship/internal/domain"
)

// bookingStore defines the booking reads and scoped writes the driver task
// flow needs. Every operation is filtered by the embedded driver snapshot ID.
type bookingStore interface {
	ListActiveByDriver(ctx context.Context, driverID string) ([]domain.Booking, error)
	UpdateStatusByDriver(ctx context.Context, bookingID, driverID string, status domain.BookingStatus, completionDate *time.Time) (*domain.Booking, error)
	EarningsBetween(ctx context.Context, driverID string, from, to time.Time) (float64, error)
	ListHistoryByDriver(ctx context.Context, driverID string) ([]domain.Booking, error)
	DeleteHistoryByDriver(ctx context.Context, driverID string) (int64, error)
}

// driverDirectory defines driver-directory operations used by self-service
// endpoints and the public availability probe.
type driverDirectory interface {
	GetByID(ctx context.Context, id string) (*domain.Driver, error)
	FindAvailable(ctx context.Context, vt domain.VehicleType) (*domain.Driver, error)
	SetAvailability(ctx context.Context, id string, available bool) (bool, error)
	UpdateProfile(ctx context.Context, u domain.PartialDriverProfile) (*domain.Driver, error)
}
