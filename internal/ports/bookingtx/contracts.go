package bookingtx

import (
	"context"

	"swiftship/internal/domain"
)

// Repository is the transactional slice of the booking store used while
// creating a booking: claiming a driver and inserting the record commit or
// roll back together.
type Repository interface {
	ClaimAvailableDriver(ctx context.Context, vehicleType domain.VehicleType) (*domain.DriverSnapshot, error)
	InsertBooking(ctx context.Context, b *domain.Booking) error
}

// Runner is a transaction runner
type Runner interface {
	WithTx(ctx context.Context, fn func(tx Repository) error) error
}
