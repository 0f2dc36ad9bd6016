package shipments

import (
	"context"

	"swiftship/internal/domain"
)

// BookingPort abstracts the subset of booking storage operations
// needed by the shipments Processor when handling partner events.
type BookingPort interface {
	GetByBookingID(ctx context.Context, bookingID string) (*domain.Booking, error)
	CancelActive(ctx context.Context, bookingID string) (bool, error)
}

// DriverPort abstracts the driver-directory write used when a customer
// rates a completed delivery.
type DriverPort interface {
	AddRating(ctx context.Context, id string, rating domain.Rating) (bool, error)
}
