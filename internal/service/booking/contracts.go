package booking

import (
	"context"

	"swiftship/internal/domain"
	"swiftship/internal/ports/bookingtx"
)

// bookingStore defines storage operations required by the booking flow.
type bookingStore interface {
	WithTx(ctx context.Context, fn func(tx bookingtx.Repository) error) error
	Insert(ctx context.Context, b *domain.Booking) error
	ListByUser(ctx context.Context, userID string) ([]domain.Booking, error)
	GetByBookingID(ctx context.Context, bookingID string) (*domain.Booking, error)
}

// userDirectory resolves customer identity for public booking reads.
type userDirectory interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

// counter is the subset of a metrics counter the service needs.
type counter interface {
	Inc()
}
