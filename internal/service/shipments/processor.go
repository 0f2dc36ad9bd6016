package shipments

import (
	"context"
	"time"

	"swiftship/internal/domain"
	"swiftship/internal/logx"
)

// Processor applies partner shipment events to local state. Unknown
// statuses are skipped; events for bookings we no longer hold are dropped
// rather than retried.
type Processor struct {
	bookings BookingPort
	drivers  DriverPort
	logger   logx.Logger
	factory  *actionFactory
	now      func() time.Time
}

// NewProcessor creates a new shipments.Processor.
func NewProcessor(bookings BookingPort, drivers DriverPort, logger logx.Logger) *Processor {
	p := &Processor{
		bookings: bookings,
		drivers:  drivers,
		logger:   logger,
		now:      func() time.Time { return time.Now() },
	}
	p.factory = newActionFactory(p.onCancelled, p.onRated)
	return p
}

// Handle processes a single shipments.Event.
func (p *Processor) Handle(ctx context.Context, e Event) error {
	if p.factory == nil {
		return nil
	}
	fn, ok := p.factory.get(e.Status)
	if !ok {
		return nil
	}
	return fn(ctx, e)
}

func (p *Processor) onCancelled(ctx context.Context, e Event) error {
	ok, err := p.bookings.CancelActive(ctx, e.BookingID)
	if err != nil {
		return err
	}
	if !ok {
		// Already terminal or never ours. Consume and move on.
		p.logger.Info("cancel event skipped",
			logx.String("booking_id", e.BookingID),
		)
		return nil
	}
	p.logger.Info("booking cancelled",
		logx.String("booking_id", e.BookingID),
	)
	return nil
}

func (p *Processor) onRated(ctx context.Context, e Event) error {
	if e.Rating < 1 || e.Rating > 5 {
		p.logger.Warn("rating event out of range",
			logx.String("booking_id", e.BookingID),
			logx.Int("rating", e.Rating),
		)
		return nil
	}

	b, err := p.bookings.GetByBookingID(ctx, e.BookingID)
	if err != nil {
		return err
	}
	if b == nil || b.Driver.ID == "" {
		return nil
	}

	date := e.CreatedAt
	if date.IsZero() {
		date = p.now()
	}
	_, err = p.drivers.AddRating(ctx, b.Driver.ID, domain.Rating{
		Rating:  e.Rating,
		Comment: e.Comment,
		Date:    date,
	})
	return err
}
