package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"swiftship/internal/gateway/partner"
	"swiftship/internal/service/shipments"
	"swiftship/internal/transport/kafka"
)

type shipmentHandler interface {
	Handle(ctx context.Context, e shipments.Event) error
}

type shipmentGateway interface {
	GetByID(ctx context.Context, id string) (*partner.Shipment, error)
}

// makeShipmentsKafka builds the consumer handler. With a partner gateway
// configured, each event's status is re-read from the partner API before
// it is applied, so stale or spoofed feed entries never mutate state.
func makeShipmentsKafka(p shipmentHandler, gw shipmentGateway) kafka.HandleFunc {
	return func(ctx context.Context, event shipments.Event) error {
		if gw == nil {
			return p.Handle(ctx, event)
		}

		gwCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()

		s, err := gw.GetByID(gwCtx, event.BookingID)
		if err != nil {
			var statusErr partner.StatusError
			if errors.As(err, &statusErr) && statusErr.Code >= 400 && statusErr.Code < 500 &&
				statusErr.Code != http.StatusTooManyRequests {
				return kafka.Permanent(err)
			}
			return err
		}
		if s == nil {
			return nil
		}

		event.Status = s.Status
		if event.CreatedAt.IsZero() {
			event.CreatedAt = s.CreatedAt
		}
		return p.Handle(ctx, event)
	}
}
