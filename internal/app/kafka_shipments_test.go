package app

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"swiftship/internal/gateway/partner"
	"swiftship/internal/service/shipments"
	"swiftship/internal/transport/kafka"
)

type ctxKey struct{}

type spyHandler struct {
	called int
	ctx    context.Context
	event  shipments.Event
	err    error
}

func (s *spyHandler) Handle(ctx context.Context, e shipments.Event) error {
	s.called++
	s.ctx = ctx
	s.event = e
	return s.err
}

type stubPartnerGateway struct {
	getFn       func(ctx context.Context, id string) (*partner.Shipment, error)
	capturedCtx context.Context
	capturedID  string
}

func (g *stubPartnerGateway) GetByID(ctx context.Context, id string) (*partner.Shipment, error) {
	g.capturedCtx = ctx
	g.capturedID = id
	if g.getFn == nil {
		return nil, nil
	}
	return g.getFn(ctx, id)
}

func requireTimeout2s(t *testing.T, ctx context.Context) {
	t.Helper()
	deadline, ok := ctx.Deadline()
	require.True(t, ok, "expected context with deadline")

	remaining := time.Until(deadline)
	require.Greater(t, remaining, 1*time.Second)
	require.Less(t, remaining, 3*time.Second)
}

func requireCanceled(t *testing.T, ctx context.Context) {
	t.Helper()
	select {
	case <-ctx.Done():
	default:
		t.Fatalf("expected gateway context to be canceled after handler returns")
	}
}

func TestMakeShipmentsKafka_NoGateway_DelegatesToHandler(t *testing.T) {
	t.Parallel()

	hSpy := &spyHandler{}
	h := makeShipmentsKafka(hSpy, nil)

	ctx := context.WithValue(context.Background(), ctxKey{}, "v")
	in := shipments.Event{BookingID: "SWIFT-1001", Status: "cancelled"}

	err := h(ctx, in)
	require.NoError(t, err)

	require.Equal(t, 1, hSpy.called)
	require.Equal(t, "v", hSpy.ctx.Value(ctxKey{}))
	require.Equal(t, in, hSpy.event)
}

func TestMakeShipmentsKafka_GatewayError_ReturnsError_AndDoesNotCallHandler(t *testing.T) {
	t.Parallel()

	hSpy := &spyHandler{}

	sentinel := errors.New("gw boom")
	gw := &stubPartnerGateway{
		getFn: func(ctx context.Context, id string) (*partner.Shipment, error) {
			return nil, sentinel
		},
	}

	h := makeShipmentsKafka(hSpy, gw)

	ctx := context.WithValue(context.Background(), ctxKey{}, "v")
	err := h(ctx, shipments.Event{BookingID: "SWIFT-1002", Status: "cancelled"})
	require.ErrorIs(t, err, sentinel)

	require.Equal(t, 0, hSpy.called)

	require.Equal(t, "SWIFT-1002", gw.capturedID)
	requireTimeout2s(t, gw.capturedCtx)
	requireCanceled(t, gw.capturedCtx)
}

func TestMakeShipmentsKafka_ClientStatusError_IsPermanent(t *testing.T) {
	t.Parallel()

	hSpy := &spyHandler{}
	gw := &stubPartnerGateway{
		getFn: func(ctx context.Context, id string) (*partner.Shipment, error) {
			return nil, fmt.Errorf("partner gateway: GetByID: %w", partner.StatusError{Code: 422})
		},
	}

	h := makeShipmentsKafka(hSpy, gw)

	err := h(context.Background(), shipments.Event{BookingID: "SWIFT-1008", Status: "cancelled"})
	require.Error(t, err)

	var perm kafka.PermanentError
	require.ErrorAs(t, err, &perm)
	require.Equal(t, 0, hSpy.called)
}

func TestMakeShipmentsKafka_TooManyRequests_IsTransient(t *testing.T) {
	t.Parallel()

	hSpy := &spyHandler{}
	gw := &stubPartnerGateway{
		getFn: func(ctx context.Context, id string) (*partner.Shipment, error) {
			return nil, partner.StatusError{Code: 429}
		},
	}

	h := makeShipmentsKafka(hSpy, gw)

	err := h(context.Background(), shipments.Event{BookingID: "SWIFT-1009", Status: "cancelled"})
	require.Error(t, err)

	var perm kafka.PermanentError
	require.False(t, errors.As(err, &perm), "429 must stay retryable")
}

func TestMakeShipmentsKafka_ShipmentNotFound_ReturnsNil_AndDoesNotCallHandler(t *testing.T) {
	t.Parallel()

	hSpy := &spyHandler{}
	gw := &stubPartnerGateway{
		getFn: func(ctx context.Context, id string) (*partner.Shipment, error) {
			return nil, nil
		},
	}

	h := makeShipmentsKafka(hSpy, gw)

	err := h(context.Background(), shipments.Event{BookingID: "SWIFT-1003", Status: "rated"})
	require.NoError(t, err)

	require.Equal(t, 0, hSpy.called)
	require.Equal(t, "SWIFT-1003", gw.capturedID)
	requireTimeout2s(t, gw.capturedCtx)
	requireCanceled(t, gw.capturedCtx)
}

func TestMakeShipmentsKafka_ShipmentFound_OverridesStatus_AndCallsHandler(t *testing.T) {
	t.Parallel()

	hSpy := &spyHandler{}

	ts := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	gw := &stubPartnerGateway{
		getFn: func(ctx context.Context, id string) (*partner.Shipment, error) {
			return &partner.Shipment{ID: id, Status: "cancelled", CreatedAt: ts}, nil
		},
	}

	h := makeShipmentsKafka(hSpy, gw)

	in := shipments.Event{BookingID: "SWIFT-1004", Status: "rated"}

	err := h(context.Background(), in)
	require.NoError(t, err)

	require.Equal(t, 1, hSpy.called)
	require.Equal(t, "SWIFT-1004", hSpy.event.BookingID)
	require.Equal(t, "cancelled", hSpy.event.Status)
	require.Equal(t, ts, hSpy.event.CreatedAt)
}

func TestMakeShipmentsKafka_KeepsEventTimestampWhenSet(t *testing.T) {
	t.Parallel()

	hSpy := &spyHandler{}

	gwTS := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	evTS := time.Date(2025, 6, 7, 8, 9, 10, 0, time.UTC)
	gw := &stubPartnerGateway{
		getFn: func(ctx context.Context, id string) (*partner.Shipment, error) {
			return &partner.Shipment{ID: id, Status: "rated", CreatedAt: gwTS}, nil
		},
	}

	h := makeShipmentsKafka(hSpy, gw)

	err := h(context.Background(), shipments.Event{
		BookingID: "SWIFT-1005",
		Status:    "rated",
		Rating:    4,
		CreatedAt: evTS,
	})
	require.NoError(t, err)

	require.Equal(t, 1, hSpy.called)
	require.Equal(t, evTS, hSpy.event.CreatedAt)
	require.Equal(t, 4, hSpy.event.Rating)
}
