package shipments_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"swiftship/internal/domain"
	"swiftship/internal/logx"
	"swiftship/internal/service/shipments"
)

type stubBookings struct {
	getFn    func(ctx context.Context, bookingID string) (*domain.Booking, error)
	cancelFn func(ctx context.Context, bookingID string) (bool, error)
}

func (s *stubBookings) GetByBookingID(ctx context.Context, bookingID string) (*domain.Booking, error) {
	if s.getFn == nil {
		return nil, nil
	}
	return s.getFn(ctx, bookingID)
}

func (s *stubBookings) CancelActive(ctx context.Context, bookingID string) (bool, error) {
	if s.cancelFn == nil {
		return false, nil
	}
	return s.cancelFn(ctx, bookingID)
}

type stubDrivers struct {
	addRatingFn func(ctx context.Context, id string, rating domain.Rating) (bool, error)
}

func (s *stubDrivers) AddRating(ctx context.Context, id string, rating domain.Rating) (bool, error) {
	if s.addRatingFn == nil {
		return false, nil
	}
	return s.addRatingFn(ctx, id, rating)
}

func TestProcessor_Handle_Cancelled(t *testing.T) {
	t.Parallel()

	var cancelled []string
	bookings := &stubBookings{cancelFn: func(_ context.Context, bookingID string) (bool, error) {
		cancelled = append(cancelled, bookingID)
		return true, nil
	}}

	p := shipments.NewProcessor(bookings, &stubDrivers{}, logx.Nop())

	err := p.Handle(context.Background(), shipments.Event{BookingID: "SWIFT-AB12CD", Status: "cancelled"})
	require.NoError(t, err)
	require.Equal(t, []string{"SWIFT-AB12CD"}, cancelled)
}

func TestProcessor_Handle_CancelledSpellingVariant(t *testing.T) {
	t.Parallel()

	calls := 0
	bookings := &stubBookings{cancelFn: func(context.Context, string) (bool, error) {
		calls++
		return true, nil
	}}

	p := shipments.NewProcessor(bookings, &stubDrivers{}, logx.Nop())

	require.NoError(t, p.Handle(context.Background(), shipments.Event{BookingID: "SWIFT-1", Status: "  Canceled "}))
	require.Equal(t, 1, calls)
}

func TestProcessor_Handle_CancelAlreadyTerminal(t *testing.T) {
	t.Parallel()

	bookings := &stubBookings{cancelFn: func(context.Context, string) (bool, error) {
		return false, nil
	}}

	p := shipments.NewProcessor(bookings, &stubDrivers{}, logx.Nop())

	// Not an error: the event is consumed, never retried.
	require.NoError(t, p.Handle(context.Background(), shipments.Event{BookingID: "SWIFT-1", Status: "cancelled"}))
}

func TestProcessor_Handle_CancelStoreError(t *testing.T) {
	t.Parallel()

	wantErr := errors.New("db down")
	bookings := &stubBookings{cancelFn: func(context.Context, string) (bool, error) {
		return false, wantErr
	}}

	p := shipments.NewProcessor(bookings, &stubDrivers{}, logx.Nop())

	err := p.Handle(context.Background(), shipments.Event{BookingID: "SWIFT-1", Status: "cancelled"})
	require.ErrorIs(t, err, wantErr)
}

func TestProcessor_Handle_Rated(t *testing.T) {
	t.Parallel()

	created := time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC)
	bookings := &stubBookings{getFn: func(_ context.Context, bookingID string) (*domain.Booking, error) {
		require.Equal(t, "SWIFT-AB12CD", bookingID)
		return &domain.Booking{BookingID: bookingID, Driver: domain.DriverSnapshot{ID: "drv-7"}}, nil
	}}

	var gotID string
	var gotRating domain.Rating
	drivers := &stubDrivers{addRatingFn: func(_ context.Context, id string, rating domain.Rating) (bool, error) {
		gotID = id
		gotRating = rating
		return true, nil
	}}

	p := shipments.NewProcessor(bookings, drivers, logx.Nop())

	err := p.Handle(context.Background(), shipments.Event{
		BookingID: "SWIFT-AB12CD",
		Status:    "rated",
		Rating:    4,
		Comment:   "on time",
		CreatedAt: created,
	})

	require.NoError(t, err)
	require.Equal(t, "drv-7", gotID)
	require.Equal(t, 4, gotRating.Rating)
	require.Equal(t, "on time", gotRating.Comment)
	require.True(t, gotRating.Date.Equal(created))
}

func TestProcessor_Handle_RatedUnknownBooking(t *testing.T) {
	t.Parallel()

	drivers := &stubDrivers{addRatingFn: func(context.Context, string, domain.Rating) (bool, error) {
		t.Fatal("AddRating must not be called for unknown bookings")
		return false, nil
	}}

	p := shipments.NewProcessor(&stubBookings{}, drivers, logx.Nop())

	require.NoError(t, p.Handle(context.Background(), shipments.Event{BookingID: "SWIFT-1", Status: "rated", Rating: 5}))
}

func TestProcessor_Handle_RatedOutOfRange(t *testing.T) {
	t.Parallel()

	bookings := &stubBookings{getFn: func(context.Context, string) (*domain.Booking, error) {
		t.Fatal("lookup must not run for out-of-range ratings")
		return nil, nil
	}}

	p := shipments.NewProcessor(bookings, &stubDrivers{}, logx.Nop())

	for _, rating := range []int{0, -1, 6} {
		require.NoError(t, p.Handle(context.Background(), shipments.Event{BookingID: "SWIFT-1", Status: "rated", Rating: rating}))
	}
}

func TestProcessor_Handle_UnknownStatusSkipped(t *testing.T) {
	t.Parallel()

	p := shipments.NewProcessor(&stubBookings{}, &stubDrivers{}, logx.Nop())

	require.NoError(t, p.Handle(context.Background(), shipments.Event{BookingID: "SWIFT-1", Status: "repacked"}))
}
