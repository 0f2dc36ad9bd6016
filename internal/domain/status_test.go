package domain

import "testing"

func TestBookingStatusValid(t *testing.T) {
	t.Parallel()

	for _, s := range []BookingStatus{StatusPending, StatusInTransit, StatusDelivered, StatusCancelled} {
		if !s.Valid() {
			t.Errorf("expected %q to be valid", s)
		}
	}
	if BookingStatus("Shipped").Valid() {
		t.Error("unknown status reported valid")
	}
}

func TestBookingStatusDriverSettable(t *testing.T) {
	t.Parallel()

	if !StatusInTransit.DriverSettable() || !StatusDelivered.DriverSettable() {
		t.Error("In Transit and Delivered must be driver-settable")
	}
	if StatusPending.DriverSettable() {
		t.Error("Pending must not be driver-settable")
	}
	if StatusCancelled.DriverSettable() {
		t.Error("Cancelled must not be driver-settable")
	}
}

func TestBookingStatusTerminal(t *testing.T) {
	t.Parallel()

	if !StatusDelivered.Terminal() || !StatusCancelled.Terminal() {
		t.Error("Delivered and Cancelled are terminal")
	}
	if StatusPending.Terminal() || StatusInTransit.Terminal() {
		t.Error("active statuses are not terminal")
	}
}

func TestDriverAverageRating(t *testing.T) {
	t.Parallel()

	d := &Driver{}
	if got := d.AverageRating(); got != 5 {
		t.Fatalf("no ratings: got %v, want 5", got)
	}

	d.Ratings = []Rating{{Rating: 4}, {Rating: 5}, {Rating: 3}}
	if got := d.AverageRating(); got != 4.0 {
		t.Fatalf("got %v, want 4.0", got)
	}

	d.Ratings = []Rating{{Rating: 4}, {Rating: 5}, {Rating: 5}}
	if got := d.AverageRating(); got != 4.7 {
		t.Fatalf("got %v, want 4.7", got)
	}
}
