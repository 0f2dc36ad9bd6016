package booking

import (
	"regexp"
	"testing"
)

func TestNewBookingID_Format(t *testing.T) {
	t.Parallel()

	re := regexp.MustCompile(`^SWIFT-[0-9A-F]{6}$`)
	for i := 0; i < 100; i++ {
		id := NewBookingID()
		if !re.MatchString(id) {
			t.Fatalf("booking id %q does not match SWIFT-XXXXXX", id)
		}
	}
}

func TestNewBookingID_Varies(t *testing.T) {
	t.Parallel()

	seen := make(map[string]struct{})
	for i := 0; i < 50; i++ {
		seen[NewBookingID()] = struct{}{}
	}
	if len(seen) < 2 {
		t.Fatal("expected generator to produce varying tokens")
	}
}
