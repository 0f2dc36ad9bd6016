package booking

import (
	"strings"

	"github.com/google/uuid"
)

const bookingIDPrefix = "SWIFT"

// NewBookingID returns a short human-readable booking token:
// "SWIFT-" plus six uppercase hex characters of a random UUID. Collisions
// are handled by the insert-retry in Create, not by the generator.
func NewBookingID() string {
	token := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return bookingIDPrefix + "-" + token[:6]
}
