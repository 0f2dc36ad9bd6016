package apperr

import "errors"

// ErrInvalid is returned when input fails domain validation.
var ErrInvalid = errors.New("invalid input")

// ErrNoDriver is returned when no available driver matches the required
// vehicle type. Callers wrap it with the vehicle type in the message.
var ErrNoDriver = errors.New("no driver available")

// ErrInvalidStatus is returned for a booking status transition outside the
// allowed target set.
var ErrInvalidStatus = errors.New("invalid status")

// ErrNotFound indicates that the requested resource does not exist. Scoped
// lookups return it for both a real miss and "exists but not yours".
var ErrNotFound = errors.New("not found")

// ErrConflict indicates a uniqueness or state conflict (HTTP 409).
var ErrConflict = errors.New("conflict")
