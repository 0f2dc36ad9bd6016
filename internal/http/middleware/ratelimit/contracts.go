package ratelimit

// Limiter is a rate limiter keyed by client identity.
type Limiter interface {
	Allow(key string) bool
}
