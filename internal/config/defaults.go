package config

import "time"

const defaultPort = 8080

const defaultKafkaGroupID = "service-shipment-worker"

var defaultDB = DB{
	Host: "127.0.0.1",
	Port: "5432",
	User: "swiftship",
	Pass: "swiftship",
	Name: "swiftship",
}

var defaultPartner = Partner{
	MaxAttempts: 4,
	BaseDelay:   150 * time.Millisecond,
	MaxDelay:    2 * time.Second,
}

var defaultRateLimit = RateLimit{
	Limit:      20,
	Window:     time.Second,
	TTL:        10 * time.Minute,
	MaxBuckets: 100_000,
}

// DefaultPort returns the default port.
func DefaultPort() int {
	return defaultPort
}

// DefaultDB returns the default database settings.
func DefaultDB() DB {
	return defaultDB
}

// DefaultPartner returns the default partner gateway settings.
func DefaultPartner() Partner {
	return defaultPartner
}

// DefaultRateLimit returns the default rate limiting settings.
func DefaultRateLimit() RateLimit {
	return defaultRateLimit
}
