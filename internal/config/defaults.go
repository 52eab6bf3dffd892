package config

import "time"

const defaultPort = 8080

var defaultBackend = Backend{
	BaseURL: "http://localhost:8081/api",
	Timeout: 10 * time.Second,
}

var defaultStatusRetry = StatusRetry{
	MaxAttempts: 3,
	BaseDelay:   150 * time.Millisecond,
	MaxDelay:    600 * time.Millisecond,
}

var defaultAvailability = Availability{
	PollInterval:   15 * time.Second,
	DefaultLat:     4.0511,
	DefaultLon:     9.7679,
	SessionIdleTTL: 10 * time.Minute,
}

var defaultTariff = Tariff{
	FreeShippingThreshold: 50000,
	FlatFee:               1500,
}

var defaultCache = Cache{
	TTL:            30 * time.Second,
	RedisNamespace: "relay",
}

var defaultRateLimit = RateLimit{
	Enabled:    true,
	Rate:       5,
	Burst:      10,
	TTL:        5 * time.Minute,
	MaxBuckets: 10000,
}

const defaultLogLevel = "info"

// DefaultPort returns the default port.
func DefaultPort() int {
	return defaultPort
}

// DefaultBackend returns the default backend gateway settings.
func DefaultBackend() Backend {
	return defaultBackend
}

// DefaultStatusRetry returns the default status update retry policy.
func DefaultStatusRetry() StatusRetry {
	return defaultStatusRetry
}

// DefaultAvailability returns the default availability settings.
func DefaultAvailability() Availability {
	return defaultAvailability
}

// DefaultTariff returns the default tariff settings.
func DefaultTariff() Tariff {
	return defaultTariff
}

// DefaultCache returns the default cache settings.
func DefaultCache() Cache {
	return defaultCache
}

// DefaultRateLimit returns the default rate limit settings.
func DefaultRateLimit() RateLimit {
	return defaultRateLimit
}
