package ratelimit

import "time"

// Limiter decides whether a client key may proceed. When it may not, wait
// is how long until the next request would be admitted.
type Limiter interface {
	Allow(key string) (ok bool, wait time.Duration)
}

// Clock is the time source of the token buckets.
type Clock interface {
	Now() time.Time
}

// RealClock reads wall time.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// NopLimiter admits everything.
type NopLimiter struct{}

// Allow always admits.
func (NopLimiter) Allow(string) (bool, time.Duration) { return true, 0 }
