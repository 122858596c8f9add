package ratelimit

import "time"

// Clock abstracts time so bucket refill can be driven manually in tests.
type Clock interface {
	Now() time.Time
}

// RealClock is the wall clock used in production wiring.
type RealClock struct{}

// Now returns the current wall time.
func (RealClock) Now() time.Time { return time.Now() }
