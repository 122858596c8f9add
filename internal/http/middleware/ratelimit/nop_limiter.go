package ratelimit

// NopLimiter admits everything; wired when RATE_LIMIT_ENABLED is off.
type NopLimiter struct{}

// Allow always admits the request.
func (NopLimiter) Allow(string) bool { return true }

// NewNopLimiter returns a pass-through Limiter.
func NewNopLimiter() Limiter { return NopLimiter{} }
