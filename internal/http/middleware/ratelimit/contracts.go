package ratelimit

// Limiter decides whether the console request identified by key (client IP)
// may proceed this instant.
type Limiter interface {
	Allow(key string) bool
}
