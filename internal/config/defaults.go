package config

import "time"

const defaultPort = 8080

var defaultBackend = Backend{
	BaseURL: "http://localhost:9090",
	Timeout: 10 * time.Second,
	Retry: Retry{
		MaxAttempts: 4,
		BaseDelay:   150 * time.Millisecond,
		MaxDelay:    time.Second,
	},
}

var defaultDB = DB{
	Host: "127.0.0.1",
	Port: "5432",
	User: "assigner",
	Pass: "assigner",
	Name: "assigner_audit",
}

var defaultKafka = Kafka{
	Topic:   "assignment-events",
	GroupID: "assigner-console",
}

var defaultRateLimit = RateLimit{
	Enabled:    true,
	Rate:       20,
	Burst:      40,
	TTL:        10 * time.Minute,
	MaxBuckets: 10000,
}

var defaultPprof = PprofConfig{
	Addr: "127.0.0.1:6060",
}

// DefaultPort returns the default port.
func DefaultPort() int {
	return defaultPort
}

// DefaultBackend returns the default backend gateway settings.
func DefaultBackend() Backend {
	return defaultBackend
}

// DefaultDB returns the default audit database settings.
func DefaultDB() DB {
	return defaultDB
}

// DefaultKafka returns the default consumer settings.
func DefaultKafka() Kafka {
	return defaultKafka
}

// DefaultRateLimit returns the default rate limit settings.
func DefaultRateLimit() RateLimit {
	return defaultRateLimit
}

// DefaultPprof returns the default pprof settings.
func DefaultPprof() PprofConfig {
	return defaultPprof
}
