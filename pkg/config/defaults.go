package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "homeward"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultKafkaEventsTopic = "homeward.lifecycle"

	DefaultRateLimitRequests = 30
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	// Visit listings are a single bounded snapshot, not a lazy page.
	DefaultVisitListLimit = 200

	// An OPEN visit younger than this is never treated as an orphan; it may
	// still be inside the insert-then-reserve window of a live request.
	DefaultOrphanSweepMinAge = 15 * time.Minute

	DefaultPaginationLimit = 100
)
