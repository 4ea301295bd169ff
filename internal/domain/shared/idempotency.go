package shared

import (
	"context"
	"time"
)

// IdempotencyStore remembers request keys so a retried submission is not
// processed twice.
type IdempotencyStore interface {
	// MarkProcessed claims key for ttl.
	// Returns true if the key was newly claimed, false if it was already held.
	MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// IsProcessed checks if a key is currently held
	IsProcessed(ctx context.Context, key string) (bool, error)

	// Release drops a claimed key so the request may be submitted again
	Release(ctx context.Context, key string) error

	// Close closes the store and releases resources
	Close() error
}

// IdempotencyConfig holds configuration for request idempotency
type IdempotencyConfig struct {
	// TTL is how long a key stays claimed after a successful request
	TTL time.Duration

	// Enabled determines whether idempotency checking is enabled
	Enabled bool
}

// DefaultIdempotencyConfig returns the default idempotency configuration
func DefaultIdempotencyConfig() IdempotencyConfig {
	return IdempotencyConfig{
		TTL:     24 * time.Hour,
		Enabled: true,
	}
}
