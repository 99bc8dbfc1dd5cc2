// Package cache stores rendered QR artifacts (PNG bytes, text renderings)
// keyed by their input parameters.
//
// Backends:
//   - FileCache: XDG cache directory, for single-machine CLI and serve use
//   - RedisCache: shared cache for multi-instance serve deployments
//   - NullCache: caching disabled
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented cache with per-entry TTLs.
type Cache interface {
	// Get returns the cached data for key and whether it was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any backend resources.
	Close() error
}
