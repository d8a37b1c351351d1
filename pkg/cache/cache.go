// Package cache provides pluggable byte caches for ephemeris lookups.
//
// Every ephemeris result is a pure function of its arguments, so caching is
// always sound: a (julianDay, body) pair maps to exactly one position. The
// [Cache] interface abstracts the backend:
//   - [FileCache]: on-disk entries for CLI usage
//   - [RedisCache]: shared cache for multi-instance server deployments
//   - [MongoCache]: TTL-indexed documents where Mongo is already present
//   - [NullCache]: caching disabled
//
// Keys are built by a [Keyer] so that CLI and server agree on key shapes.
// Use [NewScopedKeyer] to namespace keys when several ephemeris providers
// share one backend.
package cache

import (
	"context"
	"time"
)

// Cache is the backend contract. Implementations must be safe for
// concurrent use.
type Cache interface {
	// Get retrieves a value. The second return is false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of 0 means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value; deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Keyer builds cache keys for the ephemeris lookup kinds.
type Keyer interface {
	// PositionKey keys a (julianDay, body) position lookup.
	PositionKey(jd float64, body string) string

	// HousesKey keys a house-cusp lookup.
	HousesKey(jd, lat, lon float64) string

	// RiseSetKey keys a sunrise/sunset lookup.
	RiseSetKey(jd, lat, lon float64) string
}

// DefaultKeyer hashes the lookup arguments into stable keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer { return &DefaultKeyer{} }

// PositionKey generates a key for a position lookup.
func (k *DefaultKeyer) PositionKey(jd float64, body string) string {
	return hashKey("pos", jd, body)
}

// HousesKey generates a key for a house-cusp lookup.
func (k *DefaultKeyer) HousesKey(jd, lat, lon float64) string {
	return hashKey("houses", jd, lat, lon)
}

// RiseSetKey generates a key for a sunrise/sunset lookup.
func (k *DefaultKeyer) RiseSetKey(jd, lat, lon float64) string {
	return hashKey("riseset", jd, lat, lon)
}
