package ephem

import (
	"context"
	"encoding/json"
	"time"

	"github.com/vedanga/jyotish/pkg/astro"
	"github.com/vedanga/jyotish/pkg/cache"
	"github.com/vedanga/jyotish/pkg/observability"
)

// CachedSource decorates a Source with a deterministic lookup cache.
// Ephemeris results are pure functions of their arguments, so entries never
// go stale; the TTL only bounds cache growth.
//
// Cache failures are deliberately non-fatal: a broken cache degrades to
// direct lookups rather than failing the request.
type CachedSource struct {
	src   Source
	cache cache.Cache
	keyer cache.Keyer
	ttl   time.Duration
}

// NewCachedSource wraps src with the given cache backend.
// A nil keyer falls back to the default keyer.
func NewCachedSource(src Source, c cache.Cache, keyer cache.Keyer, ttl time.Duration) *CachedSource {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	return &CachedSource{src: src, cache: c, keyer: keyer, ttl: ttl}
}

// Position implements Source with caching keyed on (julianDay, body).
func (c *CachedSource) Position(ctx context.Context, jd float64, body astro.Body) (astro.Position, error) {
	var pos astro.Position
	key := c.keyer.PositionKey(jd, body.String())
	err := c.cached(ctx, key, "position", &pos, func() (any, error) {
		return c.src.Position(ctx, jd, body)
	})
	return pos, err
}

// Houses implements Source with caching keyed on (julianDay, lat, lon).
func (c *CachedSource) Houses(ctx context.Context, jd, lat, lon float64) (Houses, error) {
	var h Houses
	key := c.keyer.HousesKey(jd, lat, lon)
	err := c.cached(ctx, key, "houses", &h, func() (any, error) {
		return c.src.Houses(ctx, jd, lat, lon)
	})
	return h, err
}

// RiseSet implements Source with caching keyed on (julianDay, lat, lon).
func (c *CachedSource) RiseSet(ctx context.Context, jd, lat, lon float64) (RiseSet, error) {
	var rs RiseSet
	key := c.keyer.RiseSetKey(jd, lat, lon)
	err := c.cached(ctx, key, "riseset", &rs, func() (any, error) {
		return c.src.RiseSet(ctx, jd, lat, lon)
	})
	return rs, err
}

// cached unmarshals a hit into v, or fetches, stores, and marshals into v.
func (c *CachedSource) cached(ctx context.Context, key string, keyType string, v any, fetch func() (any, error)) error {
	if data, ok, err := c.cache.Get(ctx, key); err == nil && ok {
		if json.Unmarshal(data, v) == nil {
			observability.Cache().OnCacheHit(ctx, keyType)
			return nil
		}
		// Corrupt entry - fall through to a fresh lookup.
	}
	observability.Cache().OnCacheMiss(ctx, keyType)

	result, err := fetch()
	if err != nil {
		return err
	}
	data, err := json.Marshal(result)
	if err != nil {
		return err
	}
	if c.cache.Set(ctx, key, data, c.ttl) == nil {
		observability.Cache().OnCacheSet(ctx, keyType, len(data))
	}
	return json.Unmarshal(data, v)
}

// Ensure CachedSource implements Source.
var _ Source = (*CachedSource)(nil)
