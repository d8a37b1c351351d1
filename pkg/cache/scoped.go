package cache

// ScopedKeyer wraps a Keyer with a prefix so that lookups from different
// ephemeris providers (or different ayanamsa settings) never collide when
// they share one backend.
//
// Example usage:
//
//	// Per-provider keys when the endpoint is configurable
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "ephapi.example.com:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner, prepending prefix to every key it produces.
// A nil inner falls back to the default keyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// PositionKey generates a prefixed key for a position lookup.
func (k *ScopedKeyer) PositionKey(jd float64, body string) string {
	return k.prefix + k.inner.PositionKey(jd, body)
}

// HousesKey generates a prefixed key for a house-cusp lookup.
func (k *ScopedKeyer) HousesKey(jd, lat, lon float64) string {
	return k.prefix + k.inner.HousesKey(jd, lat, lon)
}

// RiseSetKey generates a prefixed key for a sunrise/sunset lookup.
func (k *ScopedKeyer) RiseSetKey(jd, lat, lon float64) string {
	return k.prefix + k.inner.RiseSetKey(jd, lat, lon)
}
