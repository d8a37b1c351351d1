// Package ephem defines the external ephemeris contract.
//
// The computation core never calculates raw planetary positions itself; it
// treats the ephemeris as a pure lookup service behind the [Source]
// interface. Implementations must return sidereal longitudes; every
// downstream sign and nakshatra boundary assumes the sidereal zodiac.
//
// Implementations:
//   - [github.com/vedanga/jyotish/pkg/integrations/ephapi]: HTTP ephemeris
//     service client (production)
//   - [Static]: map-backed fixture source (tests)
//
// Failures from a Source propagate as EPHEMERIS_UNAVAILABLE errors. They
// are fatal to the current request and never retried by the core; transport
// -level retries belong inside the Source implementation.
package ephem

import (
	"context"
	"time"

	"github.com/vedanga/jyotish/pkg/astro"
	"github.com/vedanga/jyotish/pkg/errors"
)

// Houses holds an externally computed house-cusp set.
// Cusps are sidereal longitudes; Cusps[0] is the first house cusp.
type Houses struct {
	Ascendant float64     `json:"ascendant"`
	Cusps     [12]float64 `json:"cusps"`
}

// RiseSet holds externally computed sunrise and sunset instants (UTC).
type RiseSet struct {
	Sunrise time.Time `json:"sunrise"`
	Sunset  time.Time `json:"sunset"`
}

// Source is the external ephemeris provider contract.
//
// All methods are pure lookups: the same arguments always produce the same
// result, which makes results safe to cache keyed on the arguments. Methods
// must honor ctx cancellation when backed by I/O.
type Source interface {
	// Position returns the sidereal position of a body at a Julian Day.
	// Ketu is never requested; callers derive it from Rahu.
	Position(ctx context.Context, jd float64, body astro.Body) (astro.Position, error)

	// Houses returns the ascendant and house cusps for a Julian Day and
	// geographic location.
	Houses(ctx context.Context, jd, lat, lon float64) (Houses, error)

	// RiseSet returns sunrise and sunset for the civil day containing jd
	// at the given location.
	RiseSet(ctx context.Context, jd, lat, lon float64) (RiseSet, error)
}

// Unavailable wraps a provider failure as an EPHEMERIS_UNAVAILABLE error.
func Unavailable(cause error, format string, args ...any) error {
	return errors.Wrap(errors.ErrCodeEphemeris, cause, format, args...)
}
