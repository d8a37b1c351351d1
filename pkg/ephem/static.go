package ephem

import (
	"context"
	"math"

	"github.com/vedanga/jyotish/pkg/astro"
	"github.com/vedanga/jyotish/pkg/errors"
)

// Static is a map-backed Source for tests and offline fixtures.
// Positions are keyed by body and looked up ignoring the Julian Day, or by
// (jd, body) when exact keys were provided via [Static.SetAt].
type Static struct {
	positions map[astro.Body]astro.Position
	at        map[staticKey]astro.Position
	houses    Houses
	riseSet   RiseSet
}

type staticKey struct {
	jd   float64
	body astro.Body
}

// NewStatic creates a fixture source serving the given positions for every
// Julian Day, with the supplied houses and rise/set values.
func NewStatic(positions map[astro.Body]astro.Position, houses Houses, riseSet RiseSet) *Static {
	return &Static{
		positions: positions,
		at:        make(map[staticKey]astro.Position),
		houses:    houses,
		riseSet:   riseSet,
	}
}

// SetAt pins a position for an exact Julian Day, overriding the default.
func (s *Static) SetAt(jd float64, pos astro.Position) {
	s.at[staticKey{jd: jd, body: pos.Body}] = pos
}

// Position implements Source.
func (s *Static) Position(ctx context.Context, jd float64, body astro.Body) (astro.Position, error) {
	if !body.Valid() || body == astro.Ketu {
		return astro.Position{}, errors.New(errors.ErrCodeUnsupportedBody, "static source: unsupported body %s", body)
	}
	if pos, ok := s.at[staticKey{jd: jd, body: body}]; ok {
		return pos, nil
	}
	if pos, ok := s.positions[body]; ok {
		return pos, nil
	}
	return astro.Position{}, errors.New(errors.ErrCodeEphemeris, "static source: no fixture for %s", body)
}

// Houses implements Source.
func (s *Static) Houses(ctx context.Context, jd, lat, lon float64) (Houses, error) {
	if math.IsNaN(s.houses.Ascendant) {
		return Houses{}, errors.New(errors.ErrCodeEphemeris, "static source: no house fixture")
	}
	return s.houses, nil
}

// RiseSet implements Source.
func (s *Static) RiseSet(ctx context.Context, jd, lat, lon float64) (RiseSet, error) {
	return s.riseSet, nil
}

// Ensure Static implements Source.
var _ Source = (*Static)(nil)
