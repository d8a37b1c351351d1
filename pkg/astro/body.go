// Package astro implements the sidereal computation core of Jyotish.
//
// The package is pure math: civil moments to Julian Days, sidereal
// longitudes to zodiac placements, and placement sets to karaka rankings.
// It holds no mutable state and performs no I/O; ephemeris lookups live in
// [github.com/vedanga/jyotish/pkg/ephem].
//
// All longitudes are sidereal degrees in [0, 360). Callers are responsible
// for requesting sidereal (not tropical) positions from their ephemeris
// source; every sign and nakshatra boundary here assumes it.
package astro

import (
	"fmt"
	"strings"

	"github.com/vedanga/jyotish/pkg/errors"
)

// Body identifies a celestial body used in Vedic computation.
type Body int

// The nine grahas. Ketu is always derived from Rahu, never fetched.
const (
	Sun Body = iota
	Moon
	Mars
	Mercury
	Jupiter
	Venus
	Saturn
	Rahu
	Ketu
)

// Bodies lists all nine grahas in canonical order.
var Bodies = []Body{Sun, Moon, Mars, Mercury, Jupiter, Venus, Saturn, Rahu, Ketu}

// CharaPlanets are the seven classical planets used for karaka ranking
// when the lunar nodes are excluded.
var CharaPlanets = []Body{Sun, Moon, Mars, Mercury, Jupiter, Venus, Saturn}

var bodyNames = map[Body]string{
	Sun:     "Sun",
	Moon:    "Moon",
	Mars:    "Mars",
	Mercury: "Mercury",
	Jupiter: "Jupiter",
	Venus:   "Venus",
	Saturn:  "Saturn",
	Rahu:    "Rahu",
	Ketu:    "Ketu",
}

// String returns the English name of the body.
func (b Body) String() string {
	if name, ok := bodyNames[b]; ok {
		return name
	}
	return fmt.Sprintf("Body(%d)", int(b))
}

// Valid reports whether b is one of the nine known bodies.
func (b Body) Valid() bool {
	_, ok := bodyNames[b]
	return ok
}

// IsNode reports whether b is a lunar node (Rahu or Ketu).
func (b Body) IsNode() bool { return b == Rahu || b == Ketu }

// ParseBody converts a case-insensitive body name to a Body.
// Returns an UNSUPPORTED_BODY error for unknown names.
func ParseBody(name string) (Body, error) {
	for _, b := range Bodies {
		if strings.EqualFold(bodyNames[b], name) {
			return b, nil
		}
	}
	return 0, errors.New(errors.ErrCodeUnsupportedBody, "unknown body: %q", name)
}

// Position is a sidereal ephemeris result for one body.
// Longitude is in [0, 360); negative Speed means retrograde motion.
type Position struct {
	Body      Body    `json:"body"`
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
	Speed     float64 `json:"speed"`
}

// Retrograde reports whether the body is in retrograde motion.
func (p Position) Retrograde() bool { return p.Speed < 0 }

// KetuFrom derives Ketu's position from Rahu's. The nodes are always
// diametrically opposite, and Ketu mirrors Rahu's motion.
func KetuFrom(rahu Position) Position {
	return Position{
		Body:      Ketu,
		Longitude: Normalize(rahu.Longitude + 180),
		Latitude:  -rahu.Latitude,
		Speed:     -rahu.Speed,
	}
}
