package astro

import "math"

// Arc widths of the zodiac divisions, in degrees.
const (
	SignArc      = 30.0         // 12 signs
	NakshatraArc = 360.0 / 27.0 // 27 lunar mansions, 13°20' each
	PadaArc      = NakshatraArc / 4
)

// Normalize maps any longitude onto [0, 360).
//
// For negative inputs within one ulp of zero the +360 adjustment rounds to
// exactly 360, so the result is clamped back to 0 to keep the half-open
// contract.
func Normalize(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	if deg >= 360 {
		deg = 0
	}
	return deg
}

// SignIndex returns the zodiac sign index (0=Aries .. 11=Pisces) for a longitude.
func SignIndex(longitude float64) int {
	return int(Normalize(longitude) / SignArc)
}

// DegreeInSign returns the degree within the sign, in [0, 30).
func DegreeInSign(longitude float64) float64 {
	return math.Mod(Normalize(longitude), SignArc)
}

// NakshatraIndex returns the lunar mansion index (0=Ashwini .. 26=Revati).
//
// The longitude is scaled before dividing: mansion boundaries fall at exact
// multiples of 360/27, and dividing by the rounded NakshatraArc constant
// would misplace a longitude sitting exactly on one.
func NakshatraIndex(longitude float64) int {
	return int(Normalize(longitude) * 27 / 360)
}

// Pada returns the quarter within the nakshatra, 1..4. Scaled the same way
// as NakshatraIndex so quarter boundaries resolve exactly.
func Pada(longitude float64) int {
	return int(Normalize(longitude)*108/360)%4 + 1
}

// NakshatraProgress returns how far the longitude has advanced through its
// nakshatra, as a fraction in [0, 1). The Vimshottari balance at birth is
// 1 minus this value.
func NakshatraProgress(longitude float64) float64 {
	scaled := Normalize(longitude) * 27 / 360
	return scaled - math.Floor(scaled)
}

// House returns the whole-sign house (1..12) of a longitude relative to the
// ascendant. House 1 starts exactly at the ascendant degree.
//
// The subtraction is re-normalized before division so that bodies just below
// the 0° Aries boundary land in the correct house when the ascendant sits
// just above it, and vice versa.
func House(longitude, ascendant float64) int {
	arc := Normalize(Normalize(longitude) - Normalize(ascendant))
	return int(arc/SignArc) + 1
}

// Placement is the zodiacal decomposition of a single longitude.
// It has no lifecycle of its own: every field is a pure function of the
// longitude (and the ascendant, for the house).
type Placement struct {
	Body          Body    `json:"body"`
	Longitude     float64 `json:"longitude"`
	Sign          int     `json:"sign"`      // 0..11
	SignName      string  `json:"sign_name"` //
	Degree        float64 `json:"degree"`    // within sign, [0, 30)
	Nakshatra     int     `json:"nakshatra"` // 0..26
	NakshatraName string  `json:"nakshatra_name"`
	Pada          int     `json:"pada"`  // 1..4
	House         int     `json:"house"` // 1..12
	Retrograde    bool    `json:"retrograde"`
}

// NewPlacement decomposes a position against an ascendant longitude.
func NewPlacement(pos Position, ascendant float64) Placement {
	l := Normalize(pos.Longitude)
	sign := SignIndex(l)
	nak := NakshatraIndex(l)
	return Placement{
		Body:          pos.Body,
		Longitude:     l,
		Sign:          sign,
		SignName:      SignNames[sign],
		Degree:        DegreeInSign(l),
		Nakshatra:     nak,
		NakshatraName: NakshatraNames[nak],
		Pada:          Pada(l),
		House:         House(l, ascendant),
		Retrograde:    pos.Retrograde(),
	}
}
