// Package panchang computes the five limbs of the daily luni-solar
// calendar: tithi, nakshatra, yoga, karana, and vara, plus a weighted
// auspiciousness score. Everything is a pure function of the Sun and Moon
// longitudes for the civil day; sunrise and sunset are supplied by the
// caller's ephemeris source, never computed here.
package panchang

import (
	"time"

	"github.com/vedanga/jyotish/pkg/astro"
)

// Half-open element arcs, in degrees.
const (
	tithiArc  = 12.0 // 30 tithis across the 360° synodic separation
	karanaArc = 6.0  // half a tithi
)

// Score weights and thresholds. The score is a weighted sum of three binary
// nature flags; each element contributes its full weight when auspicious.
const (
	tithiWeight  = 30
	yogaWeight   = 40
	karanaWeight = 30

	auspiciousThreshold = 70
	neutralThreshold    = 40
)

// Day is the computed panchang for one civil day.
// It is computed fresh per day and never cached across days.
type Day struct {
	Tithi         int       `json:"tithi"` // 1..30
	TithiName     string    `json:"tithi_name"`
	Paksha        string    `json:"paksha"`
	Nakshatra     int       `json:"nakshatra"` // 0..26
	NakshatraName string    `json:"nakshatra_name"`
	Yoga          int       `json:"yoga"` // 1..27
	YogaName      string    `json:"yoga_name"`
	Karana        int       `json:"karana"` // 1..60
	KaranaName    string    `json:"karana_name"`
	Sunrise       time.Time `json:"sunrise"`
	Sunset        time.Time `json:"sunset"`
	Score         int       `json:"score"` // 0..100
	Verdict       string    `json:"verdict"`
}

// Tithi returns the lunar day index 1..30 for the given Sun and Moon
// longitudes. Each tithi spans 12° of the Moon's elongation from the Sun.
func Tithi(sunLon, moonLon float64) int {
	return int(astro.Normalize(moonLon-sunLon)/tithiArc) + 1
}

// Yoga returns the luni-solar yoga index 1..27, from the normalized sum of
// the Sun and Moon longitudes.
func Yoga(sunLon, moonLon float64) int {
	return int(astro.Normalize(sunLon+moonLon)/astro.NakshatraArc) + 1
}

// Karana returns the half-tithi index 1..60.
func Karana(sunLon, moonLon float64) int {
	return int(astro.Normalize(moonLon-sunLon)/karanaArc) + 1
}

// Compute assembles the full panchang for one day from the Sun and Moon
// longitudes. Sunrise and sunset come from the caller's ephemeris source
// and are carried through unchanged.
func Compute(sunLon, moonLon float64, sunrise, sunset time.Time) Day {
	tithi := Tithi(sunLon, moonLon)
	nak := astro.NakshatraIndex(moonLon)
	yoga := Yoga(sunLon, moonLon)
	karana := Karana(sunLon, moonLon)

	score := Score(tithi, yoga, karana)

	return Day{
		Tithi:         tithi,
		TithiName:     TithiName(tithi),
		Paksha:        Paksha(tithi),
		Nakshatra:     nak,
		NakshatraName: astro.NakshatraNames[nak],
		Yoga:          yoga,
		YogaName:      YogaName(yoga),
		Karana:        karana,
		KaranaName:    KaranaName(karana),
		Sunrise:       sunrise,
		Sunset:        sunset,
		Score:         score,
		Verdict:       Verdict(score),
	}
}

// Score computes the weighted auspiciousness sum on a 0..100 scale:
// tithi 30, yoga 40, karana 30, each contributing fully when auspicious.
func Score(tithi, yoga, karana int) int {
	score := 0
	if !inauspiciousTithis[tithi] {
		score += tithiWeight
	}
	if !inauspiciousYogas[yoga] {
		score += yogaWeight
	}
	if karanaAuspicious(karana) {
		score += karanaWeight
	}
	return score
}

// Verdict buckets a score: auspicious at 70 and above, neutral at 40 and
// above, inauspicious below.
func Verdict(score int) string {
	switch {
	case score >= auspiciousThreshold:
		return "auspicious"
	case score >= neutralThreshold:
		return "neutral"
	default:
		return "inauspicious"
	}
}
