package dasha

import (
	"time"

	"github.com/vedanga/jyotish/pkg/astro"
	"github.com/vedanga/jyotish/pkg/errors"
)

// Chara builds the sign-period tree of the Jaimini Chara dasha.
//
// This implements the textbook sign-counting rule rather than a fixed
// per-planet year table. For a sign S whose ruler occupies sign R:
//
//   - R == S: the period lasts 12 years.
//   - otherwise: the inclusive count of signs from S to R, minus one
//     (1..11 years). Counting runs zodiacally for movable and dual signs
//     and in reverse for fixed signs.
//
// The sequence covers all 12 signs starting from the Atmakaraka's natal
// sign, proceeding in the starting sign's counting direction. Each sign
// period subdivides into 12 equal sub-periods beginning from the sign
// itself, recursively down to depth.
//
// Aquarius and Scorpio keep their classical single rulers (Saturn, Mars);
// co-rulership variants are not modeled.
func Chara(seed astro.Karaka, positions []astro.Position, birth time.Time, depth int) ([]Period, error) {
	if err := validateDepth(depth); err != nil {
		return nil, err
	}

	signOf := make(map[astro.Body]int, len(positions))
	for _, p := range positions {
		signOf[p.Body] = astro.SignIndex(p.Longitude)
	}
	for _, b := range astro.CharaPlanets {
		if _, ok := signOf[b]; !ok {
			return nil, errors.New(errors.ErrCodeInvalidInput,
				"chara dasha requires a position for %s", b)
		}
	}

	startSign := astro.SignIndex(seed.Longitude)
	forward := SignModalityForward(startSign)

	tree := make([]Period, 0, 12)
	cursor := birth
	sign := startSign
	for i := 0; i < 12; i++ {
		years := charaYears(sign, signOf)
		p := Period{
			Ruler: astro.SignNames[sign],
			Level: 1,
			Start: cursor,
			End:   cursor.Add(yearsToDuration(years)),
			Years: years,
		}
		subdivideChara(&p, sign, forward, depth)
		tree = append(tree, p)
		cursor = p.End
		sign = step(sign, forward)
	}
	return tree, nil
}

// charaYears applies the sign-counting rule for one sign.
func charaYears(sign int, signOf map[astro.Body]int) float64 {
	rulerSign := signOf[astro.SignRulers[sign]]
	if rulerSign == sign {
		return 12
	}
	count := signCount(sign, rulerSign, SignModalityForward(sign))
	return float64(count - 1)
}

// subdivideChara splits a sign period into 12 equal parts starting from the
// period's own sign, in the given direction.
func subdivideChara(p *Period, sign int, forward bool, depth int) {
	if p.Level >= depth {
		return
	}
	years := p.Years / 12
	p.Sub = make([]Period, 0, 12)
	cursor := p.Start
	s := sign
	for i := 0; i < 12; i++ {
		end := cursor.Add(yearsToDuration(years))
		if i == 11 {
			end = p.End
		}
		child := Period{
			Ruler: astro.SignNames[s],
			Level: p.Level + 1,
			Start: cursor,
			End:   end,
			Years: years,
		}
		subdivideChara(&child, s, forward, depth)
		p.Sub = append(p.Sub, child)
		cursor = child.End
		s = step(s, forward)
	}
}

// SignModalityForward reports the counting direction for a sign: zodiacal
// for movable and dual signs, reverse for fixed signs.
func SignModalityForward(sign int) bool {
	return astro.SignModality(sign) != astro.Fixed
}

// signCount is the inclusive count of signs from one sign to another in the
// given direction; counting a sign to itself yields 1.
func signCount(from, to int, forward bool) int {
	if forward {
		return (to-from+12)%12 + 1
	}
	return (from-to+12)%12 + 1
}

func step(sign int, forward bool) int {
	if forward {
		return (sign + 1) % 12
	}
	return (sign + 11) % 12
}
