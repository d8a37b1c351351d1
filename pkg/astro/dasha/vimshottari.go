package dasha

import (
	"time"

	"github.com/vedanga/jyotish/pkg/astro"
)

// TotalYears is the full Vimshottari cycle length.
const TotalYears = 120.0

// VimshottariYears is the canonical allotment of the 120-year cycle across
// the nine rulers. These constants are fixed by the system, not tunable.
var VimshottariYears = map[astro.Body]float64{
	astro.Sun:     6,
	astro.Moon:    10,
	astro.Mars:    7,
	astro.Rahu:    18,
	astro.Jupiter: 16,
	astro.Saturn:  19,
	astro.Mercury: 17,
	astro.Ketu:    7,
	astro.Venus:   20,
}

// Vimshottari builds the nested mahadasha tree for a chart.
//
// The Moon's natal nakshatra fixes the first mahadasha ruler; the Moon's
// progress through that nakshatra fixes how much of the ruler's allotment
// was already spent at birth. The first mahadasha is therefore anchored
// before the birth instant so that every period carries its full allotment:
// its remaining span from birth equals allotment × (1 − progress), which is
// the classical "balance at birth".
//
// Subsequent mahadashas follow the fixed nine-ruler cycle. Sub-periods at
// every level subdivide their parent proportionally: within a period of
// ruler R and duration D, the sub-period of ruler S lasts D × years(S)/120,
// listed in cycle order starting from S = R. The same rule applies
// recursively down to depth (1 = mahadasha only, 2 adds antardashas, ...).
func Vimshottari(moonLongitude float64, birth time.Time, depth int) ([]Period, error) {
	if err := validateDepth(depth); err != nil {
		return nil, err
	}

	nak := astro.NakshatraIndex(moonLongitude)
	lord := astro.NakshatraLord(nak)
	progress := astro.NakshatraProgress(moonLongitude)

	elapsed := VimshottariYears[lord] * progress
	start := birth.Add(-yearsToDuration(elapsed))

	tree := make([]Period, 0, 9)
	cursor := start
	for _, ruler := range astro.DashaOrder(lord) {
		years := VimshottariYears[ruler]
		p := Period{
			Ruler: ruler.String(),
			Level: 1,
			Start: cursor,
			End:   cursor.Add(yearsToDuration(years)),
			Years: years,
		}
		subdivideVimshottari(&p, ruler, depth)
		tree = append(tree, p)
		cursor = p.End
	}
	return tree, nil
}

// subdivideVimshottari fills p.Sub with proportional sub-periods, recursing
// until p.Level reaches depth. This is the single subdivision rule for all
// nesting levels.
func subdivideVimshottari(p *Period, ruler astro.Body, depth int) {
	if p.Level >= depth {
		return
	}
	p.Sub = make([]Period, 0, 9)
	cursor := p.Start
	for i, sub := range astro.DashaOrder(ruler) {
		years := p.Years * VimshottariYears[sub] / TotalYears
		end := cursor.Add(yearsToDuration(years))
		if i == 8 {
			// Absorb accumulated rounding so siblings tile the parent exactly.
			end = p.End
		}
		child := Period{
			Ruler: sub.String(),
			Level: p.Level + 1,
			Start: cursor,
			End:   end,
			Years: years,
		}
		subdivideVimshottari(&child, sub, depth)
		p.Sub = append(p.Sub, child)
		cursor = child.End
	}
}

// BirthBalance returns the first mahadasha ruler and the years of that
// mahadasha remaining at birth, without building a full tree.
func BirthBalance(moonLongitude float64) (astro.Body, float64) {
	nak := astro.NakshatraIndex(moonLongitude)
	lord := astro.NakshatraLord(nak)
	remaining := VimshottariYears[lord] * (1 - astro.NakshatraProgress(moonLongitude))
	return lord, remaining
}
