// Package dasha implements planetary time-cycle trees.
//
// Two systems are provided: Vimshottari, a fixed 120-year cycle distributed
// across nine rulers and seeded by the Moon's natal nakshatra, and Chara, a
// sign-based system seeded by the chart's Atmakaraka. Both produce the same
// [Period] tree shape, so queries and rendering are system-agnostic.
//
// # Period trees
//
// A tree is a slice of top-level periods (mahadashas or sign periods), each
// holding its sub-periods recursively down to the requested depth. Periods
// at one level under the same parent are contiguous and non-overlapping,
// and their durations sum to the parent's duration.
//
// # Usage
//
//	tree, err := dasha.Vimshottari(moonLon, birth, 2)
//	if err != nil {
//	    return err
//	}
//	chain, err := dasha.At(tree, time.Now())
//	// chain[0] = current mahadasha, chain[1] = current antardasha
package dasha

import (
	"time"

	"github.com/vedanga/jyotish/pkg/errors"
)

// Level names by convention: 1 mahadasha, 2 antardasha, 3 pratyantardasha.
const (
	MinDepth = 1
	MaxDepth = 4
)

// YearDays is the Julian year length used to convert dasha years into wall
// time. The 120-year Vimshottari cycle is conventionally anchored to the
// Julian year, not the tropical one.
const YearDays = 365.25

// Period is one node of a dasha tree.
type Period struct {
	Ruler string    `json:"ruler"` // planet name (Vimshottari) or sign name (Chara)
	Level int       `json:"level"` // 1 = mahadasha
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Years float64   `json:"years"`
	Sub   []Period  `json:"sub,omitempty"`
}

// Contains reports whether t falls within the period (half-open [Start, End)).
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && t.Before(p.End)
}

// Remaining returns how much of the period is left at t.
// Zero if t is past the period's end.
func (p Period) Remaining(t time.Time) time.Duration {
	if !t.Before(p.End) {
		return 0
	}
	return p.End.Sub(t)
}

// At walks the tree and returns the chain of active periods containing t,
// one per level down to the tree's built depth. Returns NOT_FOUND if t is
// outside the tree's overall span.
func At(tree []Period, t time.Time) ([]Period, error) {
	var chain []Period
	level := tree
	for len(level) > 0 {
		found := false
		for _, p := range level {
			if p.Contains(t) {
				chain = append(chain, p)
				level = p.Sub
				found = true
				break
			}
		}
		if !found {
			break
		}
	}
	if len(chain) == 0 {
		return nil, errors.New(errors.ErrCodeNotFound, "no dasha period contains %s", t.Format(time.RFC3339))
	}
	return chain, nil
}

// NextAt returns the period that follows the one active at t on the given
// level (1-based). Returns NOT_FOUND when t's period is the last of its
// parent and nothing follows at that level.
func NextAt(tree []Period, t time.Time, level int) (Period, error) {
	siblings, err := siblingsAt(tree, t, level)
	if err != nil {
		return Period{}, err
	}
	for i, p := range siblings {
		if p.Contains(t) {
			if i+1 < len(siblings) {
				return siblings[i+1], nil
			}
			return Period{}, errors.New(errors.ErrCodeNotFound, "no period follows at level %d", level)
		}
	}
	return Period{}, errors.New(errors.ErrCodeNotFound, "no dasha period contains %s at level %d", t.Format(time.RFC3339), level)
}

// siblingsAt descends to the period list containing t's active period at level.
func siblingsAt(tree []Period, t time.Time, level int) ([]Period, error) {
	if level < MinDepth {
		return nil, errors.New(errors.ErrCodeInvalidInput, "level must be >= %d", MinDepth)
	}
	siblings := tree
	for l := 1; l < level; l++ {
		var next []Period
		for _, p := range siblings {
			if p.Contains(t) {
				next = p.Sub
				break
			}
		}
		if next == nil {
			return nil, errors.New(errors.ErrCodeNotFound, "tree not built to level %d", level)
		}
		siblings = next
	}
	return siblings, nil
}

// yearsToDuration converts fractional dasha years into wall time.
func yearsToDuration(years float64) time.Duration {
	return time.Duration(years * YearDays * 24 * float64(time.Hour))
}

// validateDepth rejects depths outside [MinDepth, MaxDepth].
func validateDepth(depth int) error {
	if depth < MinDepth || depth > MaxDepth {
		return errors.New(errors.ErrCodeInvalidInput, "dasha depth must be in [%d, %d], got %d", MinDepth, MaxDepth, depth)
	}
	return nil
}
