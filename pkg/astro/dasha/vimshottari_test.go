package dasha

import (
	"math"
	"testing"
	"time"

	"github.com/vedanga/jyotish/pkg/astro"
)

var birth = time.Date(1990, 3, 24, 8, 45, 0, 0, time.UTC)

func TestVimshottariAllotments(t *testing.T) {
	total := 0.0
	for _, years := range VimshottariYears {
		total += years
	}
	if total != TotalYears {
		t.Fatalf("allotments sum to %v, want %v", total, TotalYears)
	}
	if len(VimshottariYears) != 9 {
		t.Fatalf("allotments cover %d rulers, want 9", len(VimshottariYears))
	}
}

func TestVimshottariTree(t *testing.T) {
	// Moon mid-Pushya: lord Saturn, half the 19-year allotment spent.
	moonLon := 7*astro.NakshatraArc + astro.NakshatraArc/2

	tree, err := Vimshottari(moonLon, birth, 1)
	if err != nil {
		t.Fatalf("Vimshottari: %v", err)
	}
	if len(tree) != 9 {
		t.Fatalf("len = %d, want 9", len(tree))
	}

	first := tree[0]
	if first.Ruler != "Saturn" {
		t.Errorf("first ruler = %q, want Saturn", first.Ruler)
	}
	if first.Years != 19 {
		t.Errorf("first years = %v, want full 19", first.Years)
	}

	// The first mahadasha starts half its span before birth, so 9.5 years
	// remain at the birth instant.
	remaining := first.End.Sub(birth)
	wantRemaining := yearsToDuration(9.5)
	if diff := (remaining - wantRemaining).Abs(); diff > time.Minute {
		t.Errorf("remaining = %v, want %v (diff %v)", remaining, wantRemaining, diff)
	}
	if !first.Start.Before(birth) {
		t.Error("first mahadasha must start before birth")
	}
	if !first.Contains(birth) {
		t.Error("first mahadasha must contain the birth instant")
	}

	// Rulers follow the fixed cycle from Saturn.
	wantOrder := []string{"Saturn", "Mercury", "Ketu", "Venus", "Sun", "Moon", "Mars", "Rahu", "Jupiter"}
	for i, p := range tree {
		if p.Ruler != wantOrder[i] {
			t.Errorf("ruler[%d] = %q, want %q", i, p.Ruler, wantOrder[i])
		}
		if p.Level != 1 {
			t.Errorf("level[%d] = %d, want 1", i, p.Level)
		}
	}

	// Periods tile the 120-year cycle with no gaps.
	years := 0.0
	for i, p := range tree {
		years += p.Years
		if i > 0 && !p.Start.Equal(tree[i-1].End) {
			t.Errorf("gap between period %d and %d", i-1, i)
		}
	}
	if years != TotalYears {
		t.Errorf("tree spans %v years, want %v", years, TotalYears)
	}
}

func TestVimshottariSubdivision(t *testing.T) {
	tree, err := Vimshottari(10, birth, 2) // Moon in Ashwini: Ketu first
	if err != nil {
		t.Fatalf("Vimshottari: %v", err)
	}
	if tree[0].Ruler != "Ketu" {
		t.Errorf("first ruler = %q, want Ketu", tree[0].Ruler)
	}

	for _, maha := range tree {
		if len(maha.Sub) != 9 {
			t.Fatalf("%s has %d antardashas, want 9", maha.Ruler, len(maha.Sub))
		}
		// The first antardasha belongs to the mahadasha ruler.
		if maha.Sub[0].Ruler != maha.Ruler {
			t.Errorf("%s first antardasha = %q", maha.Ruler, maha.Sub[0].Ruler)
		}
		// Antardashas tile the mahadasha exactly.
		if !maha.Sub[0].Start.Equal(maha.Start) || !maha.Sub[8].End.Equal(maha.End) {
			t.Errorf("%s antardashas do not tile the mahadasha", maha.Ruler)
		}
		sum := 0.0
		for i, sub := range maha.Sub {
			sum += sub.Years
			if sub.Level != 2 {
				t.Errorf("antardasha level = %d, want 2", sub.Level)
			}
			if i > 0 && !sub.Start.Equal(maha.Sub[i-1].End) {
				t.Errorf("gap inside %s mahadasha at %d", maha.Ruler, i)
			}
		}
		if math.Abs(sum-maha.Years) > 1e-9 {
			t.Errorf("%s antardasha years sum %v, want %v", maha.Ruler, sum, maha.Years)
		}
	}

	// Proportionality: within the Ketu mahadasha (7y), the Venus
	// antardasha lasts 7 * 20/120 years.
	var venus Period
	for _, sub := range tree[0].Sub {
		if sub.Ruler == "Venus" {
			venus = sub
		}
	}
	if want := 7.0 * 20 / 120; math.Abs(venus.Years-want) > 1e-9 {
		t.Errorf("Ketu/Venus years = %v, want %v", venus.Years, want)
	}
}

func TestVimshottariDepth(t *testing.T) {
	for _, depth := range []int{0, 5, -1} {
		if _, err := Vimshottari(10, birth, depth); err == nil {
			t.Errorf("depth %d should be rejected", depth)
		}
	}

	tree, err := Vimshottari(10, birth, 4)
	if err != nil {
		t.Fatalf("Vimshottari: %v", err)
	}
	p := tree[0]
	for level := 1; level < 4; level++ {
		if len(p.Sub) != 9 {
			t.Fatalf("level %d has %d children", level, len(p.Sub))
		}
		p = p.Sub[0]
	}
	if p.Sub != nil {
		t.Error("deepest level must not subdivide")
	}
}

func TestBirthBalance(t *testing.T) {
	// Mid-Pushya: Saturn lord, half of 19 years remaining.
	lord, remaining := BirthBalance(7*astro.NakshatraArc + astro.NakshatraArc/2)
	if lord != astro.Saturn {
		t.Errorf("lord = %v, want Saturn", lord)
	}
	if math.Abs(remaining-9.5) > 1e-9 {
		t.Errorf("remaining = %v, want 9.5", remaining)
	}

	// The start of a nakshatra leaves the full allotment.
	lord, remaining = BirthBalance(0)
	if lord != astro.Ketu || remaining != 7 {
		t.Errorf("got %v/%v, want Ketu/7", lord, remaining)
	}
}
