package dasha

import (
	"testing"
	"time"
)

func TestPeriodContains(t *testing.T) {
	p := Period{
		Start: time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2010, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	if !p.Contains(p.Start) {
		t.Error("interval is closed at the start")
	}
	if p.Contains(p.End) {
		t.Error("interval is open at the end")
	}
	if !p.Contains(time.Date(2005, 6, 1, 0, 0, 0, 0, time.UTC)) {
		t.Error("midpoint must be contained")
	}
	if p.Contains(p.Start.Add(-time.Second)) {
		t.Error("instants before the start are outside")
	}
}

func TestAt(t *testing.T) {
	moonLon := 7*13.333333333333334 + 13.333333333333334/2 // mid-Pushya
	tree, err := Vimshottari(moonLon, birth, 3)
	if err != nil {
		t.Fatalf("Vimshottari: %v", err)
	}

	chain, err := At(tree, birth)
	if err != nil {
		t.Fatalf("At: %v", err)
	}
	if len(chain) != 3 {
		t.Fatalf("chain length = %d, want 3", len(chain))
	}
	if chain[0].Ruler != "Saturn" {
		t.Errorf("mahadasha = %q, want Saturn", chain[0].Ruler)
	}
	// Each link must contain the instant and sit one level deeper.
	for i, p := range chain {
		if !p.Contains(birth) {
			t.Errorf("chain[%d] does not contain the instant", i)
		}
		if p.Level != i+1 {
			t.Errorf("chain[%d] level = %d, want %d", i, p.Level, i+1)
		}
	}

	// An instant before the tree is an error.
	if _, err := At(tree, tree[0].Start.Add(-time.Hour)); err == nil {
		t.Error("expected error for an instant outside the tree")
	}
	// So is one at or after the very end.
	if _, err := At(tree, tree[8].End); err == nil {
		t.Error("expected error for the exclusive end instant")
	}
}

func TestNextAt(t *testing.T) {
	tree, err := Vimshottari(10, birth, 2) // Ketu first
	if err != nil {
		t.Fatalf("Vimshottari: %v", err)
	}

	next, err := NextAt(tree, birth, 1)
	if err != nil {
		t.Fatalf("NextAt: %v", err)
	}
	if next.Ruler != "Venus" {
		t.Errorf("next mahadasha = %q, want Venus", next.Ruler)
	}

	// At level 2, the successor is the sibling antardasha.
	chain, err := At(tree, birth)
	if err != nil {
		t.Fatalf("At: %v", err)
	}
	next2, err := NextAt(tree, birth, 2)
	if err != nil {
		t.Fatalf("NextAt: %v", err)
	}
	if !next2.Start.Equal(chain[1].End) {
		t.Error("next antardasha must start where the current one ends")
	}

	// The final period at a level has no successor.
	last := tree[8]
	if _, err := NextAt(tree, last.End.Add(-time.Hour), 1); err == nil {
		t.Error("expected error past the last mahadasha")
	}
}

func TestRemaining(t *testing.T) {
	p := Period{
		Start: time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2000, 1, 11, 0, 0, 0, 0, time.UTC),
	}
	at := time.Date(2000, 1, 6, 0, 0, 0, 0, time.UTC)
	if got := p.Remaining(at); got != 5*24*time.Hour {
		t.Errorf("Remaining = %v, want 120h", got)
	}
	if got := p.Remaining(p.End.Add(time.Hour)); got != 0 {
		t.Errorf("Remaining past the end = %v, want 0", got)
	}
}
