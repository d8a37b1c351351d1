package ephem

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/vedanga/jyotish/pkg/astro"
	"github.com/vedanga/jyotish/pkg/errors"
)

func fixturePositions() map[astro.Body]astro.Position {
	return map[astro.Body]astro.Position{
		astro.Sun:     {Body: astro.Sun, Longitude: 340.5},
		astro.Moon:    {Body: astro.Moon, Longitude: 100.0},
		astro.Mars:    {Body: astro.Mars, Longitude: 10.0},
		astro.Mercury: {Body: astro.Mercury, Longitude: 330.0},
		astro.Jupiter: {Body: astro.Jupiter, Longitude: 95.0, Speed: -0.04},
		astro.Venus:   {Body: astro.Venus, Longitude: 300.0},
		astro.Saturn:  {Body: astro.Saturn, Longitude: 275.0},
		astro.Rahu:    {Body: astro.Rahu, Longitude: 200.0, Speed: -0.05},
	}
}

func fixtureSource() *Static {
	return NewStatic(fixturePositions(),
		Houses{Ascendant: 95.0},
		RiseSet{
			Sunrise: time.Date(1990, 3, 24, 0, 45, 0, 0, time.UTC),
			Sunset:  time.Date(1990, 3, 24, 13, 0, 0, 0, time.UTC),
		})
}

func TestFetchAll(t *testing.T) {
	ctx := context.Background()
	out, err := FetchAll(ctx, fixtureSource(), 2447974.864583)
	if err != nil {
		t.Fatalf("FetchAll: %v", err)
	}
	if len(out) != 9 {
		t.Fatalf("got %d bodies, want 9", len(out))
	}

	// Ketu is derived, never fetched: opposite Rahu with mirrored motion.
	ketu, ok := out[astro.Ketu]
	if !ok {
		t.Fatal("ketu missing")
	}
	if math.Abs(ketu.Longitude-20.0) > 1e-9 {
		t.Errorf("ketu longitude = %v, want 20", ketu.Longitude)
	}
	if ketu.Speed != 0.05 {
		t.Errorf("ketu speed = %v, want 0.05", ketu.Speed)
	}

	for _, b := range astro.Bodies {
		if _, ok := out[b]; !ok {
			t.Errorf("missing body %v", b)
		}
	}
}

func TestFetchAllPropagatesFailure(t *testing.T) {
	positions := fixturePositions()
	delete(positions, astro.Saturn)
	src := NewStatic(positions, Houses{}, RiseSet{})

	_, err := FetchAll(context.Background(), src, 2447974.5)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, errors.ErrCodeEphemeris) {
		t.Errorf("expected EPHEMERIS_UNAVAILABLE, got %v", errors.GetCode(err))
	}
}

func TestStaticRejectsKetu(t *testing.T) {
	src := fixtureSource()
	_, err := src.Position(context.Background(), 2447974.5, astro.Ketu)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, errors.ErrCodeUnsupportedBody) {
		t.Errorf("expected UNSUPPORTED_BODY, got %v", errors.GetCode(err))
	}
}

func TestStaticSetAt(t *testing.T) {
	src := fixtureSource()
	src.SetAt(2451545.0, astro.Position{Body: astro.Sun, Longitude: 256.8})

	ctx := context.Background()
	pinned, err := src.Position(ctx, 2451545.0, astro.Sun)
	if err != nil {
		t.Fatalf("Position: %v", err)
	}
	if pinned.Longitude != 256.8 {
		t.Errorf("pinned longitude = %v, want 256.8", pinned.Longitude)
	}

	// Other Julian Days still get the default fixture.
	def, err := src.Position(ctx, 2440000.0, astro.Sun)
	if err != nil {
		t.Fatalf("Position: %v", err)
	}
	if def.Longitude != 340.5 {
		t.Errorf("default longitude = %v, want 340.5", def.Longitude)
	}
}
