package ephapi

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/vedanga/jyotish/pkg/astro"
	"github.com/vedanga/jyotish/pkg/cache"
	"github.com/vedanga/jyotish/pkg/errors"
)

func TestPositionRequestShape(t *testing.T) {
	var gotPath, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		fmt.Fprint(w, `{"longitude": 370.5, "latitude": 1.2, "speed": -0.05}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, cache.NewNullCache(), time.Hour)
	pos, err := c.Position(context.Background(), 2451545.0, astro.Rahu)
	if err != nil {
		t.Fatalf("Position: %v", err)
	}

	if gotPath != "/v1/position" {
		t.Errorf("path = %q", gotPath)
	}
	for _, part := range []string{"jd=2451545.00000000", "body=rahu", "zodiac=sidereal"} {
		if !containsParam(gotQuery, part) {
			t.Errorf("query %q missing %q", gotQuery, part)
		}
	}

	// Longitudes are normalized into [0, 360).
	if math.Abs(pos.Longitude-10.5) > 1e-9 {
		t.Errorf("longitude = %v, want 10.5", pos.Longitude)
	}
	if pos.Body != astro.Rahu || pos.Speed != -0.05 {
		t.Errorf("unexpected position: %+v", pos)
	}
}

func TestPositionRejectsKetu(t *testing.T) {
	c := NewClient("http://unused.invalid", cache.NewNullCache(), time.Hour)
	_, err := c.Position(context.Background(), 2451545.0, astro.Ketu)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, errors.ErrCodeUnsupportedBody) {
		t.Errorf("expected UNSUPPORTED_BODY, got %v", errors.GetCode(err))
	}
}

func TestPositionCaching(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		fmt.Fprint(w, `{"longitude": 100.0}`)
	}))
	defer srv.Close()

	backend, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	c := NewClient(srv.URL, backend, time.Hour)

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if _, err := c.Position(ctx, 2451545.0, astro.Moon); err != nil {
			t.Fatalf("Position: %v", err)
		}
	}
	if hits.Load() != 1 {
		t.Errorf("server hit %d times, want 1", hits.Load())
	}

	// A different argument is a different cache entry.
	if _, err := c.Position(ctx, 2451546.0, astro.Moon); err != nil {
		t.Fatalf("Position: %v", err)
	}
	if hits.Load() != 2 {
		t.Errorf("server hit %d times, want 2", hits.Load())
	}
}

func TestHouses(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/houses" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if !containsParam(r.URL.RawQuery, "system=placidus") {
			t.Errorf("query %q missing house system", r.URL.RawQuery)
		}
		fmt.Fprint(w, `{"ascendant": 95.0, "cusps": [95,125,155,185,215,245,275,305,335,5,35,65]}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, cache.NewNullCache(), time.Hour)
	h, err := c.Houses(context.Background(), 2451545.0, 19.07, 72.88)
	if err != nil {
		t.Fatalf("Houses: %v", err)
	}
	if h.Ascendant != 95.0 || h.Cusps[1] != 125 {
		t.Errorf("unexpected houses: %+v", h)
	}
}

func TestRiseSet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"sunrise": "1990-03-24T00:45:00Z", "sunset": "1990-03-24T13:00:00Z"}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, cache.NewNullCache(), time.Hour)
	rs, err := c.RiseSet(context.Background(), 2447974.5, 19.07, 72.88)
	if err != nil {
		t.Fatalf("RiseSet: %v", err)
	}
	want := time.Date(1990, 3, 24, 0, 45, 0, 0, time.UTC)
	if !rs.Sunrise.Equal(want) {
		t.Errorf("sunrise = %v, want %v", rs.Sunrise, want)
	}
}

func TestErrorsMapToEphemerisUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, cache.NewNullCache(), time.Hour)
	_, err := c.Position(context.Background(), 2451545.0, astro.Sun)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, errors.ErrCodeEphemeris) {
		t.Errorf("expected EPHEMERIS_UNAVAILABLE, got %v", errors.GetCode(err))
	}
}

// containsParam reports whether the raw query contains the exact key=value pair.
func containsParam(rawQuery, pair string) bool {
	for _, p := range strings.Split(rawQuery, "&") {
		if p == pair {
			return true
		}
	}
	return false
}
