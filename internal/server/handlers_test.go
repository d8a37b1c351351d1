package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vedanga/jyotish/pkg/astro"
	"github.com/vedanga/jyotish/pkg/ephem"
	"github.com/vedanga/jyotish/pkg/pipeline"
)

func testServer() *Server {
	src := ephem.NewStatic(map[astro.Body]astro.Position{
		astro.Sun:     {Body: astro.Sun, Longitude: 340.5},
		astro.Moon:    {Body: astro.Moon, Longitude: 100.0},
		astro.Mars:    {Body: astro.Mars, Longitude: 10.0},
		astro.Mercury: {Body: astro.Mercury, Longitude: 330.0},
		astro.Jupiter: {Body: astro.Jupiter, Longitude: 95.0, Speed: -0.04},
		astro.Venus:   {Body: astro.Venus, Longitude: 300.0},
		astro.Saturn:  {Body: astro.Saturn, Longitude: 275.0},
		astro.Rahu:    {Body: astro.Rahu, Longitude: 200.0, Speed: -0.05},
	},
		ephem.Houses{Ascendant: 95.0},
		ephem.RiseSet{
			Sunrise: time.Date(1990, 3, 24, 0, 45, 0, 0, time.UTC),
			Sunset:  time.Date(1990, 3, 24, 13, 0, 0, 0, time.UTC),
		})
	logger := log.NewWithOptions(io.Discard, log.Options{})
	runner := pipeline.NewRunner(src, nil, nil, logger)
	return New(runner, logger)
}

const testBody = `{"day":24,"month":3,"year":1990,"hour":14,"minute":15,"offset":5.5,"latitude":19.07,"longitude":72.88}`

func post(t *testing.T, srv *Server, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error envelope: %v\nbody: %s", err, rec.Body.String())
	}
	return resp.Error
}

func TestHealthz(t *testing.T) {
	srv := testServer()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field = %q", body["status"])
	}
}

func TestChartEndpoint(t *testing.T) {
	srv := testServer()
	rec := post(t, srv, "/v1/chart", testBody)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}

	var resp chartResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.JulianDay == 0 {
		t.Error("julian_day missing")
	}
	if len(resp.Chart.Placements) != 9 {
		t.Errorf("placements = %d, want 9", len(resp.Chart.Placements))
	}
	if len(resp.Chart.Karakas.Karakas) != 7 {
		t.Errorf("karakas = %d, want 7", len(resp.Chart.Karakas.Karakas))
	}
}

func TestDashaEndpoint(t *testing.T) {
	srv := testServer()
	rec := post(t, srv, "/v1/dasha", testBody)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", rec.Code, rec.Body.String())
	}
	var resp dashaResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.System != pipeline.SystemVimshottari {
		t.Errorf("system = %q", resp.System)
	}
	if len(resp.Periods) != 9 {
		t.Errorf("mahadashas = %d, want 9", len(resp.Periods))
	}
	if len(resp.Current) != pipeline.DefaultDepth {
		t.Errorf("current chain = %d, want %d", len(resp.Current), pipeline.DefaultDepth)
	}
}

func TestDashaEndpointChara(t *testing.T) {
	srv := testServer()
	body := strings.TrimSuffix(testBody, "}") + `,"system":"chara"}`
	rec := post(t, srv, "/v1/dasha", body)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", rec.Code, rec.Body.String())
	}
	var resp dashaResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.System != pipeline.SystemChara {
		t.Errorf("system = %q", resp.System)
	}
	if len(resp.Periods) != 12 {
		t.Errorf("sign periods = %d, want 12", len(resp.Periods))
	}
}

func TestPanchangEndpoint(t *testing.T) {
	srv := testServer()
	rec := post(t, srv, "/v1/panchang", testBody)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", rec.Code, rec.Body.String())
	}
	var day map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &day); err != nil {
		t.Fatalf("decode: %v", err)
	}
	for _, key := range []string{"tithi", "nakshatra", "yoga", "karana", "score", "verdict"} {
		if _, ok := day[key]; !ok {
			t.Errorf("missing %q in panchang body: %s", key, rec.Body.String())
		}
	}
}

func TestBadRequests(t *testing.T) {
	srv := testServer()
	tests := []struct {
		name string
		body string
		code string
	}{
		{"malformed json", `{"day":`, "INVALID_INPUT"},
		{"unknown field", `{"day":24,"month":3,"year":1990,"planet":"mars"}`, "INVALID_INPUT"},
		{"bad moment", `{"day":32,"month":3,"year":1990}`, "INVALID_MOMENT"},
		{"bad system", strings.TrimSuffix(testBody, "}") + `,"system":"yogini"}`, "INVALID_DASHA_SYSTEM"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := "/v1/chart"
			if tt.name == "bad system" {
				path = "/v1/dasha"
			}
			rec := post(t, srv, path, tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, body: %s", rec.Code, rec.Body.String())
			}
			e := decodeError(t, rec)
			if e.Code != tt.code {
				t.Errorf("code = %q, want %q", e.Code, tt.code)
			}
			if e.Message == "" {
				t.Error("message should not be empty")
			}
		})
	}
}

func TestEphemerisFailureIsBadGateway(t *testing.T) {
	// A source missing most bodies makes the positions stage fail upstream.
	src := ephem.NewStatic(map[astro.Body]astro.Position{
		astro.Sun: {Body: astro.Sun, Longitude: 340.5},
	}, ephem.Houses{Ascendant: 95.0}, ephem.RiseSet{})
	logger := log.NewWithOptions(io.Discard, log.Options{})
	srv := New(pipeline.NewRunner(src, nil, nil, logger), logger)

	rec := post(t, srv, "/v1/chart", testBody)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, body: %s", rec.Code, rec.Body.String())
	}
	if e := decodeError(t, rec); e.Code != "EPHEMERIS_UNAVAILABLE" {
		t.Errorf("code = %q", e.Code)
	}
}

func TestRequestIDEcho(t *testing.T) {
	srv := testServer()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	if rec.Header().Get(requestIDHeader) == "" {
		t.Error("server should assign a request id")
	}

	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, "client-id-42")
	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	if got := rec.Header().Get(requestIDHeader); got != "client-id-42" {
		t.Errorf("request id = %q, want the client-supplied id", got)
	}
}
