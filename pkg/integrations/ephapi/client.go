// Package ephapi implements the ephemeris Source contract against an HTTP
// ephemeris service (a thin JSON wrapper around a Swiss-Ephemeris-style
// calculation backend).
//
// Every request pins zodiac=sidereal: the computation core assumes sidereal
// longitudes throughout, and mixing reference frames in one cache would
// corrupt every downstream placement. Responses are cached through the
// shared integrations client since positions are pure functions of their
// arguments.
package ephapi

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/vedanga/jyotish/pkg/astro"
	"github.com/vedanga/jyotish/pkg/cache"
	"github.com/vedanga/jyotish/pkg/ephem"
	jerrors "github.com/vedanga/jyotish/pkg/errors"
	"github.com/vedanga/jyotish/pkg/integrations"
)

// DefaultBaseURL is the public ephemeris service endpoint.
const DefaultBaseURL = "https://api.vedanga.dev/ephemeris"

// DefaultCacheTTL bounds growth of the lookup cache. Entries never go
// stale (lookups are pure), so a long TTL is safe.
const DefaultCacheTTL = 30 * 24 * time.Hour

// Client fetches sidereal positions, house cusps, and rise/set times from
// the ephemeris service. It is safe for concurrent use.
type Client struct {
	*integrations.Client
	baseURL string
	keyer   cache.Keyer
}

// NewClient creates an ephemeris service client.
//
// Parameters:
//   - baseURL: service endpoint; "" uses [DefaultBaseURL]
//   - backend: cache backend for response caching (NullCache disables)
//   - ttl: how long responses are cached
func NewClient(baseURL string, backend cache.Cache, ttl time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		Client:  integrations.NewClient(backend, ttl, nil),
		baseURL: baseURL,
		keyer:   cache.NewDefaultKeyer(),
	}
}

// positionResponse mirrors the service's position payload.
type positionResponse struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
	Speed     float64 `json:"speed"`
}

// Position implements ephem.Source.
// Ketu is rejected: it is always derived from Rahu by the caller.
func (c *Client) Position(ctx context.Context, jd float64, body astro.Body) (astro.Position, error) {
	if !body.Valid() || body == astro.Ketu {
		return astro.Position{}, jerrors.New(jerrors.ErrCodeUnsupportedBody, "cannot fetch %s", body)
	}

	u := fmt.Sprintf("%s/v1/position?jd=%.8f&body=%s&zodiac=sidereal",
		c.baseURL, jd, url.QueryEscape(strings.ToLower(body.String())))

	var resp positionResponse
	key := c.keyer.PositionKey(jd, body.String())
	err := c.Cached(ctx, key, false, &resp, func() error {
		return c.Get(ctx, u, &resp)
	})
	if err != nil {
		return astro.Position{}, c.wrap(err, "position %s at jd %.6f", body, jd)
	}

	return astro.Position{
		Body:      body,
		Longitude: astro.Normalize(resp.Longitude),
		Latitude:  resp.Latitude,
		Speed:     resp.Speed,
	}, nil
}

// housesResponse mirrors the service's house-cusp payload.
type housesResponse struct {
	Ascendant float64     `json:"ascendant"`
	Cusps     [12]float64 `json:"cusps"`
}

// Houses implements ephem.Source using the service's Placidus cusps.
func (c *Client) Houses(ctx context.Context, jd, lat, lon float64) (ephem.Houses, error) {
	u := fmt.Sprintf("%s/v1/houses?jd=%.8f&lat=%.6f&lon=%.6f&system=placidus&zodiac=sidereal",
		c.baseURL, jd, lat, lon)

	var resp housesResponse
	key := c.keyer.HousesKey(jd, lat, lon)
	err := c.Cached(ctx, key, false, &resp, func() error {
		return c.Get(ctx, u, &resp)
	})
	if err != nil {
		return ephem.Houses{}, c.wrap(err, "houses at jd %.6f", jd)
	}
	return ephem.Houses{Ascendant: astro.Normalize(resp.Ascendant), Cusps: resp.Cusps}, nil
}

// riseSetResponse mirrors the service's rise/set payload (RFC 3339 UTC).
type riseSetResponse struct {
	Sunrise time.Time `json:"sunrise"`
	Sunset  time.Time `json:"sunset"`
}

// RiseSet implements ephem.Source.
func (c *Client) RiseSet(ctx context.Context, jd, lat, lon float64) (ephem.RiseSet, error) {
	u := fmt.Sprintf("%s/v1/riseset?jd=%.8f&lat=%.6f&lon=%.6f", c.baseURL, jd, lat, lon)

	var resp riseSetResponse
	key := c.keyer.RiseSetKey(jd, lat, lon)
	err := c.Cached(ctx, key, false, &resp, func() error {
		return c.Get(ctx, u, &resp)
	})
	if err != nil {
		return ephem.RiseSet{}, c.wrap(err, "riseset at jd %.6f", jd)
	}
	return ephem.RiseSet{Sunrise: resp.Sunrise, Sunset: resp.Sunset}, nil
}

// wrap maps transport errors onto the core taxonomy: everything the service
// cannot answer is EPHEMERIS_UNAVAILABLE to the caller.
func (c *Client) wrap(err error, format string, args ...any) error {
	if errors.Is(err, integrations.ErrNotFound) {
		return jerrors.Wrap(jerrors.ErrCodeEphemeris, err, "no ephemeris data: "+format, args...)
	}
	return ephem.Unavailable(err, format, args...)
}

// Ensure Client implements ephem.Source.
var _ ephem.Source = (*Client)(nil)
