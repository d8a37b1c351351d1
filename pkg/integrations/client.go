package integrations

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/vedanga/jyotish/pkg/cache"
	"github.com/vedanga/jyotish/pkg/httputil"
)

// Client is the transport base embedded by concrete service clients. It
// pairs a timeout-bounded HTTP client with a response cache and the shared
// retry policy, so endpoint code only builds URLs and decodes payloads.
type Client struct {
	hc      *http.Client
	cache   cache.Cache
	ttl     time.Duration
	headers map[string]string
}

// NewClient builds a Client over the given cache backend. A nil backend
// disables caching; headers (may be nil) are sent with every request.
func NewClient(backend cache.Cache, ttl time.Duration, headers map[string]string) *Client {
	if backend == nil {
		backend = cache.NewNullCache()
	}
	return &Client{
		hc:      NewHTTPClient(),
		cache:   backend,
		ttl:     ttl,
		headers: headers,
	}
}

// Cached answers from the cache when key is present, otherwise runs fetch
// (with retries) and stores whatever it decoded into v. Set refresh to
// bypass the cached copy. Cache write failures are ignored: a response that
// could not be cached is still a valid response.
func (c *Client) Cached(ctx context.Context, key string, refresh bool, v any, fetch func() error) error {
	if !refresh {
		if raw, hit, err := c.cache.Get(ctx, key); err == nil && hit && json.Unmarshal(raw, v) == nil {
			return nil
		}
	}

	if err := httputil.RetryWithBackoff(ctx, fetch); err != nil {
		return err
	}

	if raw, err := json.Marshal(v); err == nil {
		_ = c.cache.Set(ctx, key, raw, c.ttl)
	}
	return nil
}

// Get issues a GET for url and JSON-decodes the response body into v.
func (c *Client) Get(ctx context.Context, url string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	for k, val := range c.headers {
		req.Header.Set(k, val)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return &httputil.RetryableError{Err: fmt.Errorf("%w: %v", ErrNetwork, err)}
	}
	defer resp.Body.Close()

	if err := checkStatus(resp.StatusCode); err != nil {
		return err
	}
	return json.NewDecoder(resp.Body).Decode(v)
}

// checkStatus translates a response status into the package sentinels.
// 5xx responses are retryable; 404 and other 4xx are permanent.
func checkStatus(status int) error {
	switch {
	case status == http.StatusOK:
		return nil
	case status == http.StatusNotFound:
		return ErrNotFound
	case status >= 500:
		return &httputil.RetryableError{Err: fmt.Errorf("%w: status %d", ErrNetwork, status)}
	default:
		return fmt.Errorf("%w: status %d", ErrNetwork, status)
	}
}
