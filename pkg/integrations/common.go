// Package integrations provides shared HTTP plumbing for external service
// clients. The only required external service is the ephemeris provider
// (see the ephapi subpackage); this package holds the transport pieces any
// such client needs: a timeout-bounded HTTP client, caching, and retries.
package integrations

import (
	"errors"
	"net/http"
	"time"
)

const httpTimeout = 10 * time.Second

var (
	// ErrNotFound is returned when the remote service has no data for the request.
	ErrNotFound = errors.New("resource not found")

	// ErrNetwork is returned for HTTP failures (timeouts, connection errors, 5xx responses).
	ErrNetwork = errors.New("network error")
)

// NewHTTPClient creates an HTTP client with a standard timeout for service requests.
func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: httpTimeout}
}
