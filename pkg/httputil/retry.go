// Package httputil holds small HTTP plumbing shared by the service clients.
package httputil

import (
	"context"
	"errors"
	"time"
)

// maxDelay caps the backoff so a long attempt budget cannot stall a
// request for minutes.
const maxDelay = 30 * time.Second

// RetryableError marks a failure as transient. Only errors carrying this
// marker are retried; everything else is treated as permanent and returned
// to the caller on the first attempt.
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Retry runs fn until it succeeds, fails permanently, or the attempt budget
// is spent. The wait between attempts starts at delay and doubles each time,
// capped at maxDelay. A cancelled context wins over a pending wait.
func Retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; ; attempt++ {
		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if !errors.As(lastErr, new(*RetryableError)) || attempt == attempts {
			return lastErr
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		if delay *= 2; delay > maxDelay {
			delay = maxDelay
		}
	}
}

// RetryWithBackoff applies the package defaults: three attempts, one second
// initial delay.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	return Retry(ctx, 3, time.Second, fn)
}
