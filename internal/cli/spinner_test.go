package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
)

func TestSpinnerStopClearsLine(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinner(context.Background(), "working")
	s.out = &buf

	s.Start()
	time.Sleep(3 * spinnerInterval)
	s.Stop()

	if s.Cancelled() {
		t.Error("a normal stop must not read as cancellation")
	}
	out := buf.String()
	if !strings.Contains(out, "working") {
		t.Error("spinner never drew its message")
	}
	if !strings.HasSuffix(out, "\r") {
		t.Error("spinner must clear its line before returning")
	}

	// Stop is safe to call again.
	s.Stop()
}

func TestSpinnerCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var buf bytes.Buffer
	s := newSpinner(ctx, "working")
	s.out = &buf

	s.Start()
	cancel()
	s.Stop()

	if !s.Cancelled() {
		t.Error("parent cancellation should be visible after Stop")
	}
}
