// Package observability lets embedders watch the engine without coupling it
// to any metrics or tracing backend. The core emits events through three
// small hook interfaces; main registers implementations at startup, and
// everything defaults to a no-op so library code never checks for nil.
//
//	observability.SetComputeHooks(&promHooks{})
//
// Library code emits:
//
//	observability.Compute().OnStageStart(ctx, "positions")
//	defer func() { observability.Compute().OnStageComplete(ctx, "positions", time.Since(t0), err) }()
package observability

import (
	"context"
	"sync"
	"time"
)

// ComputeHooks receives events from the computation pipeline. Stage names
// are the pipeline's: "positions", "chart", "vimshottari", "chara",
// "panchang".
type ComputeHooks interface {
	// OnStageStart records the start of a pipeline stage.
	OnStageStart(ctx context.Context, stage string)

	// OnStageComplete records a finished stage with its outcome.
	OnStageComplete(ctx context.Context, stage string, duration time.Duration, err error)
}

// CacheHooks receives events from cache operations. The keyType tells
// position, houses, and riseset lookups apart.
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// EphemerisHooks receives events from ephemeris source lookups.
type EphemerisHooks interface {
	// OnLookup records an outgoing lookup for a body at a Julian Day.
	OnLookup(ctx context.Context, body string, jd float64)

	// OnResult records a completed lookup.
	OnResult(ctx context.Context, body string, jd float64, duration time.Duration, err error)
}

// NoopComputeHooks discards compute events.
type NoopComputeHooks struct{}

func (NoopComputeHooks) OnStageStart(context.Context, string)                          {}
func (NoopComputeHooks) OnStageComplete(context.Context, string, time.Duration, error) {}

// NoopCacheHooks discards cache events.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopEphemerisHooks discards ephemeris events.
type NoopEphemerisHooks struct{}

func (NoopEphemerisHooks) OnLookup(context.Context, string, float64)                       {}
func (NoopEphemerisHooks) OnResult(context.Context, string, float64, time.Duration, error) {}

// registry holds the process-wide hook set. Reads vastly outnumber writes
// (registration happens once at startup), hence the RWMutex.
type registry struct {
	mu        sync.RWMutex
	compute   ComputeHooks
	cache     CacheHooks
	ephemeris EphemerisHooks
}

var global = registry{
	compute:   NoopComputeHooks{},
	cache:     NoopCacheHooks{},
	ephemeris: NoopEphemerisHooks{},
}

// SetComputeHooks registers compute hooks. A nil argument is ignored so the
// getters always return a usable implementation.
func SetComputeHooks(h ComputeHooks) {
	if h == nil {
		return
	}
	global.mu.Lock()
	global.compute = h
	global.mu.Unlock()
}

// SetCacheHooks registers cache hooks. Nil is ignored.
func SetCacheHooks(h CacheHooks) {
	if h == nil {
		return
	}
	global.mu.Lock()
	global.cache = h
	global.mu.Unlock()
}

// SetEphemerisHooks registers ephemeris hooks. Nil is ignored.
func SetEphemerisHooks(h EphemerisHooks) {
	if h == nil {
		return
	}
	global.mu.Lock()
	global.ephemeris = h
	global.mu.Unlock()
}

// Compute returns the registered compute hooks.
func Compute() ComputeHooks {
	global.mu.RLock()
	defer global.mu.RUnlock()
	return global.compute
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	global.mu.RLock()
	defer global.mu.RUnlock()
	return global.cache
}

// Ephemeris returns the registered ephemeris hooks.
func Ephemeris() EphemerisHooks {
	global.mu.RLock()
	defer global.mu.RUnlock()
	return global.ephemeris
}

// Reset restores the no-op defaults. Intended for tests.
func Reset() {
	global.mu.Lock()
	global.compute = NoopComputeHooks{}
	global.cache = NoopCacheHooks{}
	global.ephemeris = NoopEphemerisHooks{}
	global.mu.Unlock()
}
