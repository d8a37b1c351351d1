package cache

import (
	"context"
	"time"
)

// NullCache misses every Get and discards every Set. It backs the
// `backend = "none"` configuration and keeps callers free of nil checks.
type NullCache struct{}

// NewNullCache returns the no-op cache.
func NewNullCache() NullCache { return NullCache{} }

func (NullCache) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NullCache) Delete(context.Context, string) error                     { return nil }
func (NullCache) Close() error                                             { return nil }

var _ Cache = NullCache{}
