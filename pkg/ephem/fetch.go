package ephem

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vedanga/jyotish/pkg/astro"
	"github.com/vedanga/jyotish/pkg/errors"
	"github.com/vedanga/jyotish/pkg/observability"
)

// fetchConcurrency bounds parallel lookups against a single Source. Remote
// ephemeris services tolerate a handful of in-flight requests; native
// library bindings are effectively serialized by their own locks.
const fetchConcurrency = 4

// FetchAll looks up all nine graha positions for a Julian Day.
//
// The eight fetchable bodies are looked up concurrently (each lookup is
// independent and pure) and Ketu is derived from Rahu afterwards. The
// first lookup failure cancels the remaining ones and is returned as an
// EPHEMERIS_UNAVAILABLE error.
func FetchAll(ctx context.Context, src Source, jd float64) (map[astro.Body]astro.Position, error) {
	out := make(map[astro.Body]astro.Position, len(astro.Bodies))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fetchConcurrency)

	for _, body := range astro.Bodies {
		if body == astro.Ketu {
			continue // derived below
		}
		g.Go(func() error {
			observability.Ephemeris().OnLookup(gctx, body.String(), jd)
			start := time.Now()
			pos, err := src.Position(gctx, jd, body)
			observability.Ephemeris().OnResult(gctx, body.String(), jd, time.Since(start), err)
			if err != nil {
				return Unavailable(err, "position lookup failed for %s at jd %.6f", body, jd)
			}
			mu.Lock()
			out[body] = pos
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	rahu, ok := out[astro.Rahu]
	if !ok {
		return nil, errors.New(errors.ErrCodeEphemeris, "rahu position missing; cannot derive ketu")
	}
	out[astro.Ketu] = astro.KetuFrom(rahu)
	return out, nil
}
