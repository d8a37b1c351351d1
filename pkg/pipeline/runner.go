package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vedanga/jyotish/pkg/astro"
	"github.com/vedanga/jyotish/pkg/astro/dasha"
	"github.com/vedanga/jyotish/pkg/astro/panchang"
	"github.com/vedanga/jyotish/pkg/cache"
	"github.com/vedanga/jyotish/pkg/ephem"
	"github.com/vedanga/jyotish/pkg/observability"
)

// Runner encapsulates pipeline execution against one ephemeris source.
// Both CLI and API use this to avoid duplicating orchestration logic.
//
// The Runner is stateless except for the source and logger - it
// doesn't store results. Multiple goroutines can safely share one Runner
// with different options.
type Runner struct {
	Source ephem.Source
	Logger *log.Logger
}

// NewRunner creates a runner over the given ephemeris source.
// If c is non-nil the source is wrapped with a deterministic lookup cache
// keyed by keyer (nil keyer uses the default). If logger is nil, the
// default logger is used.
func NewRunner(src ephem.Source, c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if c != nil {
		src = ephem.NewCachedSource(src, c, keyer, 0)
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Source: src, Logger: logger}
}

// PositionSet is the output of the positions stage: everything downstream
// stages need, fetched once.
type PositionSet struct {
	Moment    astro.Moment                  `json:"-"`
	JulianDay float64                       `json:"julian_day"`
	Bodies    map[astro.Body]astro.Position `json:"bodies"`
	Houses    ephem.Houses                  `json:"houses"`
}

// List returns the positions in canonical body order.
func (s *PositionSet) List() []astro.Position {
	out := make([]astro.Position, 0, len(s.Bodies))
	for _, b := range astro.Bodies {
		if p, ok := s.Bodies[b]; ok {
			out = append(out, p)
		}
	}
	return out
}

// Chart couples placements with the karaka ranking for one moment.
type Chart struct {
	Ascendant  float64                `json:"ascendant"`
	Placements []astro.Placement      `json:"placements"`
	Karakas    astro.KarakaAssignment `json:"karakas"`
}

// Result contains the outputs of a full pipeline run.
type Result struct {
	JulianDay   float64        `json:"julian_day"`
	Chart       Chart          `json:"chart"`
	Vimshottari []dasha.Period `json:"vimshottari"`
	Current     []dasha.Period `json:"current"` // active vimshottari chain at the query moment
	Chara       []dasha.Period `json:"chara"`
	Panchang    panchang.Day   `json:"panchang"`
	Stats       Stats          `json:"stats"`
}

// Stats contains pipeline execution statistics.
type Stats struct {
	PositionsTime time.Duration `json:"positions_time"`
	ChartTime     time.Duration `json:"chart_time"`
	DashaTime     time.Duration `json:"dasha_time"`
	PanchangTime  time.Duration `json:"panchang_time"`
}

// Positions runs the positions stage: Julian Day conversion, concurrent
// ephemeris lookups for all nine bodies, and the house-cusp lookup.
func (r *Runner) Positions(ctx context.Context, opts Options) (*PositionSet, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	m, err := opts.Moment()
	if err != nil {
		return nil, err
	}

	observability.Compute().OnStageStart(ctx, "positions")
	start := time.Now()

	jd := m.JulianDay()
	bodies, err := ephem.FetchAll(ctx, r.Source, jd)
	if err == nil {
		var houses ephem.Houses
		houses, err = r.Source.Houses(ctx, jd, m.Latitude(), m.Longitude())
		if err == nil {
			observability.Compute().OnStageComplete(ctx, "positions", time.Since(start), nil)
			return &PositionSet{Moment: m, JulianDay: jd, Bodies: bodies, Houses: houses}, nil
		}
	}
	observability.Compute().OnStageComplete(ctx, "positions", time.Since(start), err)
	return nil, err
}

// BuildChart computes placements and the karaka ranking from a position set.
func (r *Runner) BuildChart(ctx context.Context, set *PositionSet, opts Options) (Chart, error) {
	observability.Compute().OnStageStart(ctx, "chart")
	start := time.Now()

	asc := set.Houses.Ascendant
	placements := make([]astro.Placement, 0, len(set.Bodies))
	for _, pos := range set.List() {
		placements = append(placements, astro.NewPlacement(pos, asc))
	}

	karakas, err := astro.RankKarakas(set.List(), opts.IncludeRahu)
	observability.Compute().OnStageComplete(ctx, "chart", time.Since(start), err)
	if err != nil {
		return Chart{}, err
	}
	return Chart{Ascendant: asc, Placements: placements, Karakas: karakas}, nil
}

// Vimshottari builds the Moon-seeded period tree for the chart.
func (r *Runner) Vimshottari(ctx context.Context, set *PositionSet, opts Options) ([]dasha.Period, error) {
	observability.Compute().OnStageStart(ctx, "vimshottari")
	start := time.Now()

	moon, ok := set.Bodies[astro.Moon]
	if !ok {
		err := ephem.Unavailable(nil, "moon position missing")
		observability.Compute().OnStageComplete(ctx, "vimshottari", time.Since(start), err)
		return nil, err
	}
	tree, err := dasha.Vimshottari(moon.Longitude, set.Moment.UTC(), opts.Depth)
	observability.Compute().OnStageComplete(ctx, "vimshottari", time.Since(start), err)
	return tree, err
}

// Chara builds the Atmakaraka-seeded sign period tree for the chart.
func (r *Runner) Chara(ctx context.Context, set *PositionSet, chart Chart, opts Options) ([]dasha.Period, error) {
	observability.Compute().OnStageStart(ctx, "chara")
	start := time.Now()

	tree, err := dasha.Chara(chart.Karakas.Atmakaraka(), set.List(), set.Moment.UTC(), opts.Depth)
	observability.Compute().OnStageComplete(ctx, "chara", time.Since(start), err)
	return tree, err
}

// Panchang computes the luni-solar calendar for the civil day of the moment.
func (r *Runner) Panchang(ctx context.Context, set *PositionSet) (panchang.Day, error) {
	observability.Compute().OnStageStart(ctx, "panchang")
	start := time.Now()

	sun, okSun := set.Bodies[astro.Sun]
	moon, okMoon := set.Bodies[astro.Moon]
	if !okSun || !okMoon {
		err := ephem.Unavailable(nil, "sun or moon position missing")
		observability.Compute().OnStageComplete(ctx, "panchang", time.Since(start), err)
		return panchang.Day{}, err
	}

	m := set.Moment
	rs, err := r.Source.RiseSet(ctx, set.JulianDay, m.Latitude(), m.Longitude())
	if err != nil {
		observability.Compute().OnStageComplete(ctx, "panchang", time.Since(start), err)
		return panchang.Day{}, err
	}

	day := panchang.Compute(sun.Longitude, moon.Longitude, rs.Sunrise, rs.Sunset)
	observability.Compute().OnStageComplete(ctx, "panchang", time.Since(start), nil)
	return day, nil
}

// Execute runs the complete pipeline: positions, chart, both dasha systems,
// and the panchang. No partial results: the first failing stage aborts the
// run with its typed error.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	// The runner's logger backs the run unless the caller brought their
	// own; this must happen before validation fills in the discard default.
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{}

	posStart := time.Now()
	set, err := r.Positions(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.JulianDay = set.JulianDay
	result.Stats.PositionsTime = time.Since(posStart)

	opts.Logger.Info("fetched positions",
		"jd", fmt.Sprintf("%.6f", set.JulianDay),
		"bodies", len(set.Bodies),
		"duration", result.Stats.PositionsTime)

	chartStart := time.Now()
	chart, err := r.BuildChart(ctx, set, opts)
	if err != nil {
		return nil, err
	}
	result.Chart = chart
	result.Stats.ChartTime = time.Since(chartStart)

	opts.Logger.Info("built chart",
		"ascendant", fmt.Sprintf("%.2f", chart.Ascendant),
		"atmakaraka", chart.Karakas.Atmakaraka().Body.String(),
		"duration", result.Stats.ChartTime)

	dashaStart := time.Now()
	result.Vimshottari, err = r.Vimshottari(ctx, set, opts)
	if err != nil {
		return nil, err
	}
	result.Current, err = dasha.At(result.Vimshottari, set.Moment.UTC())
	if err != nil {
		return nil, err
	}
	result.Chara, err = r.Chara(ctx, set, chart, opts)
	if err != nil {
		return nil, err
	}
	result.Stats.DashaTime = time.Since(dashaStart)

	opts.Logger.Info("built dasha trees",
		"mahadasha", result.Current[0].Ruler,
		"depth", opts.Depth,
		"duration", result.Stats.DashaTime)

	panchangStart := time.Now()
	result.Panchang, err = r.Panchang(ctx, set)
	if err != nil {
		return nil, err
	}
	result.Stats.PanchangTime = time.Since(panchangStart)

	opts.Logger.Info("computed panchang",
		"tithi", result.Panchang.TithiName,
		"score", result.Panchang.Score,
		"duration", result.Stats.PanchangTime)

	return result, nil
}
