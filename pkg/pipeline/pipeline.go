// Package pipeline provides the core computation pipeline for Jyotish.
//
// This package implements the complete moment → positions → placements →
// periods pipeline that can be used by CLI and API components. By
// centralizing this logic, we ensure consistent behavior across all entry
// points and avoid code duplication.
//
// # Architecture
//
// The pipeline consists of independent stages fanned out from one position
// set:
//
//  1. Positions: Julian Day conversion plus ephemeris lookups for all bodies
//  2. Chart: zodiac placements and karaka ranking
//  3. Dasha: Vimshottari and Chara period trees
//  4. Panchang: the luni-solar calendar for the civil day
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(source, cache, nil, logger)
//	opts := pipeline.Options{
//	    Day: 14, Month: 5, Year: 1990,
//	    Hour: 11, Minute: 30,
//	    Offset:   5.5,
//	    Latitude: 28.6139, Longitude: 77.2090,
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Panchang.TithiName)
package pipeline

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vedanga/jyotish/pkg/astro"
	"github.com/vedanga/jyotish/pkg/errors"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultHour and DefaultMinute apply when a query carries no civil
	// time: local noon, the almanac convention.
	DefaultHour   = 12
	DefaultMinute = 0

	// DefaultOffset is the UTC offset assumed when none is supplied (IST).
	DefaultOffset = 5.5

	// DefaultLatitude and DefaultLongitude are the reference city used
	// when a query carries no coordinates (New Delhi).
	DefaultLatitude  = 28.6139
	DefaultLongitude = 77.2090

	// DefaultDepth is the default dasha tree depth (mahadasha + antardasha).
	DefaultDepth = 2
)

// Dasha system identifiers.
const (
	SystemVimshottari = "vimshottari"
	SystemChara       = "chara"
)

// ValidSystems is the set of supported dasha systems.
var ValidSystems = map[string]bool{
	SystemVimshottari: true,
	SystemChara:       true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
// This struct supports JSON serialization for API requests.
//
// Date and time fields are numeric and already sanitized: parsing of
// textual forms (DDMMYY and friends) is the input layer's job, not the
// core's.
type Options struct {
	// Moment fields
	Day    int     `json:"day"`
	Month  int     `json:"month"`
	Year   int     `json:"year"`
	Hour   int     `json:"hour"`
	Minute int     `json:"minute"`
	Offset float64 `json:"offset"`

	Latitude  float64 `json:"latitude,omitempty"`
	Longitude float64 `json:"longitude,omitempty"`

	// Computation options
	Depth       int    `json:"depth,omitempty"`        // dasha nesting depth
	System      string `json:"system,omitempty"`       // dasha system for single-system calls
	IncludeRahu bool   `json:"include_rahu,omitempty"` // eight-karaka scheme

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect
// as calling it once. Moment-level range validation happens in
// [Options.Moment]; this only covers pipeline-level options.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Depth == 0 {
		o.Depth = DefaultDepth
	}
	if o.System == "" {
		o.System = SystemVimshottari
	}
	if !ValidSystems[o.System] {
		return errors.New(errors.ErrCodeInvalidSystem,
			"invalid dasha system: %q (must be one of: vimshottari, chara)", o.System)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// Moment validates the civil fields and constructs the core Moment.
// Any range violation surfaces as INVALID_MOMENT from the core.
func (o *Options) Moment() (astro.Moment, error) {
	return astro.NewMoment(o.Day, o.Month, o.Year, o.Hour, o.Minute,
		o.Offset, o.Latitude, o.Longitude)
}
