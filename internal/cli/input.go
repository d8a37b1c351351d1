package cli

import (
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vedanga/jyotish/pkg/errors"
	"github.com/vedanga/jyotish/pkg/pipeline"
)

// =============================================================================
// Date & Time Parsing
// =============================================================================

// twoDigitYearPivot splits two-digit years: values below it map to the
// 2000s, the rest to the 1900s. So "45" is 2045 and "90" is 1990.
const twoDigitYearPivot = 50

// parseDate parses a civil date in one of the accepted textual forms:
//
//	DDMMYY      240390
//	DDMMYYYY    24031990
//	DD.MM.YYYY  24.03.1990 (also / and - separators)
//	YYYY-MM-DD  1990-03-24
//
// Only the shape is checked here; range validation (leap years, days per
// month) happens when the moment is constructed.
func parseDate(s string) (day, month, year int, err error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, 0, 0, errors.New(errors.ErrCodeInvalidDate, "empty date")
	}

	// ISO form first: the year leads.
	if len(s) == 10 && s[4] == '-' && s[7] == '-' {
		year, err1 := strconv.Atoi(s[:4])
		month, err2 := strconv.Atoi(s[5:7])
		day, err3 := strconv.Atoi(s[8:])
		if err1 != nil || err2 != nil || err3 != nil {
			return 0, 0, 0, errors.New(errors.ErrCodeInvalidDate, "invalid date: %q", s)
		}
		return day, month, year, nil
	}

	// Separated day-first forms.
	for _, sep := range []string{".", "/", "-"} {
		if strings.Contains(s, sep) {
			parts := strings.Split(s, sep)
			if len(parts) != 3 {
				return 0, 0, 0, errors.New(errors.ErrCodeInvalidDate, "invalid date: %q", s)
			}
			day, err1 := strconv.Atoi(parts[0])
			month, err2 := strconv.Atoi(parts[1])
			year, err3 := strconv.Atoi(parts[2])
			if err1 != nil || err2 != nil || err3 != nil {
				return 0, 0, 0, errors.New(errors.ErrCodeInvalidDate, "invalid date: %q", s)
			}
			if len(parts[2]) == 2 {
				year = expandYear(year)
			}
			return day, month, year, nil
		}
	}

	// Compact digit forms.
	if _, err := strconv.Atoi(s); err != nil {
		return 0, 0, 0, errors.New(errors.ErrCodeInvalidDate, "invalid date: %q", s)
	}
	switch len(s) {
	case 6: // DDMMYY
		day, _ = strconv.Atoi(s[:2])
		month, _ = strconv.Atoi(s[2:4])
		yy, _ := strconv.Atoi(s[4:])
		return day, month, expandYear(yy), nil
	case 8: // DDMMYYYY
		day, _ = strconv.Atoi(s[:2])
		month, _ = strconv.Atoi(s[2:4])
		year, _ = strconv.Atoi(s[4:])
		return day, month, year, nil
	default:
		return 0, 0, 0, errors.New(errors.ErrCodeInvalidDate,
			"invalid date: %q (expected DDMMYY, DDMMYYYY, DD.MM.YYYY, or YYYY-MM-DD)", s)
	}
}

// expandYear maps a two-digit year onto a full century.
func expandYear(yy int) int {
	if yy < twoDigitYearPivot {
		return 2000 + yy
	}
	return 1900 + yy
}

// parseTime parses a civil time as HH:MM or compact HHMM.
// An empty string yields local noon, the almanac convention for queries
// without a known birth time.
func parseTime(s string) (hour, minute int, err error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return pipeline.DefaultHour, pipeline.DefaultMinute, nil
	}

	if i := strings.Index(s, ":"); i >= 0 {
		hour, err1 := strconv.Atoi(s[:i])
		minute, err2 := strconv.Atoi(s[i+1:])
		if err1 != nil || err2 != nil {
			return 0, 0, errors.New(errors.ErrCodeInvalidTime, "invalid time: %q", s)
		}
		return hour, minute, nil
	}

	if len(s) == 4 {
		hour, err1 := strconv.Atoi(s[:2])
		minute, err2 := strconv.Atoi(s[2:])
		if err1 == nil && err2 == nil {
			return hour, minute, nil
		}
	}
	return 0, 0, errors.New(errors.ErrCodeInvalidTime,
		"invalid time: %q (expected HH:MM or HHMM)", s)
}

// =============================================================================
// Shared Moment Flags
// =============================================================================

// momentFlags collects the flags shared by every computing command: the
// civil date and time, UTC offset, and observer coordinates.
type momentFlags struct {
	date   string
	clock  string
	offset float64
	lat    float64
	lon    float64
}

// register adds the shared flags to cmd, seeding defaults from cfg.
// When requireDate is false and no --date is given, today's civil date in
// the configured offset is used.
func (f *momentFlags) register(cmd *cobra.Command, cfg *Config) {
	cmd.Flags().StringVarP(&f.date, "date", "d", "", "civil date (DDMMYY, DD.MM.YYYY, or YYYY-MM-DD)")
	cmd.Flags().StringVarP(&f.clock, "time", "t", "", "civil time HH:MM (default 12:00)")
	cmd.Flags().Float64Var(&f.offset, "offset", cfg.Location.Offset, "UTC offset in hours")
	cmd.Flags().Float64Var(&f.lat, "lat", cfg.Location.Latitude, "observer latitude")
	cmd.Flags().Float64Var(&f.lon, "lon", cfg.Location.Longitude, "observer longitude")
}

// options converts the parsed flags into pipeline options.
func (f *momentFlags) options() (pipeline.Options, error) {
	var opts pipeline.Options

	if f.date == "" {
		now := time.Now().UTC().Add(time.Duration(f.offset * float64(time.Hour)))
		opts.Day, opts.Month, opts.Year = now.Day(), int(now.Month()), now.Year()
	} else {
		day, month, year, err := parseDate(f.date)
		if err != nil {
			return opts, err
		}
		opts.Day, opts.Month, opts.Year = day, month, year
	}

	hour, minute, err := parseTime(f.clock)
	if err != nil {
		return opts, err
	}
	opts.Hour, opts.Minute = hour, minute
	opts.Offset = f.offset
	opts.Latitude = f.lat
	opts.Longitude = f.lon
	return opts, nil
}
