package astro

import (
	"fmt"
	"math"
	"time"

	"github.com/vedanga/jyotish/pkg/errors"
)

// Supported civil year range. The bundled ephemeris sources cover a few
// millennia around the present; anything outside is rejected up front.
const (
	MinYear = 1
	MaxYear = 9999
)

// Moment is an immutable civil instant with a fixed UTC offset and a
// geographic location. Construct via [NewMoment]; invalid calendar values
// are rejected there, so a zero-error Moment is always internally valid.
//
// The UTC offset is a caller-supplied fixed number of hours. No timezone
// database or DST lookup is performed; this matches the contract of the
// upstream data sources and keeps the conversion pure.
type Moment struct {
	day, month, year int
	hour, minute     int
	offset           float64 // UTC offset in hours, fractional allowed
	lat, lon         float64 // geographic coordinates in degrees
}

// NewMoment validates and constructs a Moment.
//
// Validation rules:
//   - year in [1, 9999], month in [1, 12], day valid for the month/year
//   - hour in [0, 23], minute in [0, 59]
//   - offset in [-14, +14] hours
//   - latitude in [-90, 90], longitude in [-180, 180]
//
// Violations return an INVALID_MOMENT error naming the offending field.
func NewMoment(day, month, year, hour, minute int, offset, lat, lon float64) (Moment, error) {
	if year < MinYear || year > MaxYear {
		return Moment{}, errors.New(errors.ErrCodeInvalidMoment, "year out of range: %d", year)
	}
	if month < 1 || month > 12 {
		return Moment{}, errors.New(errors.ErrCodeInvalidMoment, "month out of range: %d", month)
	}
	if day < 1 || day > daysInMonth(month, year) {
		return Moment{}, errors.New(errors.ErrCodeInvalidMoment, "day out of range: %d for %d/%d", day, month, year)
	}
	if hour < 0 || hour > 23 {
		return Moment{}, errors.New(errors.ErrCodeInvalidMoment, "hour out of range: %d", hour)
	}
	if minute < 0 || minute > 59 {
		return Moment{}, errors.New(errors.ErrCodeInvalidMoment, "minute out of range: %d", minute)
	}
	if offset < -14 || offset > 14 {
		return Moment{}, errors.New(errors.ErrCodeInvalidMoment, "utc offset out of range: %g", offset)
	}
	if lat < -90 || lat > 90 {
		return Moment{}, errors.New(errors.ErrCodeInvalidMoment, "latitude out of range: %g", lat)
	}
	if lon < -180 || lon > 180 {
		return Moment{}, errors.New(errors.ErrCodeInvalidMoment, "longitude out of range: %g", lon)
	}
	return Moment{
		day: day, month: month, year: year,
		hour: hour, minute: minute,
		offset: offset, lat: lat, lon: lon,
	}, nil
}

// Accessors. Moment fields are unexported to keep constructed values valid.

func (m Moment) Day() int           { return m.day }
func (m Moment) Month() int         { return m.month }
func (m Moment) Year() int          { return m.year }
func (m Moment) Hour() int          { return m.hour }
func (m Moment) Minute() int        { return m.minute }
func (m Moment) Offset() float64    { return m.offset }
func (m Moment) Latitude() float64  { return m.lat }
func (m Moment) Longitude() float64 { return m.lon }

// FractionalHour returns the local civil time as a fractional hour.
func (m Moment) FractionalHour() float64 {
	return float64(m.hour) + float64(m.minute)/60
}

// JulianDay converts the moment to a Julian Day in Universal Time.
// The fixed UTC offset is subtracted from local time before conversion.
//
// The conversion uses the standard Gregorian-calendar algorithm (Meeus,
// Astronomical Algorithms, ch. 7). It is strictly monotonic in the moment:
// two distinct valid Moments never collapse to the same value.
func (m Moment) JulianDay() float64 {
	utHours := m.FractionalHour() - m.offset

	y, mo := m.year, m.month
	if mo <= 2 {
		y--
		mo += 12
	}
	a := y / 100
	b := 2 - a + a/4

	jd := math.Floor(365.25*float64(y+4716)) +
		math.Floor(30.6001*float64(mo+1)) +
		float64(m.day) + float64(b) - 1524.5

	return jd + utHours/24
}

// UTC returns the moment as a time.Time in UTC.
// Seconds below the minute are truncated, matching the civil input.
func (m Moment) UTC() time.Time {
	local := time.Date(m.year, time.Month(m.month), m.day, m.hour, m.minute, 0, 0, time.UTC)
	return local.Add(-time.Duration(m.offset * float64(time.Hour)))
}

// String renders the moment for logs: "1990-05-14 11:30 +05.5 (28.61, 77.21)".
func (m Moment) String() string {
	return fmt.Sprintf("%04d-%02d-%02d %02d:%02d %+05.1f (%.2f, %.2f)",
		m.year, m.month, m.day, m.hour, m.minute, m.offset, m.lat, m.lon)
}

func daysInMonth(month, year int) int {
	switch month {
	case 1, 3, 5, 7, 8, 10, 12:
		return 31
	case 4, 6, 9, 11:
		return 30
	case 2:
		if isLeap(year) {
			return 29
		}
		return 28
	}
	return 0
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
