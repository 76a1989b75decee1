package tabular

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// serialThreshold is the spreadsheet serial for 1970-01-01. Serials at or
// below it are rejected as implausible pre-1970 dates.
const serialThreshold = 25569

// serialEpoch is the spreadsheet day-zero, 1899-12-30 UTC.
var serialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// dateLayouts are tried in order when parsing string dates.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"02-Jan-2006",
}

// Numeric coerces a scalar to a finite float64. Numbers pass through, strings
// are parsed as decimals. NaN and infinities count as failures so they can
// never leak into a cleaned column. Failure is an ordinary outcome, never a
// panic.
func Numeric(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return 0, false
		}
		return x, true
	case float32:
		return Numeric(float64(x))
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// Date coerces a scalar to a UTC timestamp. Numbers above the 1970 threshold
// are read as spreadsheet serials (days since 1899-12-30, fractional days
// kept); numbers at or below it fail. Strings go through the permissive
// layout list. Everything else fails.
func Date(v any) (time.Time, bool) {
	switch x := v.(type) {
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) || x <= serialThreshold {
			return time.Time{}, false
		}
		days := math.Trunc(x)
		frac := x - days
		ts := serialEpoch.AddDate(0, 0, int(days))
		if frac > 0 {
			ts = ts.Add(time.Duration(frac * 24 * float64(time.Hour)))
		}
		return ts, true
	case int:
		return Date(float64(x))
	case int64:
		return Date(float64(x))
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return time.Time{}, false
		}
		for _, layout := range dateLayouts {
			if ts, err := time.Parse(layout, s); err == nil {
				return ts.UTC(), true
			}
		}
		return time.Time{}, false
	default:
		return time.Time{}, false
	}
}
