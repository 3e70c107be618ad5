package schema

import (
	"fmt"
	"strconv"
	"time"
)

// ParseDate parses an ISO-8601 calendar date (YYYY-MM-DD) into a UTC
// midnight timestamp. All dates in headcount are day-granular.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return t.UTC(), nil
}

// FormatDate renders a day-granular timestamp as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(time.DateOnly)
}

// FormatDates renders a slice of week-ending dates, preserving order.
func FormatDates(dates []time.Time) []string {
	out := make([]string, len(dates))
	for i, d := range dates {
		out[i] = FormatDate(d)
	}
	return out
}

// ParseDates parses a slice of YYYY-MM-DD strings, preserving order.
func ParseDates(ss []string) ([]time.Time, error) {
	out := make([]time.Time, len(ss))
	for i, s := range ss {
		d, err := ParseDate(s)
		if err != nil {
			return nil, err
		}
		out[i] = d
	}
	return out, nil
}

// ParseCellValue parses a count from CSV input. Plain decimal integers are
// the canonical form; an integral float like "50.0" is accepted because
// float-typed spreadsheet tooling rewrites counts that way. Fractional or
// non-numeric input is rejected.
func ParseCellValue(s string) (int64, error) {
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid count %q", s)
	}
	v := int64(f)
	if float64(v) != f {
		return 0, fmt.Errorf("invalid count %q: not an integral value", s)
	}
	return v, nil
}

func formatInt(v int64) string {
	return strconv.FormatInt(v, 10)
}
