package navitia

import (
	"fmt"
	"time"
)

// DateTimeLayout is the wire format Navitia uses for every timestamp:
// no separators, no timezone marker, always UTC.
const DateTimeLayout = "20060102T150405"

// ParseDateTime parses a Navitia API timestamp (YYYYMMDDTHHmmss) as a UTC
// instant. The API never sends a timezone marker, so the value is interpreted
// as UTC unconditionally. Empty or malformed input is a contract violation by
// the upstream feed and fails fast.
func ParseDateTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("navitia: invalid date input: %q", s)
	}
	t, err := time.ParseInLocation(DateTimeLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("navitia: invalid date input: %q: %w", s, err)
	}
	return t, nil
}

// FormatDateTime renders t in the Navitia wire format, in UTC.
func FormatDateTime(t time.Time) string {
	return t.UTC().Format(DateTimeLayout)
}

// ParsePeriodBound parses an application-period bound. Period bounds normally
// use the same wire format as every other timestamp, but some feeds emit
// RFC 3339 there, so both are accepted. The boolean reports whether a
// concrete instant was obtained.
func ParsePeriodBound(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.ParseInLocation(DateTimeLayout, s, time.UTC); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}
