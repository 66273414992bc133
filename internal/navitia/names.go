package navitia

import (
	"regexp"
	"strings"
)

var redundantNamePattern = regexp.MustCompile(`^(.+?)\s*\((.+?)\)\s*$`)

// CleanLocationName collapses redundant parenthetical station names:
// "Thionville (Thionville)" becomes "Thionville", while
// "Paris (Gare du Nord)" is left alone. The comparison is case-insensitive
// and whitespace-trimmed. Idempotent; empty input passes through unchanged.
func CleanLocationName(name string) string {
	if name == "" {
		return name
	}
	m := redundantNamePattern.FindStringSubmatch(name)
	if m == nil {
		return name
	}
	main := strings.TrimSpace(m[1])
	parenthetical := strings.TrimSpace(m[2])
	if strings.EqualFold(main, parenthetical) {
		return main
	}
	return name
}

// NormalizeStopName prepares a stop name for equality comparison: cleaned,
// lower-cased, trimmed. Two stop names refer to the same stop iff their
// normalized forms are equal.
func NormalizeStopName(name string) string {
	return strings.TrimSpace(strings.ToLower(CleanLocationName(name)))
}
