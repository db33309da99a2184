package util

import (
	"strings"

	"jobscout/internal/domain"
)

// CleanText collapses whitespace and NBSPs into single spaces.
func CleanText(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSpace(s)
}

// ParseLocation splits a "City, State, Country"-ish string into parts. Two
// parts read as city+state, one part as city. Extra parts fold into country.
func ParseLocation(raw string) *domain.Location {
	raw = CleanText(raw)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	for i := range parts {
		parts[i] = CleanText(parts[i])
	}
	loc := &domain.Location{}
	switch len(parts) {
	case 1:
		loc.City = parts[0]
	case 2:
		loc.City, loc.State = parts[0], parts[1]
	default:
		loc.City, loc.State = parts[0], parts[1]
		loc.Country = strings.Join(parts[2:], ", ")
	}
	return loc
}

// FirstNonEmpty returns the first value with non-space content.
func FirstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// Truncate flattens newlines and caps the string for log output.
func Truncate(s string, max int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	s = strings.TrimSpace(s)
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
