package reconcile

import (
	"strings"
	"time"
)

// instantLayouts are tried in order. The feeds publish "Z" or numeric
// offsets, with or without seconds; fractional seconds are accepted by the
// parser even when a layout does not name them.
var instantLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseInstant parses a feed timestamp. ok is false for empty or
// unparsable input.
func ParseInstant(iso string) (time.Time, bool) {
	iso = strings.TrimSpace(iso)
	if iso == "" {
		return time.Time{}, false
	}

	for _, layout := range instantLayouts {
		if t, err := time.Parse(layout, iso); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// datePart is the calendar date of the instant in its own offset, or ""
func datePart(iso string) string {
	t, ok := ParseInstant(iso)
	if !ok {
		return ""
	}
	return t.Format("2006-01-02")
}

// BuildKey derives the join key of a contest. The order of away and home is
// significant. A missing or malformed instant yields an empty date part
// instead of an error.
func BuildKey(away, home, iso string) string {
	return Normalize(away) + "|" + Normalize(home) + "|" + datePart(iso)
}
