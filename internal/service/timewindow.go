package service

import (
	"strings"
	"time"
)

// timestampLayouts are the shapes the forms produce. Values are passed
// to the backend verbatim either way; parsing is only for the local
// start-before-end check and the countdown.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// ParseTimestamp parses a form timestamp. A space separator is
// normalized to the ISO "T" before matching.
func ParseTimestamp(value string) (time.Time, bool) {
	value = strings.Replace(strings.TrimSpace(value), " ", "T", 1)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// validateWindow rejects a missing or inverted time window. Timestamps
// we cannot parse locally pass through: the backend is the authority on
// format.
func validateWindow(startTS, endTS string) error {
	if strings.TrimSpace(startTS) == "" || strings.TrimSpace(endTS) == "" {
		return ErrMissingTimeWindow
	}

	start, okStart := ParseTimestamp(startTS)
	end, okEnd := ParseTimestamp(endTS)
	if okStart && okEnd && !start.Before(end) {
		return ErrInvalidTimeWindow
	}
	return nil
}
