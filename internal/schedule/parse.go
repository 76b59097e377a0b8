package schedule

import (
	"strings"
	"time"
)

// Accepted input layouts, tried in order. Mirrors what operators paste in:
// ISO, US with and without century, and day-first with dashes.
var dateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"01/02/06",
	"02-01-2006",
}

// ParseDate parses a date leniently. Blank or unparseable input yields nil
// rather than an error; downstream schedule logic treats that as "no date".
func ParseDate(raw string) *time.Time {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			d := Day(t)
			return &d
		}
	}
	return nil
}

// FormatDate renders a date pointer as ISO 8601, nil in nil out.
func FormatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("2006-01-02")
	return &s
}
