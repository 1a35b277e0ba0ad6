// Package calendar provides canonical calendar-day values. All range and
// overlap comparisons in the reservation engine operate on days produced
// here, so two inputs naming the same date always compare equal.
package calendar

import (
	"time"

	"refugio/pkg/logger"
)

// Layouts accepted for client-supplied dates, tried in order.
var dayLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// Day truncates t to midnight UTC, the engine's reference timezone.
func Day(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Today returns the current calendar day.
func Today() time.Time {
	return Day(time.Now())
}

// Parse interprets a client-supplied date string as a calendar day.
// Unparseable input does not fail: it falls back to today, matching the
// behavior clients already depend on. The fallback is logged because it
// tends to mask client bugs.
func Parse(s string, log *logger.Logger) time.Time {
	for _, layout := range dayLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Day(t)
		}
	}
	if log != nil {
		log.Warn("Unparseable date, falling back to today", "input", s)
	}
	return Today()
}

// Within reports whether day falls inside the inclusive range
// [start, end]. All three values must already be calendar days.
func Within(day, start, end time.Time) bool {
	return !day.Before(start) && !day.After(end)
}
