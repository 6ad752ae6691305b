package recurrence

import (
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Accepted date layouts at the API boundary, tried in order.
var dateLayouts = []string{
	time.DateOnly,
	time.DateTime,
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// Date strips the time-of-day from t. The result is midnight UTC of the
// calendar day t names in its own location.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses an ISO-8601 date or date-time string. The time-of-day is
// kept; callers normalize with Date when they only need the day.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD or YYYY-MM-DD HH:MM:SS", s)
}

// Matches reports whether an event first held on firstDate and repeating by
// rule occurs on targetDate. Only calendar days are compared.
//
// A Monthly event anchored on a day the target month does not have (the 31st
// in a 30-day month) is skipped for that month, as is a Yearly event anchored
// on February 29 outside leap years.
func Matches(firstDate time.Time, rule Rule, targetDate time.Time) bool {
	first, target := Date(firstDate), Date(targetDate)

	if first.Equal(target) {
		return true
	}
	if rule == None {
		return false
	}
	if target.Before(first) {
		return false
	}

	switch rule {
	case Daily:
		return true
	case Weekly:
		return target.Weekday() == first.Weekday()
	case Monthly:
		return target.Day() == first.Day()
	case Yearly:
		return target.Day() == first.Day() && target.Month() == first.Month()
	default:
		slog.Warn("Unexpected repeat rule, treating event as non-repeating",
			"rule", int(rule),
			"first_date", first.Format(time.DateOnly),
		)
		return false
	}
}
