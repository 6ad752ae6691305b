package recurrence

import (
	"errors"
	"fmt"
	"time"

	"github.com/teambition/rrule-go"
)

// ErrInvalidRange is returned when the end of a range precedes its start.
var ErrInvalidRange = errors.New("range end is before range start")

var frequencies = map[Rule]rrule.Frequency{
	Daily:   rrule.DAILY,
	Weekly:  rrule.WEEKLY,
	Monthly: rrule.MONTHLY,
	Yearly:  rrule.YEARLY,
}

// newRRule builds the RFC 5545 rule equivalent to a repeating Rule anchored at first.
// RRULE expansion skips invalid dates (the 31st of a 30-day month, Feb 29 in
// common years), which is the same policy Matches applies.
func newRRule(first time.Time, rule Rule) (*rrule.RRule, error) {
	freq, ok := frequencies[rule]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRule, rule)
	}
	r, err := rrule.NewRRule(rrule.ROption{
		Freq:     freq,
		Interval: 1,
		Dtstart:  Date(first),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build rrule: %w", err)
	}
	return r, nil
}

// Occurrences returns every day in the closed range [from, to] on which the
// event occurs, in ascending order. Non-repeating and unrecognized rules yield
// at most the first date.
func Occurrences(firstDate time.Time, rule Rule, from, to time.Time) ([]time.Time, error) {
	first, start, end := Date(firstDate), Date(from), Date(to)
	if end.Before(start) {
		return nil, ErrInvalidRange
	}

	if !rule.Repeats() {
		if first.Before(start) || first.After(end) {
			return nil, nil
		}
		return []time.Time{first}, nil
	}

	r, err := newRRule(first, rule)
	if err != nil {
		return nil, err
	}
	return r.Between(start, end, true), nil
}

// Next returns the first occurrence on a day strictly after after.
// The boolean is false when the event has no further occurrences.
func Next(firstDate time.Time, rule Rule, after time.Time) (time.Time, bool) {
	first, day := Date(firstDate), Date(after)
	if first.After(day) {
		return first, true
	}
	if !rule.Repeats() {
		return time.Time{}, false
	}

	r, err := newRRule(first, rule)
	if err != nil {
		return time.Time{}, false
	}
	next := r.After(day, false)
	if next.IsZero() {
		return time.Time{}, false
	}
	return Date(next), true
}
