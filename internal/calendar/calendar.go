// Package calendar selects the events visible on a day or within a month.
package calendar

import (
	"sort"
	"time"

	"github.com/mmynk/choretracker/internal/models"
	"github.com/mmynk/choretracker/internal/recurrence"
)

// DaySet is a set of day-of-month numbers (1-31).
type DaySet map[int]struct{}

// Has reports whether day is in the set.
func (s DaySet) Has(day int) bool {
	_, ok := s[day]
	return ok
}

// Sorted returns the days in ascending order.
func (s DaySet) Sorted() []int {
	days := make([]int, 0, len(s))
	for d := range s {
		days = append(days, d)
	}
	sort.Ints(days)
	return days
}

// FilterByDate returns the events occurring on target, preserving input order.
func FilterByDate(events []models.Event, target time.Time) []models.Event {
	var visible []models.Event
	for _, e := range events {
		if recurrence.Matches(e.FirstDate, e.Repeat, target) {
			visible = append(visible, e)
		}
	}
	return visible
}

// DatesWithEvents returns the days of monthAnchor's month on which at least
// one event occurs.
func DatesWithEvents(events []models.Event, monthAnchor time.Time) DaySet {
	return datesMatching(events, monthAnchor, func(models.Event) bool { return true })
}

// DatesAssignedTo is DatesWithEvents restricted to events assigned to member.
func DatesAssignedTo(events []models.Event, monthAnchor time.Time, member string) DaySet {
	return datesMatching(events, monthAnchor, func(e models.Event) bool {
		return e.AssignedTo(member)
	})
}

// DaysInMonth returns the number of days in anchor's month.
func DaysInMonth(anchor time.Time) int {
	first := MonthStart(anchor)
	return first.AddDate(0, 1, -1).Day()
}

// MonthStart returns the first day of anchor's month, normalized to a date.
func MonthStart(anchor time.Time) time.Time {
	d := recurrence.Date(anchor)
	return d.AddDate(0, 0, 1-d.Day())
}

func datesMatching(events []models.Event, monthAnchor time.Time, include func(models.Event) bool) DaySet {
	days := make(DaySet)
	start := MonthStart(monthAnchor)
	n := DaysInMonth(monthAnchor)

	for _, e := range events {
		if !include(e) {
			continue
		}
		for i := 0; i < n; i++ {
			if days.Has(i + 1) {
				continue
			}
			if recurrence.Matches(e.FirstDate, e.Repeat, start.AddDate(0, 0, i)) {
				days[i+1] = struct{}{}
			}
		}
	}
	return days
}
