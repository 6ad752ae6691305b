package calendar

import (
	"reflect"
	"testing"
	"time"

	"github.com/mmynk/choretracker/internal/models"
	"github.com/mmynk/choretracker/internal/recurrence"
)

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := recurrence.ParseDate(s)
	if err != nil {
		t.Fatalf("ParseDate(%q): %v", s, err)
	}
	return d
}

func TestFilterByDate(t *testing.T) {
	events := []models.Event{
		{ID: "daily", Name: "Dishes", FirstDate: date(t, "2025-03-20"), Repeat: recurrence.Daily},
		{ID: "once", Name: "Plumber", FirstDate: date(t, "2025-03-29"), Repeat: recurrence.None},
	}

	got := FilterByDate(events, date(t, "2025-03-28"))
	if len(got) != 1 || got[0].ID != "daily" {
		t.Fatalf("FilterByDate = %v, want only the daily event", got)
	}

	got = FilterByDate(events, date(t, "2025-03-29 18:00:00"))
	if len(got) != 2 {
		t.Fatalf("FilterByDate on 03-29 returned %d events, want 2", len(got))
	}
}

func TestFilterByDate_PreservesOrder(t *testing.T) {
	events := []models.Event{
		{ID: "c", FirstDate: date(t, "2025-01-01"), Repeat: recurrence.Daily},
		{ID: "skip", FirstDate: date(t, "2025-01-02"), Repeat: recurrence.Weekly},
		{ID: "a", FirstDate: date(t, "2025-01-06"), Repeat: recurrence.None},
		{ID: "b", FirstDate: date(t, "2024-01-06"), Repeat: recurrence.Monthly},
	}
	got := FilterByDate(events, date(t, "2025-01-06"))

	var ids []string
	for _, e := range got {
		ids = append(ids, e.ID)
	}
	if want := []string{"c", "a", "b"}; !reflect.DeepEqual(ids, want) {
		t.Errorf("order = %v, want %v", ids, want)
	}
}

func TestFilterByDate_Empty(t *testing.T) {
	if got := FilterByDate(nil, date(t, "2025-03-28")); len(got) != 0 {
		t.Errorf("expected no events, got %v", got)
	}
}

func TestDatesWithEvents(t *testing.T) {
	events := []models.Event{
		{FirstDate: date(t, "2025-03-26"), Repeat: recurrence.Weekly},
		{FirstDate: date(t, "2025-04-15"), Repeat: recurrence.None},
		{FirstDate: date(t, "2025-01-31"), Repeat: recurrence.Monthly},
		{FirstDate: date(t, "2025-05-01"), Repeat: recurrence.Daily},
	}

	got := DatesWithEvents(events, date(t, "2025-04-10")).Sorted()
	// Weekly Wednesdays in April plus the one-off on the 15th; no 31st in April.
	want := []int{2, 9, 15, 16, 23, 30}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DatesWithEvents = %v, want %v", got, want)
	}
}

func TestDatesAssignedTo(t *testing.T) {
	events := []models.Event{
		{FirstDate: date(t, "2025-02-03"), Repeat: recurrence.Weekly, Members: []string{"alice", "bob"}},
		{FirstDate: date(t, "2025-02-10"), Repeat: recurrence.None, Members: []string{"bob"}},
		{FirstDate: date(t, "2024-02-29"), Repeat: recurrence.Yearly, Members: []string{"alice"}},
	}

	alice := DatesAssignedTo(events, date(t, "2025-02-01"), "alice").Sorted()
	if want := []int{3, 10, 17, 24}; !reflect.DeepEqual(alice, want) {
		t.Errorf("alice = %v, want %v", alice, want)
	}

	leap := DatesAssignedTo(events, date(t, "2028-02-01"), "alice")
	if !leap.Has(29) {
		t.Error("expected leap-day anniversary in February 2028")
	}

	if carol := DatesAssignedTo(events, date(t, "2025-02-01"), "carol"); len(carol) != 0 {
		t.Errorf("carol = %v, want none", carol.Sorted())
	}
}

func TestDaysInMonth(t *testing.T) {
	tests := map[string]int{
		"2025-01-15": 31,
		"2025-02-01": 28,
		"2024-02-29": 29,
		"2025-04-30": 30,
	}
	for in, want := range tests {
		if got := DaysInMonth(date(t, in)); got != want {
			t.Errorf("DaysInMonth(%s) = %d, want %d", in, got, want)
		}
	}
}
