package recurrence

import (
	"errors"
	"testing"
	"time"
)

func TestOccurrences_AgreesWithMatches(t *testing.T) {
	firsts := []string{"2024-01-31", "2024-02-29", "2025-03-26", "2025-12-31"}
	from := day(t, "2023-12-01")
	to := day(t, "2028-03-31")

	for _, f := range firsts {
		first := day(t, f)
		for _, rule := range []Rule{None, Daily, Weekly, Monthly, Yearly, Unrecognized} {
			got, err := Occurrences(first, rule, from, to)
			if err != nil {
				t.Fatalf("Occurrences(%s, %s): %v", f, rule, err)
			}
			set := make(map[string]bool, len(got))
			for _, d := range got {
				set[d.Format(time.DateOnly)] = true
			}
			for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
				key := d.Format(time.DateOnly)
				if set[key] != Matches(first, rule, d) {
					t.Fatalf("first=%s rule=%s day=%s: Occurrences=%v Matches=%v",
						f, rule, key, set[key], Matches(first, rule, d))
				}
			}
		}
	}
}

func TestOccurrences_Weekly(t *testing.T) {
	got, err := Occurrences(day(t, "2025-03-26"), Weekly, day(t, "2025-03-01"), day(t, "2025-04-16"))
	if err != nil {
		t.Fatalf("Occurrences: %v", err)
	}
	want := []string{"2025-03-26", "2025-04-02", "2025-04-09", "2025-04-16"}
	if len(got) != len(want) {
		t.Fatalf("got %d occurrences, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i].Format(time.DateOnly) != want[i] {
			t.Errorf("occurrence %d = %s, want %s", i, got[i].Format(time.DateOnly), want[i])
		}
	}
}

func TestOccurrences_InvalidRange(t *testing.T) {
	_, err := Occurrences(day(t, "2025-03-26"), Daily, day(t, "2025-04-02"), day(t, "2025-04-01"))
	if !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("err = %v, want ErrInvalidRange", err)
	}
}

func TestNext(t *testing.T) {
	tests := []struct {
		name   string
		first  string
		rule   Rule
		after  string
		want   string
		wantOK bool
	}{
		{"before first date", "2025-03-26", None, "2025-03-01", "2025-03-26", true},
		{"none already passed", "2025-03-26", None, "2025-03-26", "", false},
		{"weekly", "2025-03-26", Weekly, "2025-03-26", "2025-04-02", true},
		{"monthly skips short month", "2025-01-31", Monthly, "2025-03-31", "2025-05-31", true},
		{"daily", "2025-03-26", Daily, "2025-06-01 22:00:00", "2025-06-02", true},
		{"unrecognized", "2025-03-26", Unrecognized, "2025-04-01", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Next(day(t, tt.first), tt.rule, day(t, tt.after))
			if ok != tt.wantOK {
				t.Fatalf("Next ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got.Format(time.DateOnly) != tt.want {
				t.Errorf("Next = %s, want %s", got.Format(time.DateOnly), tt.want)
			}
		})
	}
}
