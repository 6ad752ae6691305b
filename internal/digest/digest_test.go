package digest

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/mmynk/choretracker/internal/models"
	"github.com/mmynk/choretracker/internal/recurrence"
)

type memorySource struct {
	groups []*models.Group
	events map[string][]models.Event
}

func (m *memorySource) ListGroups(ctx context.Context) ([]*models.Group, error) {
	return m.groups, nil
}

func (m *memorySource) ListEventsByGroup(ctx context.Context, groupID string) ([]models.Event, error) {
	return m.events[groupID], nil
}

type recordingSender struct {
	messages []string
	err      error
}

func (r *recordingSender) Send(ctx context.Context, text string) error {
	if r.err != nil {
		return r.err
	}
	r.messages = append(r.messages, text)
	return nil
}

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := recurrence.ParseDate(s)
	if err != nil {
		t.Fatalf("bad date %q: %v", s, err)
	}
	return d
}

func newSource(t *testing.T) *memorySource {
	return &memorySource{
		groups: []*models.Group{
			{ID: "g1", Name: "Roommates"},
			{ID: "g2", Name: "Office"},
		},
		events: map[string][]models.Event{
			"g1": {
				{Name: "Dishes", FirstDate: date(t, "2025-03-01"), Repeat: recurrence.Daily, IsComplete: true},
				{Name: "Trash", FirstDate: date(t, "2025-03-05"), Repeat: recurrence.Weekly, Members: []string{"alice", "bob"}},
			},
			"g2": {
				{Name: "Plants", FirstDate: date(t, "2025-03-06"), Repeat: recurrence.Weekly},
			},
		},
	}
}

func TestCompose(t *testing.T) {
	source := newSource(t)

	// 2025-03-26 is a Wednesday: the Roommates chores fall on it, the Office one does not.
	text, err := Compose(context.Background(), source, date(t, "2025-03-26"))
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}

	want := "Chores for Wednesday, Mar 26\n\nRoommates\n  [ ] Trash (alice, bob)\n  [x] Dishes"
	if text != want {
		t.Errorf("unexpected digest:\n%s\nwant:\n%s", text, want)
	}
}

func TestCompose_GroupTimezone(t *testing.T) {
	source := newSource(t)
	source.groups[1].Timezone = "Pacific/Kiritimati"

	// 20:00 UTC on Wednesday is already Thursday morning at UTC+14.
	now := time.Date(2025, 3, 26, 20, 0, 0, 0, time.UTC)
	text, err := Compose(context.Background(), source, now)
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}

	if !strings.Contains(text, "Trash") {
		t.Errorf("Roommates has no time zone and should see Wednesday's Trash:\n%s", text)
	}
	if !strings.Contains(text, "Office\n  [ ] Plants") {
		t.Errorf("Office should see Thursday's Plants:\n%s", text)
	}
}

func TestCompose_NothingScheduled(t *testing.T) {
	source := &memorySource{groups: []*models.Group{{ID: "g1", Name: "Roommates"}}}

	text, err := Compose(context.Background(), source, date(t, "2025-03-26"))
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}
	if text != "" {
		t.Errorf("expected empty digest, got %q", text)
	}
}

func TestScheduler_SendsOncePerDay(t *testing.T) {
	sender := &recordingSender{}
	s := NewScheduler(newSource(t), sender, 8, time.Minute)
	ctx := context.Background()

	var now time.Time
	s.now = func() time.Time { return now }

	now = time.Date(2025, 3, 26, 7, 59, 0, 0, time.UTC)
	s.check(ctx)
	if len(sender.messages) != 0 {
		t.Fatalf("sent before the digest hour: %v", sender.messages)
	}

	now = time.Date(2025, 3, 26, 8, 0, 0, 0, time.UTC)
	s.check(ctx)
	now = time.Date(2025, 3, 26, 21, 0, 0, 0, time.UTC)
	s.check(ctx)
	if len(sender.messages) != 1 {
		t.Fatalf("expected 1 message on the first day, got %d", len(sender.messages))
	}

	now = time.Date(2025, 3, 27, 9, 0, 0, 0, time.UTC)
	s.check(ctx)
	if len(sender.messages) != 2 {
		t.Fatalf("expected a second message the next day, got %d", len(sender.messages))
	}
	if !strings.Contains(sender.messages[1], "Plants") {
		t.Errorf("Thursday digest should list Plants, got %q", sender.messages[1])
	}
}

func TestScheduler_RetriesFailedSend(t *testing.T) {
	sender := &recordingSender{err: errors.New("network down")}
	s := NewScheduler(newSource(t), sender, 8, time.Minute)
	s.now = func() time.Time { return time.Date(2025, 3, 26, 8, 30, 0, 0, time.UTC) }
	ctx := context.Background()

	s.check(ctx)
	if !s.lastSent.IsZero() {
		t.Fatal("failed send should not count as sent")
	}

	sender.err = nil
	s.check(ctx)
	if len(sender.messages) != 1 {
		t.Fatalf("expected the retry to send, got %d messages", len(sender.messages))
	}
}

func TestScheduler_StopsOnCancel(t *testing.T) {
	s := NewScheduler(&memorySource{}, &recordingSender{}, 8, time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop after cancel")
	}
}
