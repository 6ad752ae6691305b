package digest

import (
	"context"
	"log/slog"
	"time"

	"github.com/mmynk/choretracker/internal/metrics"
	"github.com/mmynk/choretracker/internal/recurrence"
)

// Scheduler sends the digest once a day, on the first check at or after hour.
type Scheduler struct {
	source        Source
	sender        Sender
	hour          int
	checkInterval time.Duration
	now           func() time.Time

	lastSent time.Time
}

// NewScheduler creates a scheduler. hour is local to the server clock.
func NewScheduler(source Source, sender Sender, hour int, checkInterval time.Duration) *Scheduler {
	return &Scheduler{
		source:        source,
		sender:        sender,
		hour:          hour,
		checkInterval: checkInterval,
		now:           time.Now,
	}
}

// Run checks on every tick until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) {
	slog.Info("Digest scheduler started", "hour", s.hour, "check_interval", s.checkInterval)
	ticker := time.NewTicker(s.checkInterval)
	defer ticker.Stop()

	s.check(ctx)
	for {
		select {
		case <-ctx.Done():
			slog.Info("Digest scheduler stopped")
			return
		case <-ticker.C:
			s.check(ctx)
		}
	}
}

// check sends today's digest if it is due and has not been sent yet. A failed
// send is retried on the next check.
func (s *Scheduler) check(ctx context.Context) {
	now := s.now()
	today := recurrence.Date(now)
	if now.Hour() < s.hour || s.lastSent.Equal(today) {
		return
	}

	text, err := Compose(ctx, s.source, now)
	if err != nil {
		slog.Error("Failed to compose digest", "error", err)
		metrics.DigestMessages.WithLabelValues("failed").Inc()
		return
	}
	if text == "" {
		slog.Debug("Nothing scheduled today, digest skipped")
		metrics.DigestMessages.WithLabelValues("empty").Inc()
		s.lastSent = today
		return
	}

	if err := s.sender.Send(ctx, text); err != nil {
		slog.Error("Failed to send digest", "error", err)
		metrics.DigestMessages.WithLabelValues("failed").Inc()
		return
	}
	metrics.DigestMessages.WithLabelValues("sent").Inc()
	s.lastSent = today
	slog.Info("Digest sent", "date", today.Format(time.DateOnly))
}
