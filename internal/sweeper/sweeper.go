// Package sweeper runs the retention purge: once a day, bookings whose date
// fell out of the retention window are deleted in one bulk statement.
package sweeper

import (
	"context"
	"log"
	"time"

	"github.com/barberflow/booking-api/internal/audit"
	domain "github.com/barberflow/booking-api/internal/domain/booking"
	"github.com/barberflow/booking-api/internal/metrics"
	"github.com/barberflow/booking-api/internal/timezone"
)

type Sweeper struct {
	Repo          domain.Repository
	RetentionDays int
	Hour          int // local hour of day to run at
	Audit         *audit.Dispatcher
	Metrics       *metrics.Collector
	Now           func() time.Time
}

func New(
	repo domain.Repository,
	retentionDays int,
	hour int,
	auditDispatcher *audit.Dispatcher,
	collector *metrics.Collector,
	now func() time.Time,
) *Sweeper {
	if now == nil {
		now = time.Now
	}
	return &Sweeper{
		Repo:          repo,
		RetentionDays: retentionDays,
		Hour:          hour,
		Audit:         auditDispatcher,
		Metrics:       collector,
		Now:           now,
	}
}

// Run blocks until ctx is cancelled, purging once per day at the configured
// hour. A failed sweep is logged and retried on the next scheduled run; the
// purge itself is a single bulk delete, so an abandoned in-flight run leaves
// no partial state.
func (s *Sweeper) Run(ctx context.Context) {
	for {
		next := s.NextRun(s.Now())
		timer := time.NewTimer(next.Sub(s.Now()))

		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			s.Sweep(ctx)
		}
	}
}

// NextRun returns the next occurrence of the configured hour after now.
func (s *Sweeper) NextRun(now time.Time) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), s.Hour, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// Cutoff is the oldest booking date still retained.
func (s *Sweeper) Cutoff(now time.Time) time.Time {
	return timezone.DateOnly(now).AddDate(0, 0, -s.RetentionDays)
}

// Sweep performs one purge. Idempotent: with no eligible rows it is a no-op.
func (s *Sweeper) Sweep(ctx context.Context) {
	cutoff := s.Cutoff(s.Now())

	deleted, err := s.Repo.PurgeOlderThan(ctx, cutoff)
	if err != nil {
		log.Printf("retention sweep failed: %v", err)
		if s.Metrics != nil {
			s.Metrics.SweepFailed()
		}
		return
	}

	if deleted > 0 {
		log.Printf("retention sweep removed %d bookings older than %s",
			deleted, cutoff.Format("2006-01-02"))
	}

	if s.Metrics != nil {
		s.Metrics.BookingsPurged(deleted)
	}
	if s.Audit != nil && deleted > 0 {
		s.Audit.Dispatch(audit.Event{
			Action: "bookings_purged",
			Entity: "booking",
			Metadata: map[string]any{
				"cutoff":  cutoff.Format("2006-01-02"),
				"deleted": deleted,
			},
		})
	}
}
