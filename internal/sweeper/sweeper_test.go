package sweeper

import (
	"context"
	"errors"
	"testing"
	"time"

	domain "github.com/barberflow/booking-api/internal/domain/booking"
)

// purgeFake implements only the sweeper's slice of the repository.
type purgeFake struct {
	domain.Repository

	dates   []string // booking dates in the store, "2006-01-02"
	lastCut string
	err     error
}

func (f *purgeFake) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}

	f.lastCut = cutoff.Format("2006-01-02")

	var kept []string
	var removed int64
	for _, d := range f.dates {
		if d < f.lastCut {
			removed++
			continue
		}
		kept = append(kept, d)
	}
	f.dates = kept
	return removed, nil
}

func fixedNow(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestNextRun(t *testing.T) {
	s := New(nil, 3, 4, nil, nil, nil)

	cases := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{
			"before the hour",
			time.Date(2025, 6, 3, 1, 30, 0, 0, time.UTC),
			time.Date(2025, 6, 3, 4, 0, 0, 0, time.UTC),
		},
		{
			"after the hour",
			time.Date(2025, 6, 3, 10, 0, 0, 0, time.UTC),
			time.Date(2025, 6, 4, 4, 0, 0, 0, time.UTC),
		},
		{
			"exactly at the hour",
			time.Date(2025, 6, 3, 4, 0, 0, 0, time.UTC),
			time.Date(2025, 6, 4, 4, 0, 0, 0, time.UTC),
		},
	}

	for _, tc := range cases {
		if got := s.NextRun(tc.now); !got.Equal(tc.want) {
			t.Errorf("%s: NextRun = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestSweep_RetentionBoundary(t *testing.T) {
	now := time.Date(2025, 6, 10, 4, 0, 0, 0, time.UTC)

	// Retention 3 days: cutoff is 2025-06-07. A booking one day older than
	// the window goes; one day inside the window stays.
	fake := &purgeFake{dates: []string{
		"2025-06-06", // cutoff - 1: purged
		"2025-06-07", // cutoff itself: retained (strictly-before delete)
		"2025-06-08", // cutoff + 1: retained
	}}

	s := New(fake, 3, 4, nil, nil, fixedNow(now))
	s.Sweep(context.Background())

	if fake.lastCut != "2025-06-07" {
		t.Errorf("cutoff = %s, want 2025-06-07", fake.lastCut)
	}
	if len(fake.dates) != 2 {
		t.Fatalf("kept %v, want the two in-window dates", fake.dates)
	}
	if fake.dates[0] != "2025-06-07" || fake.dates[1] != "2025-06-08" {
		t.Errorf("kept %v", fake.dates)
	}
}

func TestSweep_Idempotent(t *testing.T) {
	now := time.Date(2025, 6, 10, 4, 0, 0, 0, time.UTC)
	fake := &purgeFake{dates: []string{"2025-06-01"}}

	s := New(fake, 3, 4, nil, nil, fixedNow(now))
	s.Sweep(context.Background())
	s.Sweep(context.Background())

	if len(fake.dates) != 0 {
		t.Errorf("kept %v, want none", fake.dates)
	}
}

func TestSweep_FailureDoesNotPanic(t *testing.T) {
	fake := &purgeFake{err: errors.New("connection refused")}

	s := New(fake, 3, 4, nil, nil, fixedNow(time.Date(2025, 6, 10, 4, 0, 0, 0, time.UTC)))
	s.Sweep(context.Background())
}

func TestRun_StopsOnCancel(t *testing.T) {
	fake := &purgeFake{}
	s := New(fake, 3, 4, nil, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop after cancellation")
	}
}
