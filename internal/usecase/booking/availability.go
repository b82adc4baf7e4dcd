package booking

import (
	"context"
	"time"

	"github.com/barberflow/booking-api/internal/cache"
	domain "github.com/barberflow/booking-api/internal/domain/booking"
	"github.com/barberflow/booking-api/internal/httperr"
	"github.com/barberflow/booking-api/internal/schedule"
	"github.com/barberflow/booking-api/internal/timezone"
)

// Availability composes the slot generator with the reservation store to
// answer "which days" and "which times" for a master.
type Availability struct {
	registry *schedule.Registry
	repo     domain.Repository
	gen      *domain.Generator
	horizon  int
	cache    *cache.Availability
	now      func() time.Time
}

func NewAvailability(
	registry *schedule.Registry,
	repo domain.Repository,
	gen *domain.Generator,
	horizonDays int,
	avCache *cache.Availability,
	now func() time.Time,
) *Availability {
	if now == nil {
		now = time.Now
	}
	return &Availability{
		registry: registry,
		repo:     repo,
		gen:      gen,
		horizon:  horizonDays,
		cache:    avCache,
		now:      now,
	}
}

// Dates returns the bookable days for a master over today plus the booking
// horizon, inclusive. Only the master's active weekdays are included.
func (uc *Availability) Dates(
	ctx context.Context,
	master string,
) ([]domain.DateOption, error) {

	m, ok := uc.registry.Get(master)
	if !ok {
		return nil, httperr.ErrBusiness("master_not_found")
	}

	today := timezone.DateOnly(uc.now())

	options := make([]domain.DateOption, 0, uc.horizon+1)
	for i := 0; i <= uc.horizon; i++ {
		date := today.AddDate(0, 0, i)
		weekday := schedule.WeekdayIndex(date)

		if m.WorksOn(weekday) {
			options = append(options, domain.DateOption{
				Date:      date,
				DayOffset: i,
				Weekday:   weekday,
			})
		}
	}

	return options, nil
}

// Slots returns the free "HH:MM" start times for a master on a date: the
// generated grid minus the taken set, fetched in one query. The result is a
// snapshot; a claim that loses the race afterwards gets slot_taken, which is
// the intended resolution, not an error in this listing.
func (uc *Availability) Slots(
	ctx context.Context,
	master string,
	date time.Time,
) ([]string, error) {

	if _, ok := uc.registry.Get(master); !ok {
		return nil, httperr.ErrBusiness("master_not_found")
	}

	if cached, ok := uc.cache.GetSlots(ctx, master, date); ok {
		return cached, nil
	}

	candidates := uc.gen.SlotsFor(master, date)
	if len(candidates) == 0 {
		return []string{}, nil
	}

	taken, err := uc.repo.TakenTimes(ctx, master, date)
	if err != nil {
		return nil, err
	}

	free := make([]string, 0, len(candidates))
	for _, t := range candidates {
		if !taken[t] {
			free = append(free, t)
		}
	}

	uc.cache.SetSlots(ctx, master, date, free)

	return free, nil
}
