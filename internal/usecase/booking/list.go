package booking

import (
	"context"
	"time"

	domain "github.com/barberflow/booking-api/internal/domain/booking"
	"github.com/barberflow/booking-api/internal/models"
	"github.com/barberflow/booking-api/internal/timezone"
)

// Listings serves the user-history and admin-day read paths.
type Listings struct {
	repo domain.Repository
	now  func() time.Time
}

func NewListings(repo domain.Repository, now func() time.Time) *Listings {
	if now == nil {
		now = time.Now
	}
	return &Listings{repo: repo, now: now}
}

// MyBookings returns the user's bookings from today onward, ordered by
// (date, time).
func (uc *Listings) MyBookings(
	ctx context.Context,
	userID int64,
) ([]models.Booking, error) {
	today := timezone.DateOnly(uc.now())
	return uc.repo.BookingsOfUser(ctx, userID, today)
}

// OnDate returns every booking for one day, ordered by (time, master).
func (uc *Listings) OnDate(
	ctx context.Context,
	date time.Time,
) ([]models.Booking, error) {
	return uc.repo.BookingsOfDate(ctx, date)
}
