package booking

import (
	"context"

	"github.com/barberflow/booking-api/internal/audit"
	"github.com/barberflow/booking-api/internal/cache"
	domain "github.com/barberflow/booking-api/internal/domain/booking"
	"github.com/barberflow/booking-api/internal/metrics"
)

// Cancel removes a booking on behalf of its owner. A missing booking and a
// booking owned by someone else both report "not removed"; the caller cannot
// probe other users' bookings.
type Cancel struct {
	repo    domain.Repository
	audit   *audit.Dispatcher
	metrics *metrics.Collector
	cache   *cache.Availability
}

func NewCancel(
	repo domain.Repository,
	auditDispatcher *audit.Dispatcher,
	collector *metrics.Collector,
	avCache *cache.Availability,
) *Cancel {
	return &Cancel{
		repo:    repo,
		audit:   auditDispatcher,
		metrics: collector,
		cache:   avCache,
	}
}

func (uc *Cancel) Execute(
	ctx context.Context,
	bookingID uint,
	userID int64,
) (bool, error) {

	// Scoped to the owner, so the lookup leaks nothing the delete would not.
	b, err := uc.repo.FindUserBooking(ctx, bookingID, userID)
	if err != nil {
		return false, err
	}
	if b == nil {
		return false, nil
	}

	removed, err := uc.repo.DeleteBooking(ctx, bookingID, userID)
	if err != nil {
		return false, err
	}
	if !removed {
		return false, nil
	}

	if uc.metrics != nil {
		uc.metrics.BookingCancelled()
	}
	uc.cache.Invalidate(ctx, b.Master, b.BookingDate)
	if uc.audit != nil {
		uc.audit.Dispatch(audit.Event{
			UserID:   &userID,
			Action:   "booking_cancelled",
			Entity:   "booking",
			EntityID: &bookingID,
		})
	}

	return true, nil
}
