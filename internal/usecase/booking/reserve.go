package booking

import (
	"context"
	"time"

	"github.com/barberflow/booking-api/internal/audit"
	"github.com/barberflow/booking-api/internal/cache"
	domain "github.com/barberflow/booking-api/internal/domain/booking"
	"github.com/barberflow/booking-api/internal/httperr"
	"github.com/barberflow/booking-api/internal/metrics"
	"github.com/barberflow/booking-api/internal/models"
	"github.com/barberflow/booking-api/internal/schedule"
	"github.com/barberflow/booking-api/internal/timezone"
)

type ReserveInput struct {
	UserID    int64
	Username  string
	ServiceID uint
	Master    string
	Date      time.Time
	Time      string // "HH:MM"
}

// Reserve claims one slot. Each request is validated independently against
// the registry and the slot grid; the store's uniqueness constraint settles
// concurrent claims for the same triple.
type Reserve struct {
	registry *schedule.Registry
	repo     domain.Repository
	gen      *domain.Generator
	audit    *audit.Dispatcher
	metrics  *metrics.Collector
	cache    *cache.Availability
}

func NewReserve(
	registry *schedule.Registry,
	repo domain.Repository,
	gen *domain.Generator,
	auditDispatcher *audit.Dispatcher,
	collector *metrics.Collector,
	avCache *cache.Availability,
) *Reserve {
	return &Reserve{
		registry: registry,
		repo:     repo,
		gen:      gen,
		audit:    auditDispatcher,
		metrics:  collector,
		cache:    avCache,
	}
}

func (uc *Reserve) Execute(
	ctx context.Context,
	in ReserveInput,
) (*models.Booking, error) {

	if _, ok := uc.registry.Get(in.Master); !ok {
		return nil, httperr.ErrBusiness("master_not_found")
	}

	service, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		return nil, err
	}

	// The client picked this time from an earlier listing, but that listing
	// is a snapshot. Re-check grid membership (weekday, window, alignment,
	// not elapsed) before touching the store.
	if !uc.gen.IsValidSlot(in.Master, in.Date, in.Time) {
		return nil, httperr.ErrBusiness("invalid_slot")
	}

	b := &models.Booking{
		UserID:      in.UserID,
		Username:    in.Username,
		ServiceID:   service.ID,
		Master:      in.Master,
		BookingDate: timezone.DateOnly(in.Date),
		BookingTime: in.Time,
	}

	if err := uc.repo.CreateBooking(ctx, b); err != nil {
		if httperr.IsBusiness(err, "slot_taken") {
			if uc.metrics != nil {
				uc.metrics.BookingConflict()
			}
			uc.dispatch(audit.Event{
				UserID: &in.UserID,
				Action: "booking_conflict",
				Entity: "booking",
				Metadata: map[string]any{
					"master": in.Master,
					"date":   b.BookingDate.Format("2006-01-02"),
					"time":   in.Time,
				},
			})
		}
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.BookingCreated()
	}
	uc.cache.Invalidate(ctx, in.Master, b.BookingDate)
	uc.dispatch(audit.Event{
		UserID:   &in.UserID,
		Action:   "booking_created",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	b.Service = *service
	return b, nil
}

func (uc *Reserve) dispatch(ev audit.Event) {
	if uc.audit != nil {
		uc.audit.Dispatch(ev)
	}
}
