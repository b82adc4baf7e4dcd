package booking

import (
	"context"
	"time"

	"github.com/barberflow/booking-api/internal/models"
)

// Repository is the persistence contract for the reservation store.
//
// CreateBooking must rely on the storage-level uniqueness constraint for the
// (master, booking_date, booking_time) triple: when two claims race, exactly
// one insert commits and the loser gets the slot_taken business error. A
// read-then-insert implementation is not an acceptable substitute.
type Repository interface {
	// -------- Services --------
	ListServices(ctx context.Context) ([]models.Service, error)
	GetService(ctx context.Context, id uint) (*models.Service, error)

	// -------- Bookings --------
	CreateBooking(ctx context.Context, b *models.Booking) error

	IsTaken(ctx context.Context, master string, date time.Time, timeOfDay string) (bool, error)

	// TakenTimes returns every occupied "HH:MM" for a master and date in a
	// single query, so availability is one set-difference instead of one
	// existence check per candidate slot.
	TakenTimes(ctx context.Context, master string, date time.Time) (map[string]bool, error)

	BookingsOfUser(ctx context.Context, userID int64, from time.Time) ([]models.Booking, error)
	BookingsOfDate(ctx context.Context, date time.Time) ([]models.Booking, error)

	FindUserBooking(ctx context.Context, bookingID uint, userID int64) (*models.Booking, error)

	// DeleteBooking removes the booking only when owned by userID. Not-found
	// and not-owned are indistinguishable to the caller.
	DeleteBooking(ctx context.Context, bookingID uint, userID int64) (bool, error)

	// PurgeOlderThan deletes bookings dated strictly before cutoff.
	PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
