package booking

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/barberflow/booking-api/internal/httperr"
	"github.com/barberflow/booking-api/internal/models"
)

// fakeRepo is an in-memory reservation store. Like the real store it
// enforces slot uniqueness itself, under a lock, so concurrent claim tests
// exercise the same contract the database constraint provides.
type fakeRepo struct {
	mu       sync.Mutex
	services map[uint]models.Service
	bookings map[uint]models.Booking
	nextID   uint

	failWith error // when set, every storage call fails
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		services: map[uint]models.Service{
			1: {ID: 1, Name: "Haircut"},
			2: {ID: 2, Name: "Beard trim"},
		},
		bookings: map[uint]models.Booking{},
	}
}

func dateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

func (f *fakeRepo) ListServices(ctx context.Context) ([]models.Service, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]models.Service, 0, len(f.services))
	for _, s := range f.services {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeRepo) GetService(ctx context.Context, id uint) (*models.Service, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	s, ok := f.services[id]
	if !ok {
		return nil, httperr.ErrBusiness("service_not_found")
	}
	return &s, nil
}

func (f *fakeRepo) CreateBooking(ctx context.Context, b *models.Booking) error {
	if f.failWith != nil {
		return f.failWith
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	for _, existing := range f.bookings {
		if existing.Master == b.Master &&
			dateKey(existing.BookingDate) == dateKey(b.BookingDate) &&
			existing.BookingTime == b.BookingTime {
			return httperr.ErrBusiness("slot_taken")
		}
	}

	f.nextID++
	b.ID = f.nextID
	b.CreatedAt = time.Now()
	f.bookings[b.ID] = *b
	return nil
}

func (f *fakeRepo) IsTaken(ctx context.Context, master string, date time.Time, timeOfDay string) (bool, error) {
	if f.failWith != nil {
		return false, f.failWith
	}

	taken, err := f.TakenTimes(ctx, master, date)
	if err != nil {
		return false, err
	}
	return taken[timeOfDay], nil
}

func (f *fakeRepo) TakenTimes(ctx context.Context, master string, date time.Time) (map[string]bool, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	taken := map[string]bool{}
	for _, b := range f.bookings {
		if b.Master == master && dateKey(b.BookingDate) == dateKey(date) {
			taken[b.BookingTime] = true
		}
	}
	return taken, nil
}

func (f *fakeRepo) BookingsOfUser(ctx context.Context, userID int64, from time.Time) ([]models.Booking, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	var out []models.Booking
	for _, b := range f.bookings {
		if b.UserID == userID && dateKey(b.BookingDate) >= dateKey(from) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].BookingDate.Equal(out[j].BookingDate) {
			return out[i].BookingDate.Before(out[j].BookingDate)
		}
		return out[i].BookingTime < out[j].BookingTime
	})
	return out, nil
}

func (f *fakeRepo) BookingsOfDate(ctx context.Context, date time.Time) ([]models.Booking, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	var out []models.Booking
	for _, b := range f.bookings {
		if dateKey(b.BookingDate) == dateKey(date) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].BookingTime != out[j].BookingTime {
			return out[i].BookingTime < out[j].BookingTime
		}
		return out[i].Master < out[j].Master
	})
	return out, nil
}

func (f *fakeRepo) FindUserBooking(ctx context.Context, bookingID uint, userID int64) (*models.Booking, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	b, ok := f.bookings[bookingID]
	if !ok || b.UserID != userID {
		return nil, nil
	}
	return &b, nil
}

func (f *fakeRepo) DeleteBooking(ctx context.Context, bookingID uint, userID int64) (bool, error) {
	if f.failWith != nil {
		return false, f.failWith
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	b, ok := f.bookings[bookingID]
	if !ok || b.UserID != userID {
		return false, nil
	}
	delete(f.bookings, bookingID)
	return true, nil
}

func (f *fakeRepo) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	if f.failWith != nil {
		return 0, f.failWith
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	var removed int64
	for id, b := range f.bookings {
		if dateKey(b.BookingDate) < dateKey(cutoff) {
			delete(f.bookings, id)
			removed++
		}
	}
	return removed, nil
}

func (f *fakeRepo) countSlot(master string, date time.Time, timeOfDay string) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	n := 0
	for _, b := range f.bookings {
		if b.Master == master && dateKey(b.BookingDate) == dateKey(date) && b.BookingTime == timeOfDay {
			n++
		}
	}
	return n
}
