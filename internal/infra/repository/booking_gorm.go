package repository

import (
	"context"
	"errors"
	"log"
	"time"

	"gorm.io/gorm"

	domain "github.com/barberflow/booking-api/internal/domain/booking"
	"github.com/barberflow/booking-api/internal/httperr"
	"github.com/barberflow/booking-api/internal/models"
)

const dateLayout = "2006-01-02"

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Services
// --------------------------------------------------

func (r *BookingGormRepository) ListServices(
	ctx context.Context,
) ([]models.Service, error) {

	var services []models.Service
	if err := r.db.WithContext(ctx).
		Order("id ASC").
		Find(&services).Error; err != nil {
		return nil, r.storage("list services", err)
	}
	return services, nil
}

func (r *BookingGormRepository) GetService(
	ctx context.Context,
	id uint,
) (*models.Service, error) {

	var service models.Service
	if err := r.db.WithContext(ctx).First(&service, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("service_not_found")
		}
		return nil, r.storage("get service", err)
	}
	return &service, nil
}

// --------------------------------------------------
// Bookings
// --------------------------------------------------

// CreateBooking inserts the booking and lets the composite unique index on
// (master, booking_date, booking_time) arbitrate concurrent claims. The
// duplicate-key translation is the only conflict signal; no prior read is
// consulted.
func (r *BookingGormRepository) CreateBooking(
	ctx context.Context,
	b *models.Booking,
) error {

	if err := r.db.WithContext(ctx).Create(b).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return httperr.ErrBusiness("slot_taken")
		}
		return r.storage("create booking", err)
	}
	return nil
}

func (r *BookingGormRepository) IsTaken(
	ctx context.Context,
	master string,
	date time.Time,
	timeOfDay string,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where(
			"master = ? AND booking_date = ? AND booking_time = ?",
			master, date.Format(dateLayout), timeOfDay,
		).
		Count(&count).Error; err != nil {
		return false, r.storage("is taken", err)
	}

	return count > 0, nil
}

func (r *BookingGormRepository) TakenTimes(
	ctx context.Context,
	master string,
	date time.Time,
) (map[string]bool, error) {

	var times []string
	if err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("master = ? AND booking_date = ?", master, date.Format(dateLayout)).
		Pluck("booking_time", &times).Error; err != nil {
		return nil, r.storage("taken times", err)
	}

	taken := make(map[string]bool, len(times))
	for _, t := range times {
		taken[t] = true
	}
	return taken, nil
}

func (r *BookingGormRepository) BookingsOfUser(
	ctx context.Context,
	userID int64,
	from time.Time,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Service").
		Where("user_id = ? AND booking_date >= ?", userID, from.Format(dateLayout)).
		Order("booking_date ASC, booking_time ASC").
		Find(&bookings).Error; err != nil {
		return nil, r.storage("bookings of user", err)
	}

	return bookings, nil
}

func (r *BookingGormRepository) BookingsOfDate(
	ctx context.Context,
	date time.Time,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Service").
		Where("booking_date = ?", date.Format(dateLayout)).
		Order("booking_time ASC, master ASC").
		Find(&bookings).Error; err != nil {
		return nil, r.storage("bookings of date", err)
	}

	return bookings, nil
}

func (r *BookingGormRepository) FindUserBooking(
	ctx context.Context,
	bookingID uint,
	userID int64,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", bookingID, userID).
		First(&b).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, r.storage("find user booking", err)
	}

	return &b, nil
}

func (r *BookingGormRepository) DeleteBooking(
	ctx context.Context,
	bookingID uint,
	userID int64,
) (bool, error) {

	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", bookingID, userID).
		Delete(&models.Booking{})

	if res.Error != nil {
		return false, r.storage("delete booking", res.Error)
	}

	return res.RowsAffected > 0, nil
}

func (r *BookingGormRepository) PurgeOlderThan(
	ctx context.Context,
	cutoff time.Time,
) (int64, error) {

	res := r.db.WithContext(ctx).
		Where("booking_date < ?", cutoff.Format(dateLayout)).
		Delete(&models.Booking{})

	if res.Error != nil {
		return 0, r.storage("purge old bookings", res.Error)
	}

	return res.RowsAffected, nil
}

// storage logs the raw error once at the store boundary; callers only see
// the failed operation.
func (r *BookingGormRepository) storage(op string, err error) error {
	log.Printf("booking store: %s failed: %v", op, err)
	return err
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
