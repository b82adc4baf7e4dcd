package models

import "time"

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID   int64  `gorm:"not null;index:idx_bookings_user" json:"user_id"`
	Username string `gorm:"size:100" json:"username,omitempty"`

	ServiceID uint    `gorm:"not null" json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"service"`

	// Masters live in configuration, not in a table, so this is a plain
	// name reference. The composite unique index is the double-booking
	// guard: the database, not the application, decides claim races.
	Master      string    `gorm:"size:50;not null;uniqueIndex:idx_bookings_slot;index:idx_bookings_master_date" json:"master"`
	BookingDate time.Time `gorm:"type:date;not null;uniqueIndex:idx_bookings_slot;index:idx_bookings_date;index:idx_bookings_master_date" json:"booking_date"`
	BookingTime string    `gorm:"size:5;not null;uniqueIndex:idx_bookings_slot" json:"booking_time"`

	CreatedAt time.Time `json:"created_at"`
}
