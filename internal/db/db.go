package db

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/barberflow/booking-api/internal/config"
	"github.com/barberflow/booking-api/internal/models"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
		// Duplicate-key violations must surface as gorm.ErrDuplicatedKey:
		// the unique index on (master, booking_date, booking_time) is the
		// authoritative conflict check for slot claims.
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.Service{},
		&models.Booking{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	seedServices(db)

	return db
}

// seedServices upserts the fixed service catalog. Safe to run on every start.
func seedServices(db *gorm.DB) {
	services := []models.Service{
		{Name: "Haircut"},
		{Name: "Beard trim"},
		{Name: "Combo (haircut + beard)"},
	}

	for _, s := range services {
		if err := db.
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "name"}},
				DoNothing: true,
			}).
			Create(&s).Error; err != nil {
			log.Printf("service seed failed for %q: %v", s.Name, err)
		}
	}
}
