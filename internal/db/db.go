package db

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
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
		&models.Salon{},
		&models.Staff{},
		&models.Service{},
		&models.AvailabilityWindow{},
		&models.Client{},
		&models.Reservation{},
		&models.ReservationService{},
		&models.ScoreEvent{},
		&models.ScoreSnapshot{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	if err := db.Exec(`
        UPDATE salons
        SET timezone = 'America/Sao_Paulo'
        WHERE timezone IS NULL OR timezone = ''
    `).Error; err != nil {
		log.Fatalf("failed to backfill salon timezones: %v", err)
	}

	// Storage-level backstop for the no-overlap invariant: even if two
	// processes race past the row lock, the second insert fails with 23P01.
	// Capacity is only held by confirmed/late/completed rows; pending joins
	// through the pending_blocks_slots check done in the transaction.
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`).Error; err != nil {
		log.Fatalf("failed to create btree_gist extension: %v", err)
	}

	// ADD CONSTRAINT has no IF NOT EXISTS; a duplicate on restart is fine.
	err = db.Exec(`
        ALTER TABLE reservations
        ADD CONSTRAINT reservations_no_overlap
        EXCLUDE USING gist (
            staff_id WITH =,
            tsrange(start_time, end_time) WITH &&
        )
        WHERE (status IN ('confirmed', 'late', 'completed'))
    `).Error
	if err != nil && !httperr.IsDuplicateObject(err) {
		log.Fatalf("failed to add reservations_no_overlap constraint: %v", err)
	}

	return db
}
