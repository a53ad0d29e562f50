package database

import (
	"log"

	"github.com/glowslot/booking-platform/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewPostgresDB(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Vendor{},
		&models.Customer{},
		&models.Booking{},
		&models.Transaction{},
		&models.LoyaltyTransaction{},
		&models.PromoCode{},
		&models.PromoUsage{},
		&models.FlashDeal{},
		&models.FlashDealBooking{},
	); err != nil {
		log.Fatalf("failed to auto-migrate: %v", err)
	}

	// Partial unique index: one active booking per vendor slot. Cancelled,
	// completed and no-show bookings release the slot.
	db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_booking_active_slot
		ON bookings (vendor_id, date, time_slot)
		WHERE status IN ('pending', 'confirmed', 'in_progress')
	`)

	// One flash deal claim per customer per deal, enforced under concurrency.
	db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_flash_deal_claim
		ON flash_deal_bookings (deal_id, customer_id)
	`)

	// Concurrent redemptions of the same promo code by one customer compute
	// the same ordinal and collide here instead of exceeding the user limit.
	db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_promo_usage_ordinal
		ON promo_usages (promo_code_id, customer_id, usage_ordinal)
	`)

	return db
}
