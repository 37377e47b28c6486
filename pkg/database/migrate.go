package database

import (
	"fmt"

	"github.com/Eursukkul/menulink/internal/models"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Restaurant{},
		&models.ReservationTimeSlot{},
		&models.Reservation{},
		&models.MenuCategory{},
		&models.MenuItem{},
		&models.ContactInfo{},
		&models.OpeningHours{},
		&models.SocialLink{},
		&models.DeliveryLink{},
		&models.Customer{},
		&models.PageView{},
		&models.ButtonClick{},
		&models.Notification{},
	); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}

	// Partial index backing the live-reservation count for a slot occurrence.
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_reservation_live_slot
		ON reservations (restaurant_id, reservation_date, reservation_time)
		WHERE status <> 'cancelled'
	`).Error; err != nil {
		return fmt.Errorf("create reservation index: %w", err)
	}
	return nil
}
