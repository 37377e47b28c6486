package models

import "time"

// ReservationTimeSlot is a recurring weekly booking window. DayOfWeek follows
// time.Weekday (0 = Sunday). StartTime and EndTime are stored as "HH:MM".
type ReservationTimeSlot struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	RestaurantID    uint      `gorm:"not null;index:idx_slot_day" json:"restaurant_id"`
	DayOfWeek       int       `gorm:"not null;index:idx_slot_day" json:"day_of_week"`
	StartTime       string    `gorm:"type:varchar(5);not null" json:"start_time"`
	EndTime         string    `gorm:"type:varchar(5);not null" json:"end_time"`
	MaxReservations int       `gorm:"not null;default:10" json:"max_reservations"`
	MaxPartySize    int       `gorm:"not null;default:8" json:"max_party_size"`
	IsActive        bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (ReservationTimeSlot) TableName() string {
	return "reservation_time_slots"
}
