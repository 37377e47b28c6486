package models

import "time"

type Customer struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	RestaurantID uint      `gorm:"not null;uniqueIndex:idx_customer_email" json:"restaurant_id"`
	Email        string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_customer_email" json:"email"`
	Name         string    `gorm:"type:varchar(120)" json:"name"`
	Phone        string    `gorm:"type:varchar(40)" json:"phone"`
	CreatedAt    time.Time `json:"created_at"`
}

type PageView struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	RestaurantID uint      `gorm:"not null;index" json:"restaurant_id"`
	Referrer     string    `gorm:"type:varchar(512)" json:"referrer"`
	UserAgent    string    `gorm:"type:varchar(512)" json:"user_agent"`
	CreatedAt    time.Time `gorm:"index" json:"created_at"`
}

type ButtonClick struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	RestaurantID uint      `gorm:"not null;index" json:"restaurant_id"`
	ButtonType   string    `gorm:"type:varchar(40);not null" json:"button_type"`
	TargetURL    string    `gorm:"type:varchar(512)" json:"target_url"`
	CreatedAt    time.Time `gorm:"index" json:"created_at"`
}

type NotificationType string

const (
	NotificationNewReservation NotificationType = "new_reservation"
	NotificationThankYou       NotificationType = "thank_you"
)

type Notification struct {
	ID            uint             `gorm:"primaryKey" json:"id"`
	RestaurantID  uint             `gorm:"not null;index" json:"restaurant_id"`
	ReservationID *uint            `json:"reservation_id,omitempty"`
	Type          NotificationType `gorm:"type:varchar(30);not null" json:"type"`
	Recipient     string           `gorm:"type:varchar(255)" json:"recipient"`
	Message       string           `gorm:"type:text" json:"message"`
	IsRead        bool             `gorm:"not null;default:false" json:"is_read"`
	CreatedAt     time.Time        `json:"created_at"`
}
