package models

import "time"

type ContactInfo struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	RestaurantID uint      `gorm:"not null;uniqueIndex" json:"restaurant_id"`
	Phone        string    `gorm:"type:varchar(40)" json:"phone"`
	Email        string    `gorm:"type:varchar(255)" json:"email"`
	Address      string    `gorm:"type:varchar(255)" json:"address"`
	City         string    `gorm:"type:varchar(120)" json:"city"`
	MapURL       string    `gorm:"type:varchar(512)" json:"map_url"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (ContactInfo) TableName() string {
	return "contact_info"
}

type OpeningHours struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	RestaurantID uint   `gorm:"not null;index" json:"restaurant_id"`
	DayOfWeek    int    `gorm:"not null" json:"day_of_week"`
	OpenTime     string `gorm:"type:varchar(5)" json:"open_time"`
	CloseTime    string `gorm:"type:varchar(5)" json:"close_time"`
	IsClosed     bool   `gorm:"not null;default:false" json:"is_closed"`
}

func (OpeningHours) TableName() string {
	return "opening_hours"
}

type SocialLink struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	RestaurantID uint      `gorm:"not null;index" json:"restaurant_id"`
	Platform     string    `gorm:"type:varchar(40);not null" json:"platform"`
	URL          string    `gorm:"type:varchar(512);not null" json:"url"`
	DisplayOrder int       `gorm:"not null;default:0" json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
}

type DeliveryLink struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	RestaurantID uint      `gorm:"not null;index" json:"restaurant_id"`
	Platform     string    `gorm:"type:varchar(40);not null" json:"platform"`
	URL          string    `gorm:"type:varchar(512);not null" json:"url"`
	DisplayOrder int       `gorm:"not null;default:0" json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
}
