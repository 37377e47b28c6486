package models

import (
	"time"

	"gorm.io/datatypes"
)

type MenuCategory struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	RestaurantID uint      `gorm:"not null;index" json:"restaurant_id"`
	Name         string    `gorm:"type:varchar(120);not null" json:"name"`
	Description  string    `gorm:"type:text" json:"description"`
	DisplayOrder int       `gorm:"not null;default:0" json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Items []MenuItem `gorm:"foreignKey:CategoryID" json:"items,omitempty"`
}

// MenuItem keeps allergens as raw JSON. Older writers stored a list, a comma
// joined string or a bare scalar; readers go through page.NormalizeAllergens.
type MenuItem struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	RestaurantID uint           `gorm:"not null;index" json:"restaurant_id"`
	CategoryID   uint           `gorm:"not null;index" json:"category_id"`
	Name         string         `gorm:"type:varchar(120);not null" json:"name"`
	Description  string         `gorm:"type:text" json:"description"`
	Price        float64        `gorm:"not null;default:0" json:"price"`
	ImageURL     string         `gorm:"type:varchar(512)" json:"image_url"`
	Allergens    datatypes.JSON `json:"allergens"`
	IsAvailable  bool           `gorm:"not null;default:true" json:"is_available"`
	DisplayOrder int            `gorm:"not null;default:0" json:"display_order"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}
