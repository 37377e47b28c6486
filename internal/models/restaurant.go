package models

import (
	"fmt"
	"time"
)

// ThemeType selects the public page layout. Unknown values render as traditional.
type ThemeType int

const (
	ThemeTraditional ThemeType = 1
	ThemeMinimalist  ThemeType = 2
	ThemeVisual      ThemeType = 3
)

type ReservationMode string

const (
	ReservationForm     ReservationMode = "form"
	ReservationExternal ReservationMode = "external"
	ReservationDisabled ReservationMode = "disabled"
)

// ParseReservationMode rejects unknown modes. The legacy value "none" is read
// as disabled.
func ParseReservationMode(s string) (ReservationMode, error) {
	switch s {
	case "form":
		return ReservationForm, nil
	case "external":
		return ReservationExternal, nil
	case "disabled", "none":
		return ReservationDisabled, nil
	}
	return "", fmt.Errorf("unknown reservation mode %q", s)
}

// AcceptsBookings reports whether the restaurant takes reservations through
// its own form.
func (m ReservationMode) AcceptsBookings() bool {
	return m != ReservationDisabled && m != "none"
}

type Restaurant struct {
	ID                 uint            `gorm:"primaryKey" json:"id"`
	OwnerID            string          `gorm:"type:varchar(64);not null;uniqueIndex" json:"owner_id"`
	Slug               string          `gorm:"type:varchar(80);not null;uniqueIndex" json:"slug"`
	Name               string          `gorm:"type:varchar(120);not null" json:"name"`
	Description        string          `gorm:"type:text" json:"description"`
	LogoURL            string          `gorm:"type:varchar(512)" json:"logo_url"`
	CoverImageURL      string          `gorm:"type:varchar(512)" json:"cover_image_url"`
	ThemeColor         string          `gorm:"type:varchar(20);default:'#1f2937'" json:"theme_color"`
	SecondaryColor     string          `gorm:"type:varchar(20);default:'#f59e0b'" json:"secondary_color"`
	FontFamily         string          `gorm:"type:varchar(60);default:'Inter'" json:"font_family"`
	ThemeType          ThemeType       `gorm:"not null;default:1" json:"theme_type"`
	ReservationMode    ReservationMode `gorm:"type:varchar(20);not null;default:'form'" json:"reservation_mode"`
	ExternalBookingURL string          `gorm:"type:varchar(512)" json:"external_booking_url"`
	Language           string          `gorm:"type:varchar(8);not null;default:'en'" json:"language"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}
