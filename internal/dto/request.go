package dto

import "encoding/json"

// CreateReservationRequest is shared by the JSON API and the HTML form.
type CreateReservationRequest struct {
	CustomerName    string `json:"customer_name" form:"customer_name" validate:"required,max=120"`
	CustomerEmail   string `json:"customer_email" form:"customer_email" validate:"required,email,max=255"`
	CustomerPhone   string `json:"customer_phone" form:"customer_phone" validate:"max=40"`
	PartySize       int    `json:"party_size" form:"party_size" validate:"required,gte=1"`
	ReservationDate string `json:"reservation_date" form:"reservation_date" validate:"required"`
	ReservationTime string `json:"reservation_time" form:"reservation_time" validate:"required"`
	SpecialRequests string `json:"special_requests" form:"special_requests" validate:"max=1000"`
}

type ButtonClickRequest struct {
	ButtonType string `json:"button_type" validate:"required,oneof=phone map social delivery reservation website"`
	TargetURL  string `json:"target_url" validate:"omitempty,url,max=512"`
}

type OnboardingRequest struct {
	Name            string `json:"name" validate:"required,max=120"`
	Slug            string `json:"slug" validate:"omitempty,max=80"`
	Description     string `json:"description" validate:"max=5000"`
	ThemeType       int    `json:"theme_type" validate:"omitempty,gte=1,lte=3"`
	ReservationMode string `json:"reservation_mode"`
	Language        string `json:"language" validate:"omitempty,max=8"`
}

// UpdateRestaurantRequest applies only the fields that are present.
type UpdateRestaurantRequest struct {
	Name               *string `json:"name" validate:"omitempty,max=120"`
	Description        *string `json:"description" validate:"omitempty,max=5000"`
	LogoURL            *string `json:"logo_url" validate:"omitempty,max=512"`
	CoverImageURL      *string `json:"cover_image_url" validate:"omitempty,max=512"`
	ThemeColor         *string `json:"theme_color" validate:"omitempty,max=20"`
	SecondaryColor     *string `json:"secondary_color" validate:"omitempty,max=20"`
	FontFamily         *string `json:"font_family" validate:"omitempty,max=60"`
	ThemeType          *int    `json:"theme_type" validate:"omitempty,gte=1,lte=3"`
	ReservationMode    *string `json:"reservation_mode"`
	ExternalBookingURL *string `json:"external_booking_url" validate:"omitempty,url,max=512"`
	Language           *string `json:"language" validate:"omitempty,max=8"`
}

type TimeSlotRequest struct {
	DayOfWeek       int    `json:"day_of_week" validate:"gte=0,lte=6"`
	StartTime       string `json:"start_time" validate:"required"`
	EndTime         string `json:"end_time" validate:"required"`
	MaxReservations int    `json:"max_reservations" validate:"required,gte=1"`
	MaxPartySize    int    `json:"max_party_size" validate:"required,gte=1"`
	IsActive        *bool  `json:"is_active"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type CreateCategoryRequest struct {
	Name         string `json:"name" validate:"required,max=120"`
	Description  string `json:"description" validate:"max=1000"`
	DisplayOrder int    `json:"display_order"`
}

// CreateMenuItemRequest takes allergens in whatever shape the client sends.
type CreateMenuItemRequest struct {
	CategoryID   uint            `json:"category_id" validate:"required"`
	Name         string          `json:"name" validate:"required,max=120"`
	Description  string          `json:"description" validate:"max=2000"`
	Price        float64         `json:"price" validate:"gte=0"`
	ImageURL     string          `json:"image_url" validate:"max=512"`
	Allergens    json.RawMessage `json:"allergens"`
	IsAvailable  *bool           `json:"is_available"`
	DisplayOrder int             `json:"display_order"`
}

type OpeningHoursRequest struct {
	DayOfWeek int    `json:"day_of_week" validate:"gte=0,lte=6"`
	OpenTime  string `json:"open_time"`
	CloseTime string `json:"close_time"`
	IsClosed  bool   `json:"is_closed"`
}

type UpdateContactRequest struct {
	Phone        string                `json:"phone" validate:"max=40"`
	Email        string                `json:"email" validate:"omitempty,email"`
	Address      string                `json:"address" validate:"max=255"`
	City         string                `json:"city" validate:"max=120"`
	MapURL       string                `json:"map_url" validate:"omitempty,url"`
	OpeningHours []OpeningHoursRequest `json:"opening_hours" validate:"dive"`
}

type CreateLinkRequest struct {
	Kind         string `json:"kind" validate:"required,oneof=social delivery"`
	Platform     string `json:"platform" validate:"required,max=40"`
	URL          string `json:"url" validate:"required,url,max=512"`
	DisplayOrder int    `json:"display_order"`
}
