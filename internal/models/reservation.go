package models

import "time"

type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusConfirmed ReservationStatus = "confirmed"
	StatusCancelled ReservationStatus = "cancelled"
	StatusCompleted ReservationStatus = "completed"
)

// ParseReservationStatus accepts only the four known statuses.
func ParseReservationStatus(s string) (ReservationStatus, bool) {
	switch st := ReservationStatus(s); st {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return st, true
	}
	return "", false
}

type Reservation struct {
	ID              uint              `gorm:"primaryKey" json:"id"`
	RestaurantID    uint              `gorm:"not null;index" json:"restaurant_id"`
	CustomerName    string            `gorm:"type:varchar(120);not null" json:"customer_name"`
	CustomerEmail   string            `gorm:"type:varchar(255);not null" json:"customer_email"`
	CustomerPhone   string            `gorm:"type:varchar(40)" json:"customer_phone"`
	PartySize       int               `gorm:"not null" json:"party_size"`
	ReservationDate string            `gorm:"type:varchar(10);not null" json:"reservation_date"`
	ReservationTime string            `gorm:"type:varchar(5);not null" json:"reservation_time"`
	SpecialRequests string            `gorm:"type:text" json:"special_requests"`
	Status          ReservationStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	TimeSlotID      *uint             `json:"time_slot_id,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`

	TimeSlot *ReservationTimeSlot `gorm:"foreignKey:TimeSlotID;constraint:OnDelete:SET NULL" json:"time_slot,omitempty"`
}
