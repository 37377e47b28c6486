package dto

import (
	"time"

	"github.com/Eursukkul/menulink/internal/models"
)

type ReservationResponse struct {
	ID              uint                     `json:"id"`
	RestaurantID    uint                     `json:"restaurant_id"`
	CustomerName    string                   `json:"customer_name"`
	CustomerEmail   string                   `json:"customer_email"`
	CustomerPhone   string                   `json:"customer_phone,omitempty"`
	PartySize       int                      `json:"party_size"`
	ReservationDate string                   `json:"reservation_date"`
	ReservationTime string                   `json:"reservation_time"`
	SpecialRequests string                   `json:"special_requests,omitempty"`
	Status          models.ReservationStatus `json:"status"`
	TimeSlotID      *uint                    `json:"time_slot_id,omitempty"`
	CreatedAt       time.Time                `json:"created_at"`
}

type TransitionResponse struct {
	Reservation ReservationResponse `json:"reservation"`
	Warning     string              `json:"warning,omitempty"`
}

type AvailabilityResponse struct {
	Date         string   `json:"date"`
	DayOfWeek    int      `json:"day_of_week"`
	Times        []string `json:"times"`
	MaxPartySize int      `json:"max_party_size"`
	Available    bool     `json:"available"`
}

type SlotResponse struct {
	ID              uint   `json:"id"`
	StartTime       string `json:"start_time"`
	EndTime         string `json:"end_time"`
	MaxReservations int    `json:"max_reservations"`
	MaxPartySize    int    `json:"max_party_size"`
}

// ScheduleResponse is keyed by day of week, 0 = Sunday.
type ScheduleResponse map[int][]SlotResponse

type DailyCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type AnalyticsSummary struct {
	Days           int            `json:"days"`
	TotalPageViews int            `json:"total_page_views"`
	TotalClicks    int            `json:"total_clicks"`
	PageViews      []DailyCount   `json:"page_views"`
	ClicksByButton map[string]int `json:"clicks_by_button"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

func ToReservationResponse(r *models.Reservation) ReservationResponse {
	return ReservationResponse{
		ID:              r.ID,
		RestaurantID:    r.RestaurantID,
		CustomerName:    r.CustomerName,
		CustomerEmail:   r.CustomerEmail,
		CustomerPhone:   r.CustomerPhone,
		PartySize:       r.PartySize,
		ReservationDate: r.ReservationDate,
		ReservationTime: r.ReservationTime,
		SpecialRequests: r.SpecialRequests,
		Status:          r.Status,
		TimeSlotID:      r.TimeSlotID,
		CreatedAt:       r.CreatedAt,
	}
}

func ToSlotResponse(s models.ReservationTimeSlot) SlotResponse {
	return SlotResponse{
		ID:              s.ID,
		StartTime:       s.StartTime,
		EndTime:         s.EndTime,
		MaxReservations: s.MaxReservations,
		MaxPartySize:    s.MaxPartySize,
	}
}
