package dto

import "time"

// Routing keys for reservation events.
const (
	EventReservationCreated       = "reservation.created"
	EventReservationStatusChanged = "reservation.status_changed"
	EventReservationCompleted     = "reservation.completed"
)

// ReservationEvent is published after a reservation write commits.
// OriginClientID identifies the dashboard tab that caused the write so the
// realtime feed does not echo it back.
type ReservationEvent struct {
	EventID        string              `json:"event_id"`
	Type           string              `json:"type"`
	RestaurantID   uint                `json:"restaurant_id"`
	Reservation    ReservationResponse `json:"reservation"`
	OriginClientID string              `json:"origin_client_id,omitempty"`
	OccurredAt     time.Time           `json:"occurred_at"`
}
