package availability

import "github.com/Eursukkul/menulink/internal/models"

// DefaultSlots is the lunch and dinner window created for every weekday when
// a restaurant finishes onboarding.
func DefaultSlots(restaurantID uint) []models.ReservationTimeSlot {
	windows := []struct{ start, end string }{
		{"12:00", "15:00"},
		{"19:00", "22:30"},
	}
	slots := make([]models.ReservationTimeSlot, 0, 7*len(windows))
	for day := 0; day < 7; day++ {
		for _, w := range windows {
			slots = append(slots, models.ReservationTimeSlot{
				RestaurantID:    restaurantID,
				DayOfWeek:       day,
				StartTime:       w.start,
				EndTime:         w.end,
				MaxReservations: 10,
				MaxPartySize:    8,
				IsActive:        true,
			})
		}
	}
	return slots
}
