// Package availability answers which reservation times a restaurant offers
// on a given date and whether a (date, time, party size) request fits.
package availability

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/Eursukkul/menulink/internal/models"
)

// DefaultMaxPartySize bounds the party selector on days without slots.
const DefaultMaxPartySize = 10

const DateLayout = "2006-01-02"

var (
	ErrTimeNotAvailable = errors.New("time not available")
	ErrPartyTooLarge    = errors.New("party too large for this slot")
	ErrSlotFull         = errors.New("slot full")
	ErrInvalidDate      = errors.New("invalid date, expected YYYY-MM-DD")
	ErrInvalidTime      = errors.New("invalid time, expected HH:MM")
)

// Schedule maps each weekday to its active slots ordered by start time.
type Schedule map[time.Weekday][]models.ReservationTimeSlot

// BuildSchedule groups slots by weekday. Inactive slots and slots with an
// unparseable start time are dropped.
func BuildSchedule(slots []models.ReservationTimeSlot) Schedule {
	s := make(Schedule, 7)
	for _, slot := range slots {
		if !slot.IsActive || slot.DayOfWeek < 0 || slot.DayOfWeek > 6 {
			continue
		}
		start, err := NormalizeClock(slot.StartTime)
		if err != nil {
			continue
		}
		slot.StartTime = start
		day := time.Weekday(slot.DayOfWeek)
		s[day] = append(s[day], slot)
	}
	for day := range s {
		sort.SliceStable(s[day], func(i, j int) bool {
			a, b := s[day][i], s[day][j]
			if a.StartTime != b.StartTime {
				return a.StartTime < b.StartTime
			}
			return a.ID < b.ID
		})
	}
	return s
}

// SlotsOn returns the active slots for the weekday of date.
func (s Schedule) SlotsOn(date time.Time) []models.ReservationTimeSlot {
	return s[date.Weekday()]
}

// AvailableTimes returns the distinct start times for date in ascending order.
// An empty result means the restaurant takes no bookings that day.
func (s Schedule) AvailableTimes(date time.Time) []string {
	times := []string{}
	for _, slot := range s.SlotsOn(date) {
		if len(times) > 0 && times[len(times)-1] == slot.StartTime {
			continue
		}
		times = append(times, slot.StartTime)
	}
	return times
}

// MaxPartySize is the largest max_party_size among the day's slots.
func (s Schedule) MaxPartySize(date time.Time) int {
	slots := s.SlotsOn(date)
	if len(slots) == 0 {
		return DefaultMaxPartySize
	}
	largest := 0
	for _, slot := range slots {
		if slot.MaxPartySize > largest {
			largest = slot.MaxPartySize
		}
	}
	return largest
}

// Match finds the slot whose start time equals clock exactly. When several
// slots share a start time the lowest id that takes partySize wins; if none
// does, the lowest id is returned and CheckRequest reports the party as too
// large. Capacity is counted per start time, so shared slots share it.
func (s Schedule) Match(date time.Time, clock string, partySize int) (*models.ReservationTimeSlot, error) {
	normalized, err := NormalizeClock(clock)
	if err != nil {
		return nil, err
	}
	var first *models.ReservationTimeSlot
	for _, slot := range s.SlotsOn(date) {
		if slot.StartTime != normalized {
			continue
		}
		matched := slot
		if slot.MaxPartySize >= partySize {
			return &matched, nil
		}
		if first == nil {
			first = &matched
		}
	}
	if first != nil {
		return first, nil
	}
	return nil, ErrTimeNotAvailable
}

// CheckRequest validates a party against a matched slot and the number of
// live reservations already holding it.
func CheckRequest(slot *models.ReservationTimeSlot, partySize int, booked int64) error {
	if partySize > slot.MaxPartySize {
		return fmt.Errorf("%w (max %d)", ErrPartyTooLarge, slot.MaxPartySize)
	}
	if booked >= int64(slot.MaxReservations) {
		return ErrSlotFull
	}
	return nil
}

// ParseDate reads a calendar date in YYYY-MM-DD form.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return d, nil
}

// NormalizeClock accepts "HH:MM" or "HH:MM:SS" and returns "HH:MM".
func NormalizeClock(s string) (string, error) {
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("15:04"), nil
		}
	}
	return "", ErrInvalidTime
}
