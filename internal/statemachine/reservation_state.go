package statemachine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Eursukkul/menulink/internal/models"
)

var ErrInvalidTransition = errors.New("invalid status transition")

// Transition is a single allowed status change for a reservation.
type Transition struct {
	From models.ReservationStatus
	To   models.ReservationStatus
}

// validTransitions is the authoritative reservation lifecycle.
// Completed and cancelled are terminal.
var validTransitions = []Transition{
	{From: models.StatusPending, To: models.StatusConfirmed},
	{From: models.StatusPending, To: models.StatusCancelled},
	{From: models.StatusConfirmed, To: models.StatusCompleted},
	{From: models.StatusConfirmed, To: models.StatusCancelled},
}

var transitionMap = func() map[Transition]bool {
	m := make(map[Transition]bool, len(validTransitions))
	for _, t := range validTransitions {
		m[t] = true
	}
	return m
}()

// ValidTransitionsFrom returns the statuses reachable from status in one step.
func ValidTransitionsFrom(status models.ReservationStatus) []models.ReservationStatus {
	var nexts []models.ReservationStatus
	for _, t := range validTransitions {
		if t.From == status {
			nexts = append(nexts, t.To)
		}
	}
	return nexts
}

// IsTerminal reports whether no further transition is possible.
func IsTerminal(status models.ReservationStatus) bool {
	return len(ValidTransitionsFrom(status)) == 0
}

// CanTransition returns an error wrapping ErrInvalidTransition when from -> to
// is not part of the lifecycle.
func CanTransition(from, to models.ReservationStatus) error {
	if transitionMap[Transition{From: from, To: to}] {
		return nil
	}
	return fmt.Errorf("%w: %s -> %s (allowed from %s: %s)",
		ErrInvalidTransition, from, to, from, describeValidFrom(from))
}

func describeValidFrom(status models.ReservationStatus) string {
	nexts := ValidTransitionsFrom(status)
	if len(nexts) == 0 {
		return "none, terminal"
	}
	parts := make([]string, len(nexts))
	for i, n := range nexts {
		parts[i] = string(n)
	}
	return strings.Join(parts, ", ")
}
