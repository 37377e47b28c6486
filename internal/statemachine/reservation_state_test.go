package statemachine

import (
	"testing"

	"github.com/Eursukkul/menulink/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestCanTransition_Allowed(t *testing.T) {
	cases := []Transition{
		{models.StatusPending, models.StatusConfirmed},
		{models.StatusPending, models.StatusCancelled},
		{models.StatusConfirmed, models.StatusCompleted},
		{models.StatusConfirmed, models.StatusCancelled},
	}
	for _, tc := range cases {
		assert.NoError(t, CanTransition(tc.From, tc.To), "%s -> %s", tc.From, tc.To)
	}
}

func TestCanTransition_Rejected(t *testing.T) {
	cases := []Transition{
		{models.StatusCompleted, models.StatusConfirmed},
		{models.StatusCancelled, models.StatusConfirmed},
		{models.StatusCancelled, models.StatusPending},
		{models.StatusCompleted, models.StatusCancelled},
		{models.StatusPending, models.StatusCompleted},
		{models.StatusConfirmed, models.StatusPending},
		{models.StatusPending, models.StatusPending},
	}
	for _, tc := range cases {
		err := CanTransition(tc.From, tc.To)
		assert.ErrorIs(t, err, ErrInvalidTransition, "%s -> %s", tc.From, tc.To)
	}
}

func TestTerminalStates(t *testing.T) {
	assert.True(t, IsTerminal(models.StatusCompleted))
	assert.True(t, IsTerminal(models.StatusCancelled))
	assert.False(t, IsTerminal(models.StatusPending))
	assert.False(t, IsTerminal(models.StatusConfirmed))

	assert.ElementsMatch(t,
		[]models.ReservationStatus{models.StatusCompleted, models.StatusCancelled},
		ValidTransitionsFrom(models.StatusConfirmed))
}

func TestCanTransition_MessageListsTerminal(t *testing.T) {
	err := CanTransition(models.StatusCompleted, models.StatusConfirmed)
	assert.Contains(t, err.Error(), "terminal")
}
