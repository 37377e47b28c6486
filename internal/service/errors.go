package service

import (
	"context"
	"errors"

	"github.com/Eursukkul/menulink/internal/availability"
	"github.com/Eursukkul/menulink/internal/statemachine"
	"github.com/Eursukkul/menulink/pkg/cache"
	"github.com/Eursukkul/menulink/pkg/logger"
	"go.uber.org/zap"
)

var (
	ErrRestaurantNotFound     = errors.New("restaurant not found")
	ErrOnboardingRequired     = errors.New("onboarding required")
	ErrAlreadyOnboarded       = errors.New("account already has a restaurant")
	ErrSlugTaken              = errors.New("slug is already taken")
	ErrInvalidSlug            = errors.New("slug may only contain lowercase letters, digits and dashes")
	ErrEmptyName              = errors.New("name cannot be empty")
	ErrInvalidReservationMode = errors.New("reservation_mode must be form, external or disabled")
	ErrReservationsDisabled   = errors.New("this restaurant does not take reservations online")
	ErrReservationNotFound    = errors.New("reservation not found")
	ErrCustomerDetails        = errors.New("customer name and email are required")
	ErrInvalidPartySize       = errors.New("party size must be at least 1")
	ErrDateInPast             = errors.New("reservation date is in the past")
	ErrInvalidStatus          = errors.New("unknown reservation status")
	ErrNotTerminal            = errors.New("only completed or cancelled reservations can be deleted")
	ErrSlotNotFound           = errors.New("time slot not found")
	ErrInvalidSlotWindow      = errors.New("end_time must be after start_time")
	ErrCategoryNotFound       = errors.New("menu category not found")
	ErrAnalyticsTimeout       = errors.New("analytics query timed out")

	ErrTimeNotAvailable  = availability.ErrTimeNotAvailable
	ErrPartyTooLarge     = availability.ErrPartyTooLarge
	ErrSlotFull          = availability.ErrSlotFull
	ErrInvalidDate       = availability.ErrInvalidDate
	ErrInvalidTime       = availability.ErrInvalidTime
	ErrInvalidTransition = statemachine.ErrInvalidTransition
)

// EventPublisher delivers reservation events to the realtime feed, either
// through the broker or in process.
type EventPublisher interface {
	Publish(routingKey string, payload any) error
}

func invalidatePage(ctx context.Context, c cache.Cache, slug string) {
	if err := c.Delete(ctx, cache.PageKey(slug)); err != nil {
		logger.Ctx(ctx).Warn("page cache invalidation failed", zap.String("slug", slug), zap.Error(err))
	}
}
