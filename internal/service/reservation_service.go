package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Eursukkul/menulink/internal/availability"
	"github.com/Eursukkul/menulink/internal/dto"
	"github.com/Eursukkul/menulink/internal/models"
	"github.com/Eursukkul/menulink/internal/repository"
	"github.com/Eursukkul/menulink/internal/statemachine"
	"github.com/Eursukkul/menulink/pkg/logger"
	"github.com/Eursukkul/menulink/pkg/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ReservationService interface {
	Availability(ctx context.Context, slug, date string) (*dto.AvailabilityResponse, error)
	Schedule(ctx context.Context, slug string) (dto.ScheduleResponse, error)
	CreateReservation(ctx context.Context, slug string, req dto.CreateReservationRequest, originClientID string) (*models.Reservation, error)
	ListReservations(ctx context.Context, restaurantID uint, filter repository.ReservationFilter) ([]models.Reservation, error)
	TransitionStatus(ctx context.Context, restaurantID, id uint, to models.ReservationStatus, originClientID string) (*TransitionResult, error)
	DeleteReservation(ctx context.Context, restaurantID, id uint) error
}

// TransitionResult carries the updated reservation and, when the status
// change committed but the follow-up notification did not, that failure.
type TransitionResult struct {
	Reservation     *models.Reservation
	NotificationErr error
}

type ReservationDeps struct {
	Restaurants   repository.RestaurantRepository
	Slots         repository.TimeSlotRepository
	Reservations  repository.ReservationRepository
	Customers     repository.CustomerRepository
	Notifications repository.NotificationRepository
	Publisher     EventPublisher
	Metrics       *telemetry.Metrics
}

type reservationService struct {
	restaurantRepo   repository.RestaurantRepository
	slotRepo         repository.TimeSlotRepository
	reservationRepo  repository.ReservationRepository
	customerRepo     repository.CustomerRepository
	notificationRepo repository.NotificationRepository
	publisher        EventPublisher
	metrics          *telemetry.Metrics
	now              func() time.Time
}

func NewReservationService(deps ReservationDeps) ReservationService {
	metrics := deps.Metrics
	if metrics == nil {
		metrics = &telemetry.Metrics{}
	}
	return &reservationService{
		restaurantRepo:   deps.Restaurants,
		slotRepo:         deps.Slots,
		reservationRepo:  deps.Reservations,
		customerRepo:     deps.Customers,
		notificationRepo: deps.Notifications,
		publisher:        deps.Publisher,
		metrics:          metrics,
		now:              time.Now,
	}
}

func (s *reservationService) restaurantBySlug(ctx context.Context, slug string) (*models.Restaurant, error) {
	restaurant, err := s.restaurantRepo.FindBySlug(ctx, slug)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRestaurantNotFound
	}
	return restaurant, err
}

func (s *reservationService) today() string {
	return s.now().Format(availability.DateLayout)
}

// Availability lists bookable times for a date. A failure to read the slot
// configuration is logged and reported as no availability.
func (s *reservationService) Availability(ctx context.Context, slug, date string) (*dto.AvailabilityResponse, error) {
	restaurant, err := s.restaurantBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	day, err := availability.ParseDate(date)
	if err != nil {
		return nil, err
	}

	resp := &dto.AvailabilityResponse{
		Date:         day.Format(availability.DateLayout),
		DayOfWeek:    int(day.Weekday()),
		Times:        []string{},
		MaxPartySize: availability.DefaultMaxPartySize,
	}
	if restaurant.ReservationMode != models.ReservationForm || resp.Date < s.today() {
		return resp, nil
	}

	slots, err := s.slotRepo.ListForDay(ctx, s.reservationRepo.GetDB(), restaurant.ID, int(day.Weekday()))
	if err != nil {
		logger.Ctx(ctx).Warn("slot configuration unavailable",
			zap.Uint("restaurant_id", restaurant.ID), zap.Error(err))
		return resp, nil
	}

	schedule := availability.BuildSchedule(slots)
	resp.Times = schedule.AvailableTimes(day)
	resp.MaxPartySize = schedule.MaxPartySize(day)
	resp.Available = len(resp.Times) > 0
	return resp, nil
}

func (s *reservationService) Schedule(ctx context.Context, slug string) (dto.ScheduleResponse, error) {
	restaurant, err := s.restaurantBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	resp := dto.ScheduleResponse{}
	slots, err := s.slotRepo.ListByRestaurant(ctx, restaurant.ID)
	if err != nil {
		logger.Ctx(ctx).Warn("slot configuration unavailable",
			zap.Uint("restaurant_id", restaurant.ID), zap.Error(err))
		return resp, nil
	}
	for day, daySlots := range availability.BuildSchedule(slots) {
		for _, sl := range daySlots {
			resp[int(day)] = append(resp[int(day)], dto.ToSlotResponse(sl))
		}
	}
	return resp, nil
}

func (s *reservationService) CreateReservation(ctx context.Context, slug string, req dto.CreateReservationRequest, originClientID string) (*models.Reservation, error) {
	ctx, span := telemetry.StartSpan(ctx, "reservation.create")
	defer span.End()
	started := time.Now()

	restaurant, err := s.restaurantBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if restaurant.ReservationMode != models.ReservationForm {
		return nil, ErrReservationsDisabled
	}

	name := strings.TrimSpace(req.CustomerName)
	email := strings.ToLower(strings.TrimSpace(req.CustomerEmail))
	if name == "" || email == "" {
		return nil, ErrCustomerDetails
	}
	if req.PartySize < 1 {
		return nil, ErrInvalidPartySize
	}
	day, err := availability.ParseDate(req.ReservationDate)
	if err != nil {
		return nil, err
	}
	clock, err := availability.NormalizeClock(req.ReservationTime)
	if err != nil {
		return nil, err
	}
	date := day.Format(availability.DateLayout)
	if date < s.today() {
		return nil, ErrDateInPast
	}

	var result *models.Reservation

	err = s.reservationRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. Exact start-time match among the day's active slots, preferring one
		// that takes the party
		slots, err := s.slotRepo.ListForDay(ctx, tx, restaurant.ID, int(day.Weekday()))
		if err != nil {
			return err
		}
		matched, err := availability.BuildSchedule(slots).Match(day, clock, req.PartySize)
		if err != nil {
			return err
		}

		// 2. Lock the slot row so concurrent bookings for it serialize
		slot, err := s.slotRepo.FindByIDForUpdate(ctx, tx, matched.ID)
		if err != nil {
			return err
		}
		if !slot.IsActive {
			return ErrTimeNotAvailable
		}

		// 3. Party size and capacity against live reservations
		booked, err := s.reservationRepo.CountLive(ctx, tx, restaurant.ID, date, clock)
		if err != nil {
			return err
		}
		if err := availability.CheckRequest(slot, req.PartySize, booked); err != nil {
			return err
		}

		// 4. Insert as pending
		reservation := &models.Reservation{
			RestaurantID:    restaurant.ID,
			CustomerName:    name,
			CustomerEmail:   email,
			CustomerPhone:   strings.TrimSpace(req.CustomerPhone),
			PartySize:       req.PartySize,
			ReservationDate: date,
			ReservationTime: clock,
			SpecialRequests: strings.TrimSpace(req.SpecialRequests),
			Status:          models.StatusPending,
			TimeSlotID:      &slot.ID,
		}
		if err := s.reservationRepo.Create(ctx, tx, reservation); err != nil {
			return err
		}
		result = reservation
		return nil
	})
	if err != nil {
		s.metrics.ReservationsRejected.Inc(ctx, telemetry.ReasonAttr(rejectionReason(err)))
		return nil, err
	}

	s.metrics.ReservationsCreated.Inc(ctx, telemetry.RestaurantAttr(restaurant.ID))
	s.metrics.CreateDuration.Record(ctx, float64(time.Since(started).Milliseconds()))

	s.afterCreate(ctx, restaurant, result, originClientID)
	return result, nil
}

// afterCreate runs the best-effort follow-ups. Failures are logged and never
// undo the reservation.
func (s *reservationService) afterCreate(ctx context.Context, restaurant *models.Restaurant, r *models.Reservation, originClientID string) {
	log := logger.Ctx(ctx).With(zap.Uint("reservation_id", r.ID))

	if err := s.customerRepo.Upsert(ctx, &models.Customer{
		RestaurantID: restaurant.ID,
		Email:        r.CustomerEmail,
		Name:         r.CustomerName,
		Phone:        r.CustomerPhone,
	}); err != nil {
		log.Warn("customer upsert failed", zap.Error(err))
	}

	if err := s.notificationRepo.Create(ctx, &models.Notification{
		RestaurantID:  restaurant.ID,
		ReservationID: &r.ID,
		Type:          models.NotificationNewReservation,
		Recipient:     restaurant.OwnerID,
		Message: fmt.Sprintf("New reservation: %s, %d guests on %s at %s",
			r.CustomerName, r.PartySize, r.ReservationDate, r.ReservationTime),
	}); err != nil {
		log.Warn("new reservation notification failed", zap.Error(err))
	}

	s.publish(ctx, dto.EventReservationCreated, r, originClientID)
}

func (s *reservationService) publish(ctx context.Context, eventType string, r *models.Reservation, originClientID string) error {
	if s.publisher == nil {
		return nil
	}
	evt := dto.ReservationEvent{
		EventID:        uuid.NewString(),
		Type:           eventType,
		RestaurantID:   r.RestaurantID,
		Reservation:    dto.ToReservationResponse(r),
		OriginClientID: originClientID,
		OccurredAt:     s.now().UTC(),
	}
	if err := s.publisher.Publish(eventType, evt); err != nil {
		logger.Ctx(ctx).Warn("publish reservation event failed",
			zap.String("type", eventType), zap.Uint("reservation_id", r.ID), zap.Error(err))
		return err
	}
	return nil
}

func (s *reservationService) ListReservations(ctx context.Context, restaurantID uint, filter repository.ReservationFilter) ([]models.Reservation, error) {
	return s.reservationRepo.List(ctx, restaurantID, filter)
}

func (s *reservationService) TransitionStatus(ctx context.Context, restaurantID, id uint, to models.ReservationStatus, originClientID string) (*TransitionResult, error) {
	var updated *models.Reservation

	err := s.reservationRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r, err := s.reservationRepo.FindByIDForUpdate(ctx, tx, restaurantID, id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReservationNotFound
		}
		if err != nil {
			return err
		}
		if err := statemachine.CanTransition(r.Status, to); err != nil {
			return err
		}
		if err := s.reservationRepo.UpdateStatus(ctx, tx, r.ID, to); err != nil {
			return err
		}
		r.Status = to
		updated = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	result := &TransitionResult{Reservation: updated}
	s.publish(ctx, dto.EventReservationStatusChanged, updated, originClientID)

	if to == models.StatusCompleted {
		result.NotificationErr = s.thankYou(ctx, updated, originClientID)
	}
	return result, nil
}

// thankYou records the thank-you notification and announces completion. The
// status change has already committed; errors are returned for reporting only.
func (s *reservationService) thankYou(ctx context.Context, r *models.Reservation, originClientID string) error {
	err := s.notificationRepo.Create(ctx, &models.Notification{
		RestaurantID:  r.RestaurantID,
		ReservationID: &r.ID,
		Type:          models.NotificationThankYou,
		Recipient:     r.CustomerEmail,
		Message:       fmt.Sprintf("Thank you for dining with us, %s!", r.CustomerName),
	})
	if err != nil {
		logger.Ctx(ctx).Warn("thank-you notification failed", zap.Uint("reservation_id", r.ID), zap.Error(err))
		return fmt.Errorf("thank-you notification: %w", err)
	}
	if err := s.publish(ctx, dto.EventReservationCompleted, r, originClientID); err != nil {
		return fmt.Errorf("thank-you event: %w", err)
	}
	return nil
}

func (s *reservationService) DeleteReservation(ctx context.Context, restaurantID, id uint) error {
	r, err := s.reservationRepo.FindByID(ctx, restaurantID, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrReservationNotFound
	}
	if err != nil {
		return err
	}
	if !statemachine.IsTerminal(r.Status) {
		return ErrNotTerminal
	}
	return s.reservationRepo.Delete(ctx, r.ID)
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, ErrTimeNotAvailable):
		return "time_not_available"
	case errors.Is(err, ErrPartyTooLarge):
		return "party_too_large"
	case errors.Is(err, ErrSlotFull):
		return "slot_full"
	default:
		return "error"
	}
}
