package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Eursukkul/menulink/internal/dto"
	"github.com/Eursukkul/menulink/internal/models"
	"github.com/Eursukkul/menulink/internal/repository"
	"github.com/Eursukkul/menulink/pkg/database"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// 2024-06-03 is a Monday.
var fixedNow = time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

const monday = "2024-06-03"

// --- Mock publisher ---

type mockPublisher struct {
	mu        sync.Mutex
	publishFn func(routingKey string, payload any) error
	published []dto.ReservationEvent
}

func (m *mockPublisher) Publish(routingKey string, payload any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if evt, ok := payload.(dto.ReservationEvent); ok {
		m.published = append(m.published, evt)
	}
	if m.publishFn != nil {
		return m.publishFn(routingKey, payload)
	}
	return nil
}

func (m *mockPublisher) types() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.published))
	for _, e := range m.published {
		out = append(out, e.Type)
	}
	return out
}

// --- Mock notification repository ---

type failingNotifications struct {
	repository.NotificationRepository
	createFn func(ctx context.Context, n *models.Notification) error
}

func (f *failingNotifications) Create(ctx context.Context, n *models.Notification) error {
	return f.createFn(ctx, n)
}

type fixture struct {
	db           *gorm.DB
	restaurants  repository.RestaurantRepository
	slots        repository.TimeSlotRepository
	reservations repository.ReservationRepository
	publisher    *mockPublisher
	svc          *reservationService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := database.NewSQLiteDB(":memory:")
	require.NoError(t, err)

	f := &fixture{
		db:           db,
		restaurants:  repository.NewRestaurantRepository(db),
		slots:        repository.NewTimeSlotRepository(db),
		reservations: repository.NewReservationRepository(db),
		publisher:    &mockPublisher{},
	}
	f.svc = NewReservationService(ReservationDeps{
		Restaurants:   f.restaurants,
		Slots:         f.slots,
		Reservations:  f.reservations,
		Customers:     repository.NewCustomerRepository(db),
		Notifications: repository.NewNotificationRepository(db),
		Publisher:     f.publisher,
	}).(*reservationService)
	f.svc.now = func() time.Time { return fixedNow }
	return f
}

func (f *fixture) restaurant(t *testing.T, slug string, mode models.ReservationMode) *models.Restaurant {
	t.Helper()
	r := &models.Restaurant{OwnerID: "owner-" + slug, Slug: slug, Name: slug, ReservationMode: mode, ThemeType: models.ThemeTraditional, Language: "en"}
	require.NoError(t, f.restaurants.Create(context.Background(), f.db, r))
	return r
}

func (f *fixture) slot(t *testing.T, restaurantID uint, day time.Weekday, start, end string, maxRes, maxParty int) *models.ReservationTimeSlot {
	t.Helper()
	s := &models.ReservationTimeSlot{
		RestaurantID: restaurantID, DayOfWeek: int(day), StartTime: start, EndTime: end,
		MaxReservations: maxRes, MaxPartySize: maxParty, IsActive: true,
	}
	require.NoError(t, f.slots.Create(context.Background(), s))
	return s
}

func booking(name string, party int, date, clock string) dto.CreateReservationRequest {
	return dto.CreateReservationRequest{
		CustomerName:    name,
		CustomerEmail:   name + "@example.com",
		PartySize:       party,
		ReservationDate: date,
		ReservationTime: clock,
	}
}

var errBoom = errors.New("boom")
