package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/Eursukkul/menulink/internal/dto"
	"github.com/Eursukkul/menulink/internal/models"
	"github.com/Eursukkul/menulink/internal/repository"
	"github.com/Eursukkul/menulink/pkg/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func newRestaurantService(f *fixture, c cache.Cache) RestaurantService {
	return NewRestaurantService(f.restaurants, f.slots, c)
}

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"Casa Luz":           "casa-luz",
		"  Ramen -- Bar!! ":  "ramen-bar",
		"Café 22":            "caf-22",
		"ALL CAPS & symbols": "all-caps-symbols",
	}
	for in, want := range tests {
		assert.Equal(t, want, Slugify(in), in)
	}
}

func TestOnboard_CreatesRestaurantAndDefaultSlots(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := newRestaurantService(f, nil)

	r, err := svc.Onboard(ctx, "user-1", dto.OnboardingRequest{Name: "Casa Luz"})
	require.NoError(t, err)
	assert.Equal(t, "casa-luz", r.Slug)
	assert.Equal(t, models.ReservationForm, r.ReservationMode)
	assert.Equal(t, models.ThemeTraditional, r.ThemeType)

	slots, err := svc.ListSlots(ctx, r.ID)
	require.NoError(t, err)
	assert.Len(t, slots, 14)

	got, err := svc.GetByOwner(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, r.ID, got.ID)
}

func TestOnboard_Rejections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := newRestaurantService(f, nil)

	_, err := svc.Onboard(ctx, "user-1", dto.OnboardingRequest{Name: "Casa Luz"})
	require.NoError(t, err)

	_, err = svc.Onboard(ctx, "user-1", dto.OnboardingRequest{Name: "Another"})
	assert.ErrorIs(t, err, ErrAlreadyOnboarded)

	_, err = svc.Onboard(ctx, "user-2", dto.OnboardingRequest{Name: "Casa Luz"})
	assert.ErrorIs(t, err, ErrSlugTaken)

	_, err = svc.Onboard(ctx, "user-3", dto.OnboardingRequest{Name: "Bad", Slug: "Bad_Slug"})
	assert.ErrorIs(t, err, ErrInvalidSlug)

	_, err = svc.Onboard(ctx, "user-4", dto.OnboardingRequest{Name: "Odd", ReservationMode: "phone"})
	assert.ErrorIs(t, err, ErrInvalidReservationMode)

	_, err = svc.Onboard(ctx, "user-5", dto.OnboardingRequest{Name: "!!!"})
	assert.ErrorIs(t, err, ErrInvalidSlug)
}

func TestGetByOwner_RequiresOnboarding(t *testing.T) {
	f := newFixture(t)
	_, err := newRestaurantService(f, nil).GetByOwner(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrOnboardingRequired)
}

func TestUpdate_AppliesFieldsAndInvalidatesPage(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	mem := newMemCache()
	svc := newRestaurantService(f, mem)

	r, err := svc.Onboard(ctx, "user-1", dto.OnboardingRequest{Name: "Casa Luz"})
	require.NoError(t, err)
	require.NoError(t, mem.Set(ctx, cache.PageKey(r.Slug), map[string]string{"stale": "yes"}))

	theme := 3
	updated, err := svc.Update(ctx, r, dto.UpdateRestaurantRequest{
		Name:            strPtr("Casa Luz Bistro"),
		ThemeType:       &theme,
		ReservationMode: strPtr("none"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Casa Luz Bistro", updated.Name)
	assert.Equal(t, models.ThemeVisual, updated.ThemeType)
	assert.Equal(t, models.ReservationDisabled, updated.ReservationMode)
	assert.Contains(t, mem.deleted, cache.PageKey(r.Slug))

	_, err = svc.Update(ctx, r, dto.UpdateRestaurantRequest{ReservationMode: strPtr("sometimes")})
	assert.ErrorIs(t, err, ErrInvalidReservationMode)

	_, err = svc.Update(ctx, r, dto.UpdateRestaurantRequest{Name: strPtr("   ")})
	assert.ErrorIs(t, err, ErrEmptyName)
}

func TestSlotCRUD(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := newRestaurantService(f, nil)
	r := f.restaurant(t, "casa-luz", models.ReservationForm)

	inactive := false
	slot, err := svc.CreateSlot(ctx, r.ID, dto.TimeSlotRequest{
		DayOfWeek: 1, StartTime: "18:00:00", EndTime: "21:00", MaxReservations: 4, MaxPartySize: 6, IsActive: &inactive,
	})
	require.NoError(t, err)
	assert.Equal(t, "18:00", slot.StartTime)

	stored, err := f.slots.FindByID(ctx, r.ID, slot.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsActive)

	_, err = svc.CreateSlot(ctx, r.ID, dto.TimeSlotRequest{DayOfWeek: 1, StartTime: "21:00", EndTime: "18:00", MaxReservations: 1, MaxPartySize: 1})
	assert.ErrorIs(t, err, ErrInvalidSlotWindow)

	active := true
	updated, err := svc.UpdateSlot(ctx, r.ID, slot.ID, dto.TimeSlotRequest{
		DayOfWeek: 2, StartTime: "18:30", EndTime: "21:00", MaxReservations: 4, MaxPartySize: 6, IsActive: &active,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, updated.DayOfWeek)
	assert.True(t, updated.IsActive)

	_, err = svc.UpdateSlot(ctx, r.ID+1, slot.ID, dto.TimeSlotRequest{StartTime: "18:30", EndTime: "21:00", MaxReservations: 1, MaxPartySize: 1})
	assert.ErrorIs(t, err, ErrSlotNotFound)

	require.NoError(t, svc.DeleteSlot(ctx, r.ID, slot.ID))
	assert.ErrorIs(t, svc.DeleteSlot(ctx, r.ID, slot.ID), ErrSlotNotFound)
}

func TestDeleteSlot_KeepsReservations(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	r := f.restaurant(t, "casa-luz", models.ReservationForm)
	slot := f.slot(t, r.ID, time.Monday, "13:00", "15:00", 2, 4)

	res, err := f.svc.CreateReservation(ctx, "casa-luz", booking("ana", 2, monday, "13:00"), "")
	require.NoError(t, err)

	require.NoError(t, newRestaurantService(f, nil).DeleteSlot(ctx, r.ID, slot.ID))

	stored, err := f.reservations.FindByID(ctx, r.ID, res.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.TimeSlotID)
}

func TestMenuService_NormalizesAllergens(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	mem := newMemCache()
	svc := NewMenuService(repository.NewMenuRepository(f.db), mem)
	r := f.restaurant(t, "casa-luz", models.ReservationForm)

	cat, err := svc.CreateCategory(ctx, r, dto.CreateCategoryRequest{Name: "Mains"})
	require.NoError(t, err)

	hidden := false
	item, err := svc.CreateItem(ctx, r, dto.CreateMenuItemRequest{
		CategoryID: cat.ID, Name: "Pad Thai", Price: 12.5,
		Allergens: json.RawMessage(`"peanut, egg ,"`), IsAvailable: &hidden,
	})
	require.NoError(t, err)
	assert.JSONEq(t, `["peanut","egg"]`, string(item.Allergens))

	_, err = svc.CreateItem(ctx, r, dto.CreateMenuItemRequest{CategoryID: cat.ID + 99, Name: "Ghost"})
	assert.ErrorIs(t, err, ErrCategoryNotFound)

	menu, err := svc.GetMenu(ctx, r.ID)
	require.NoError(t, err)
	require.Len(t, menu, 1)
	require.Len(t, menu[0].Items, 1)
	assert.False(t, menu[0].Items[0].IsAvailable)
	assert.Contains(t, mem.deleted, cache.PageKey(r.Slug))
}

func TestProfileService_UpdateContactReplacesHours(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := NewProfileService(repository.NewProfileRepository(f.db), nil)
	r := f.restaurant(t, "casa-luz", models.ReservationForm)

	_, err := svc.UpdateContact(ctx, r, dto.UpdateContactRequest{
		Phone: "+66 2 000 0000",
		OpeningHours: []dto.OpeningHoursRequest{
			{DayOfWeek: 1, OpenTime: "11:00", CloseTime: "22:00"},
			{DayOfWeek: 0, IsClosed: true},
		},
	})
	require.NoError(t, err)

	profile, err := svc.UpdateContact(ctx, r, dto.UpdateContactRequest{
		Phone:        "+66 2 111 1111",
		OpeningHours: []dto.OpeningHoursRequest{{DayOfWeek: 2, OpenTime: "10:00:00", CloseTime: "20:00"}},
	})
	require.NoError(t, err)
	require.NotNil(t, profile.Contact)
	assert.Equal(t, "+66 2 111 1111", profile.Contact.Phone)
	require.Len(t, profile.OpeningHours, 1)
	assert.Equal(t, "10:00", profile.OpeningHours[0].OpenTime)

	_, err = svc.UpdateContact(ctx, r, dto.UpdateContactRequest{
		OpeningHours: []dto.OpeningHoursRequest{{DayOfWeek: 2, OpenTime: "late", CloseTime: "20:00"}},
	})
	assert.ErrorIs(t, err, ErrInvalidTime)
}

func TestProfileService_AddLink(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := NewProfileService(repository.NewProfileRepository(f.db), nil)
	r := f.restaurant(t, "casa-luz", models.ReservationForm)

	social, err := svc.AddLink(ctx, r, dto.CreateLinkRequest{Kind: "social", Platform: "instagram", URL: "https://instagram.com/casaluz"})
	require.NoError(t, err)
	assert.IsType(t, &models.SocialLink{}, social)

	delivery, err := svc.AddLink(ctx, r, dto.CreateLinkRequest{Kind: "delivery", Platform: "grab", URL: "https://grab.com/casaluz"})
	require.NoError(t, err)
	assert.IsType(t, &models.DeliveryLink{}, delivery)

	profile, err := svc.GetProfile(ctx, r.ID)
	require.NoError(t, err)
	assert.Len(t, profile.Social, 1)
	assert.Len(t, profile.Delivery, 1)
	assert.Nil(t, profile.Contact)
}
