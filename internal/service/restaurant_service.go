package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/Eursukkul/menulink/internal/availability"
	"github.com/Eursukkul/menulink/internal/dto"
	"github.com/Eursukkul/menulink/internal/models"
	"github.com/Eursukkul/menulink/internal/repository"
	"github.com/Eursukkul/menulink/pkg/cache"
	"gorm.io/gorm"
)

var (
	slugPattern  = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
	slugReplacer = regexp.MustCompile(`[^a-z0-9]+`)
)

type RestaurantService interface {
	Onboard(ctx context.Context, ownerID string, req dto.OnboardingRequest) (*models.Restaurant, error)
	GetByOwner(ctx context.Context, ownerID string) (*models.Restaurant, error)
	Update(ctx context.Context, restaurant *models.Restaurant, req dto.UpdateRestaurantRequest) (*models.Restaurant, error)

	ListSlots(ctx context.Context, restaurantID uint) ([]models.ReservationTimeSlot, error)
	CreateSlot(ctx context.Context, restaurantID uint, req dto.TimeSlotRequest) (*models.ReservationTimeSlot, error)
	UpdateSlot(ctx context.Context, restaurantID, id uint, req dto.TimeSlotRequest) (*models.ReservationTimeSlot, error)
	DeleteSlot(ctx context.Context, restaurantID, id uint) error
}

type restaurantService struct {
	restaurantRepo repository.RestaurantRepository
	slotRepo       repository.TimeSlotRepository
	pageCache      cache.Cache
}

func NewRestaurantService(restaurantRepo repository.RestaurantRepository, slotRepo repository.TimeSlotRepository, pageCache cache.Cache) RestaurantService {
	if pageCache == nil {
		pageCache = cache.Noop{}
	}
	return &restaurantService{
		restaurantRepo: restaurantRepo,
		slotRepo:       slotRepo,
		pageCache:      pageCache,
	}
}

// Slugify lowercases name and joins its alphanumeric runs with dashes.
func Slugify(name string) string {
	s := slugReplacer.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(s, "-")
}

func (s *restaurantService) Onboard(ctx context.Context, ownerID string, req dto.OnboardingRequest) (*models.Restaurant, error) {
	if _, err := s.restaurantRepo.FindByOwner(ctx, ownerID); err == nil {
		return nil, ErrAlreadyOnboarded
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	slug := strings.TrimSpace(req.Slug)
	if slug == "" {
		slug = Slugify(req.Name)
	}
	if len(slug) > 80 || !slugPattern.MatchString(slug) {
		return nil, ErrInvalidSlug
	}

	mode := models.ReservationForm
	if req.ReservationMode != "" {
		m, err := models.ParseReservationMode(req.ReservationMode)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidReservationMode, err)
		}
		mode = m
	}
	theme := models.ThemeTraditional
	if req.ThemeType != 0 {
		theme = models.ThemeType(req.ThemeType)
	}
	language := req.Language
	if language == "" {
		language = "en"
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrEmptyName
	}

	restaurant := &models.Restaurant{
		OwnerID:         ownerID,
		Slug:            slug,
		Name:            name,
		Description:     req.Description,
		ThemeType:       theme,
		ReservationMode: mode,
		Language:        language,
	}

	err := s.restaurantRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := s.restaurantRepo.ExistsBySlug(ctx, tx, slug)
		if err != nil {
			return err
		}
		if taken {
			return ErrSlugTaken
		}
		if err := s.restaurantRepo.Create(ctx, tx, restaurant); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrSlugTaken
			}
			return err
		}
		return s.slotRepo.CreateBatch(ctx, tx, availability.DefaultSlots(restaurant.ID))
	})
	if err != nil {
		return nil, err
	}
	return restaurant, nil
}

func (s *restaurantService) GetByOwner(ctx context.Context, ownerID string) (*models.Restaurant, error) {
	restaurant, err := s.restaurantRepo.FindByOwner(ctx, ownerID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOnboardingRequired
	}
	return restaurant, err
}

func (s *restaurantService) Update(ctx context.Context, restaurant *models.Restaurant, req dto.UpdateRestaurantRequest) (*models.Restaurant, error) {
	fields := map[string]any{}
	setString := func(column string, v *string) {
		if v != nil {
			fields[column] = strings.TrimSpace(*v)
		}
	}
	setString("name", req.Name)
	setString("description", req.Description)
	setString("logo_url", req.LogoURL)
	setString("cover_image_url", req.CoverImageURL)
	setString("theme_color", req.ThemeColor)
	setString("secondary_color", req.SecondaryColor)
	setString("font_family", req.FontFamily)
	setString("external_booking_url", req.ExternalBookingURL)
	setString("language", req.Language)
	if req.ThemeType != nil {
		fields["theme_type"] = models.ThemeType(*req.ThemeType)
	}
	if req.ReservationMode != nil {
		mode, err := models.ParseReservationMode(*req.ReservationMode)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidReservationMode, err)
		}
		fields["reservation_mode"] = mode
	}
	if name, ok := fields["name"]; ok && name == "" {
		return nil, ErrEmptyName
	}

	if len(fields) > 0 {
		if err := s.restaurantRepo.Update(ctx, restaurant.ID, fields); err != nil {
			return nil, err
		}
		invalidatePage(ctx, s.pageCache, restaurant.Slug)
	}
	return s.restaurantRepo.FindByID(ctx, restaurant.ID)
}

func (s *restaurantService) ListSlots(ctx context.Context, restaurantID uint) ([]models.ReservationTimeSlot, error) {
	return s.slotRepo.ListByRestaurant(ctx, restaurantID)
}

func slotFromRequest(req dto.TimeSlotRequest, slot *models.ReservationTimeSlot) error {
	start, err := availability.NormalizeClock(req.StartTime)
	if err != nil {
		return err
	}
	end, err := availability.NormalizeClock(req.EndTime)
	if err != nil {
		return err
	}
	if end <= start {
		return ErrInvalidSlotWindow
	}
	slot.DayOfWeek = req.DayOfWeek
	slot.StartTime = start
	slot.EndTime = end
	slot.MaxReservations = req.MaxReservations
	slot.MaxPartySize = req.MaxPartySize
	if req.IsActive != nil {
		slot.IsActive = *req.IsActive
	}
	return nil
}

func (s *restaurantService) CreateSlot(ctx context.Context, restaurantID uint, req dto.TimeSlotRequest) (*models.ReservationTimeSlot, error) {
	slot := &models.ReservationTimeSlot{RestaurantID: restaurantID, IsActive: true}
	if err := slotFromRequest(req, slot); err != nil {
		return nil, err
	}
	if err := s.slotRepo.Create(ctx, slot); err != nil {
		return nil, err
	}
	return slot, nil
}

func (s *restaurantService) UpdateSlot(ctx context.Context, restaurantID, id uint, req dto.TimeSlotRequest) (*models.ReservationTimeSlot, error) {
	slot, err := s.slotRepo.FindByID(ctx, restaurantID, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := slotFromRequest(req, slot); err != nil {
		return nil, err
	}
	if err := s.slotRepo.Save(ctx, slot); err != nil {
		return nil, err
	}
	return slot, nil
}

func (s *restaurantService) DeleteSlot(ctx context.Context, restaurantID, id uint) error {
	err := s.slotRepo.Delete(ctx, restaurantID, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrSlotNotFound
	}
	return err
}
