package service

import (
	"context"

	"github.com/Eursukkul/menulink/internal/availability"
	"github.com/Eursukkul/menulink/internal/dto"
	"github.com/Eursukkul/menulink/internal/models"
	"github.com/Eursukkul/menulink/internal/repository"
	"github.com/Eursukkul/menulink/pkg/cache"
	"gorm.io/gorm"
)

// Profile is the contact block of a restaurant with its weekly hours.
type Profile struct {
	Contact      *models.ContactInfo   `json:"contact"`
	OpeningHours []models.OpeningHours `json:"opening_hours"`
	Social       []models.SocialLink   `json:"social"`
	Delivery     []models.DeliveryLink `json:"delivery"`
}

type ProfileService interface {
	GetProfile(ctx context.Context, restaurantID uint) (*Profile, error)
	UpdateContact(ctx context.Context, restaurant *models.Restaurant, req dto.UpdateContactRequest) (*Profile, error)
	AddLink(ctx context.Context, restaurant *models.Restaurant, req dto.CreateLinkRequest) (any, error)
}

type profileService struct {
	profileRepo repository.ProfileRepository
	pageCache   cache.Cache
}

func NewProfileService(profileRepo repository.ProfileRepository, pageCache cache.Cache) ProfileService {
	if pageCache == nil {
		pageCache = cache.Noop{}
	}
	return &profileService{profileRepo: profileRepo, pageCache: pageCache}
}

func (s *profileService) GetProfile(ctx context.Context, restaurantID uint) (*Profile, error) {
	contact, err := s.profileRepo.FindContact(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	hours, err := s.profileRepo.ListOpeningHours(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	social, err := s.profileRepo.ListSocialLinks(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	delivery, err := s.profileRepo.ListDeliveryLinks(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	return &Profile{Contact: contact, OpeningHours: hours, Social: social, Delivery: delivery}, nil
}

// UpdateContact replaces the contact row and, when hours are sent, the whole
// weekly schedule in one transaction.
func (s *profileService) UpdateContact(ctx context.Context, restaurant *models.Restaurant, req dto.UpdateContactRequest) (*Profile, error) {
	hours := make([]models.OpeningHours, 0, len(req.OpeningHours))
	for _, h := range req.OpeningHours {
		row := models.OpeningHours{RestaurantID: restaurant.ID, DayOfWeek: h.DayOfWeek, IsClosed: h.IsClosed}
		if !h.IsClosed {
			open, err := availability.NormalizeClock(h.OpenTime)
			if err != nil {
				return nil, err
			}
			closing, err := availability.NormalizeClock(h.CloseTime)
			if err != nil {
				return nil, err
			}
			row.OpenTime, row.CloseTime = open, closing
		}
		hours = append(hours, row)
	}

	contact := &models.ContactInfo{
		RestaurantID: restaurant.ID,
		Phone:        req.Phone,
		Email:        req.Email,
		Address:      req.Address,
		City:         req.City,
		MapURL:       req.MapURL,
	}
	err := s.profileRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.profileRepo.UpsertContact(ctx, tx, contact); err != nil {
			return err
		}
		if req.OpeningHours == nil {
			return nil
		}
		return s.profileRepo.ReplaceOpeningHours(ctx, tx, restaurant.ID, hours)
	})
	if err != nil {
		return nil, err
	}
	invalidatePage(ctx, s.pageCache, restaurant.Slug)
	return s.GetProfile(ctx, restaurant.ID)
}

func (s *profileService) AddLink(ctx context.Context, restaurant *models.Restaurant, req dto.CreateLinkRequest) (any, error) {
	if req.Kind == "delivery" {
		link := &models.DeliveryLink{RestaurantID: restaurant.ID, Platform: req.Platform, URL: req.URL, DisplayOrder: req.DisplayOrder}
		if err := s.profileRepo.CreateDeliveryLink(ctx, link); err != nil {
			return nil, err
		}
		invalidatePage(ctx, s.pageCache, restaurant.Slug)
		return link, nil
	}

	link := &models.SocialLink{RestaurantID: restaurant.ID, Platform: req.Platform, URL: req.URL, DisplayOrder: req.DisplayOrder}
	if err := s.profileRepo.CreateSocialLink(ctx, link); err != nil {
		return nil, err
	}
	invalidatePage(ctx, s.pageCache, restaurant.Slug)
	return link, nil
}
