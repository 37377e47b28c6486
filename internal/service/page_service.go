package service

import (
	"context"
	"errors"
	"unicode/utf8"

	"github.com/Eursukkul/menulink/internal/dto"
	"github.com/Eursukkul/menulink/internal/models"
	"github.com/Eursukkul/menulink/internal/page"
	"github.com/Eursukkul/menulink/internal/repository"
	"github.com/Eursukkul/menulink/pkg/cache"
	"github.com/Eursukkul/menulink/pkg/logger"
	"github.com/Eursukkul/menulink/pkg/telemetry"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PageService assembles the public page of a restaurant and records the
// traffic it receives.
type PageService interface {
	Load(ctx context.Context, slug string) (*page.ViewModel, error)
	RecordPageView(ctx context.Context, restaurantID uint, referrer, userAgent string)
	RecordClick(ctx context.Context, slug string, req dto.ButtonClickRequest) error
}

type PageDeps struct {
	Restaurants repository.RestaurantRepository
	Menu        repository.MenuRepository
	Profile     repository.ProfileRepository
	Analytics   repository.AnalyticsRepository
	Assets      page.AssetResolver
	Cache       cache.Cache
	Metrics     *telemetry.Metrics
}

type pageService struct {
	restaurantRepo repository.RestaurantRepository
	menuRepo       repository.MenuRepository
	profileRepo    repository.ProfileRepository
	analyticsRepo  repository.AnalyticsRepository
	assets         page.AssetResolver
	cache          cache.Cache
	metrics        *telemetry.Metrics
}

func NewPageService(deps PageDeps) PageService {
	s := &pageService{
		restaurantRepo: deps.Restaurants,
		menuRepo:       deps.Menu,
		profileRepo:    deps.Profile,
		analyticsRepo:  deps.Analytics,
		assets:         deps.Assets,
		cache:          deps.Cache,
		metrics:        deps.Metrics,
	}
	if s.cache == nil {
		s.cache = cache.Noop{}
	}
	if s.metrics == nil {
		s.metrics = &telemetry.Metrics{}
	}
	return s
}

func (s *pageService) Load(ctx context.Context, slug string) (*page.ViewModel, error) {
	log := logger.Ctx(ctx).With(zap.String("slug", slug))
	key := cache.PageKey(slug)

	var cached page.ViewModel
	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		log.Warn("page cache read failed", zap.Error(err))
	} else if found {
		return &cached, nil
	}

	restaurant, err := s.restaurantRepo.FindBySlug(ctx, slug)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRestaurantNotFound
	}
	if err != nil {
		return nil, err
	}

	src, err := s.loadSource(ctx, restaurant)
	if err != nil {
		return nil, err
	}
	vm, err := page.BuildViewModel(*src, s.assets)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, key, vm); err != nil {
		log.Warn("page cache write failed", zap.Error(err))
	}
	return vm, nil
}

func (s *pageService) loadSource(ctx context.Context, restaurant *models.Restaurant) (*page.Source, error) {
	src := &page.Source{Restaurant: *restaurant}
	var err error
	if src.Contact, err = s.profileRepo.FindContact(ctx, restaurant.ID); err != nil {
		return nil, err
	}
	if src.OpeningHours, err = s.profileRepo.ListOpeningHours(ctx, restaurant.ID); err != nil {
		return nil, err
	}
	if src.Categories, err = s.menuRepo.ListMenu(ctx, restaurant.ID); err != nil {
		return nil, err
	}
	if src.Social, err = s.profileRepo.ListSocialLinks(ctx, restaurant.ID); err != nil {
		return nil, err
	}
	if src.Delivery, err = s.profileRepo.ListDeliveryLinks(ctx, restaurant.ID); err != nil {
		return nil, err
	}
	return src, nil
}

// RecordPageView never fails the page render; write errors are logged.
func (s *pageService) RecordPageView(ctx context.Context, restaurantID uint, referrer, userAgent string) {
	view := &models.PageView{
		RestaurantID: restaurantID,
		Referrer:     truncate(referrer, 512),
		UserAgent:    truncate(userAgent, 512),
	}
	if err := s.analyticsRepo.CreatePageView(ctx, view); err != nil {
		logger.Ctx(ctx).Warn("failed to record page view", zap.Uint("restaurant_id", restaurantID), zap.Error(err))
		return
	}
	s.metrics.PageViews.Inc(ctx, telemetry.RestaurantAttr(restaurantID))
}

func (s *pageService) RecordClick(ctx context.Context, slug string, req dto.ButtonClickRequest) error {
	restaurant, err := s.restaurantRepo.FindBySlug(ctx, slug)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrRestaurantNotFound
	}
	if err != nil {
		return err
	}
	return s.analyticsRepo.CreateButtonClick(ctx, &models.ButtonClick{
		RestaurantID: restaurant.ID,
		ButtonType:   req.ButtonType,
		TargetURL:    req.TargetURL,
	})
}

// truncate cuts s to at most n bytes without splitting a UTF-8 sequence.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
