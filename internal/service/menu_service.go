package service

import (
	"context"
	"errors"
	"strings"

	"github.com/Eursukkul/menulink/internal/dto"
	"github.com/Eursukkul/menulink/internal/models"
	"github.com/Eursukkul/menulink/internal/page"
	"github.com/Eursukkul/menulink/internal/repository"
	"github.com/Eursukkul/menulink/pkg/cache"
	"gorm.io/gorm"
)

type MenuService interface {
	GetMenu(ctx context.Context, restaurantID uint) ([]models.MenuCategory, error)
	CreateCategory(ctx context.Context, restaurant *models.Restaurant, req dto.CreateCategoryRequest) (*models.MenuCategory, error)
	CreateItem(ctx context.Context, restaurant *models.Restaurant, req dto.CreateMenuItemRequest) (*models.MenuItem, error)
}

type menuService struct {
	menuRepo  repository.MenuRepository
	pageCache cache.Cache
}

func NewMenuService(menuRepo repository.MenuRepository, pageCache cache.Cache) MenuService {
	if pageCache == nil {
		pageCache = cache.Noop{}
	}
	return &menuService{menuRepo: menuRepo, pageCache: pageCache}
}

func (s *menuService) GetMenu(ctx context.Context, restaurantID uint) ([]models.MenuCategory, error) {
	categories, err := s.menuRepo.ListMenu(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	// Stored allergens are rewritten to the list shape on the way out.
	for i := range categories {
		for j := range categories[i].Items {
			item := &categories[i].Items[j]
			item.Allergens = page.EncodeAllergens(page.NormalizeAllergens(item.Allergens))
		}
	}
	return categories, nil
}

func (s *menuService) CreateCategory(ctx context.Context, restaurant *models.Restaurant, req dto.CreateCategoryRequest) (*models.MenuCategory, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrEmptyName
	}
	category := &models.MenuCategory{
		RestaurantID: restaurant.ID,
		Name:         name,
		Description:  req.Description,
		DisplayOrder: req.DisplayOrder,
	}
	if err := s.menuRepo.CreateCategory(ctx, category); err != nil {
		return nil, err
	}
	invalidatePage(ctx, s.pageCache, restaurant.Slug)
	return category, nil
}

func (s *menuService) CreateItem(ctx context.Context, restaurant *models.Restaurant, req dto.CreateMenuItemRequest) (*models.MenuItem, error) {
	if _, err := s.menuRepo.FindCategory(ctx, restaurant.ID, req.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrEmptyName
	}

	available := true
	if req.IsAvailable != nil {
		available = *req.IsAvailable
	}
	item := &models.MenuItem{
		RestaurantID: restaurant.ID,
		CategoryID:   req.CategoryID,
		Name:         name,
		Description:  req.Description,
		Price:        req.Price,
		ImageURL:     req.ImageURL,
		Allergens:    page.EncodeAllergens(page.NormalizeAllergens(req.Allergens)),
		IsAvailable:  available,
		DisplayOrder: req.DisplayOrder,
	}
	if err := s.menuRepo.CreateItem(ctx, item); err != nil {
		return nil, err
	}
	invalidatePage(ctx, s.pageCache, restaurant.Slug)
	return item, nil
}
