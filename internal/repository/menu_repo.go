package repository

import (
	"context"

	"github.com/Eursukkul/menulink/internal/models"
	"gorm.io/gorm"
)

type MenuRepository interface {
	CreateCategory(ctx context.Context, category *models.MenuCategory) error
	FindCategory(ctx context.Context, restaurantID, id uint) (*models.MenuCategory, error)
	CreateItem(ctx context.Context, item *models.MenuItem) error
	ListMenu(ctx context.Context, restaurantID uint) ([]models.MenuCategory, error)
}

type menuRepository struct {
	db *gorm.DB
}

func NewMenuRepository(db *gorm.DB) MenuRepository {
	return &menuRepository{db: db}
}

func (r *menuRepository) CreateCategory(ctx context.Context, category *models.MenuCategory) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *menuRepository) FindCategory(ctx context.Context, restaurantID, id uint) (*models.MenuCategory, error) {
	var category models.MenuCategory
	err := r.db.WithContext(ctx).Where("restaurant_id = ?", restaurantID).First(&category, id).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// CreateItem writes is_available explicitly; gorm would otherwise replace a
// false value with the column default.
func (r *menuRepository) CreateItem(ctx context.Context, item *models.MenuItem) error {
	db := r.db.WithContext(ctx)
	if err := db.Create(item).Error; err != nil {
		return err
	}
	if !item.IsAvailable {
		return db.Model(item).Update("is_available", false).Error
	}
	return nil
}

// ListMenu loads categories with their items, both in display order.
func (r *menuRepository) ListMenu(ctx context.Context, restaurantID uint) ([]models.MenuCategory, error) {
	var categories []models.MenuCategory
	err := r.db.WithContext(ctx).
		Where("restaurant_id = ?", restaurantID).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC, id ASC")
		}).
		Order("display_order ASC, id ASC").
		Find(&categories).Error
	return categories, err
}
