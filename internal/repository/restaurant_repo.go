package repository

import (
	"context"

	"github.com/Eursukkul/menulink/internal/models"
	"gorm.io/gorm"
)

type RestaurantRepository interface {
	Create(ctx context.Context, tx *gorm.DB, restaurant *models.Restaurant) error
	FindByID(ctx context.Context, id uint) (*models.Restaurant, error)
	FindBySlug(ctx context.Context, slug string) (*models.Restaurant, error)
	FindByOwner(ctx context.Context, ownerID string) (*models.Restaurant, error)
	ExistsBySlug(ctx context.Context, tx *gorm.DB, slug string) (bool, error)
	Update(ctx context.Context, id uint, fields map[string]any) error
	GetDB() *gorm.DB
}

type restaurantRepository struct {
	db *gorm.DB
}

func NewRestaurantRepository(db *gorm.DB) RestaurantRepository {
	return &restaurantRepository{db: db}
}

func (r *restaurantRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *restaurantRepository) Create(ctx context.Context, tx *gorm.DB, restaurant *models.Restaurant) error {
	return tx.WithContext(ctx).Create(restaurant).Error
}

func (r *restaurantRepository) FindByID(ctx context.Context, id uint) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	if err := r.db.WithContext(ctx).First(&restaurant, id).Error; err != nil {
		return nil, err
	}
	return &restaurant, nil
}

func (r *restaurantRepository) FindBySlug(ctx context.Context, slug string) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&restaurant).Error; err != nil {
		return nil, err
	}
	return &restaurant, nil
}

func (r *restaurantRepository) FindByOwner(ctx context.Context, ownerID string) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	if err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).First(&restaurant).Error; err != nil {
		return nil, err
	}
	return &restaurant, nil
}

func (r *restaurantRepository) ExistsBySlug(ctx context.Context, tx *gorm.DB, slug string) (bool, error) {
	var count int64
	err := tx.WithContext(ctx).Model(&models.Restaurant{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

func (r *restaurantRepository) Update(ctx context.Context, id uint, fields map[string]any) error {
	return r.db.WithContext(ctx).Model(&models.Restaurant{}).Where("id = ?", id).Updates(fields).Error
}
