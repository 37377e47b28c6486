package repository

import (
	"context"
	"errors"

	"github.com/Eursukkul/menulink/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProfileRepository covers the public facing restaurant details: contact
// block, opening hours and outbound links.
type ProfileRepository interface {
	FindContact(ctx context.Context, restaurantID uint) (*models.ContactInfo, error)
	UpsertContact(ctx context.Context, tx *gorm.DB, contact *models.ContactInfo) error
	ListOpeningHours(ctx context.Context, restaurantID uint) ([]models.OpeningHours, error)
	ReplaceOpeningHours(ctx context.Context, tx *gorm.DB, restaurantID uint, hours []models.OpeningHours) error
	CreateSocialLink(ctx context.Context, link *models.SocialLink) error
	CreateDeliveryLink(ctx context.Context, link *models.DeliveryLink) error
	ListSocialLinks(ctx context.Context, restaurantID uint) ([]models.SocialLink, error)
	ListDeliveryLinks(ctx context.Context, restaurantID uint) ([]models.DeliveryLink, error)
	GetDB() *gorm.DB
}

type profileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) GetDB() *gorm.DB {
	return r.db
}

// FindContact returns nil without error when no contact block exists yet.
func (r *profileRepository) FindContact(ctx context.Context, restaurantID uint) (*models.ContactInfo, error) {
	var contact models.ContactInfo
	err := r.db.WithContext(ctx).Where("restaurant_id = ?", restaurantID).First(&contact).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &contact, nil
}

func (r *profileRepository) UpsertContact(ctx context.Context, tx *gorm.DB, contact *models.ContactInfo) error {
	return tx.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "restaurant_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"phone", "email", "address", "city", "map_url", "updated_at"}),
	}).Create(contact).Error
}

func (r *profileRepository) ListOpeningHours(ctx context.Context, restaurantID uint) ([]models.OpeningHours, error) {
	var hours []models.OpeningHours
	err := r.db.WithContext(ctx).Where("restaurant_id = ?", restaurantID).Order("day_of_week ASC").Find(&hours).Error
	return hours, err
}

func (r *profileRepository) ReplaceOpeningHours(ctx context.Context, tx *gorm.DB, restaurantID uint, hours []models.OpeningHours) error {
	if err := tx.WithContext(ctx).Where("restaurant_id = ?", restaurantID).Delete(&models.OpeningHours{}).Error; err != nil {
		return err
	}
	if len(hours) == 0 {
		return nil
	}
	for i := range hours {
		hours[i].ID = 0
		hours[i].RestaurantID = restaurantID
	}
	return tx.WithContext(ctx).Create(&hours).Error
}

func (r *profileRepository) CreateSocialLink(ctx context.Context, link *models.SocialLink) error {
	return r.db.WithContext(ctx).Create(link).Error
}

func (r *profileRepository) CreateDeliveryLink(ctx context.Context, link *models.DeliveryLink) error {
	return r.db.WithContext(ctx).Create(link).Error
}

func (r *profileRepository) ListSocialLinks(ctx context.Context, restaurantID uint) ([]models.SocialLink, error) {
	var links []models.SocialLink
	err := r.db.WithContext(ctx).Where("restaurant_id = ?", restaurantID).Order("display_order ASC, id ASC").Find(&links).Error
	return links, err
}

func (r *profileRepository) ListDeliveryLinks(ctx context.Context, restaurantID uint) ([]models.DeliveryLink, error) {
	var links []models.DeliveryLink
	err := r.db.WithContext(ctx).Where("restaurant_id = ?", restaurantID).Order("display_order ASC, id ASC").Find(&links).Error
	return links, err
}
