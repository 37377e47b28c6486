package repository

import (
	"context"
	"time"

	"github.com/Eursukkul/menulink/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CustomerRepository interface {
	// Upsert creates the customer unless one already exists for the
	// restaurant and email. Existing rows are left untouched.
	Upsert(ctx context.Context, customer *models.Customer) error
}

type customerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) Upsert(ctx context.Context, customer *models.Customer) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "restaurant_id"}, {Name: "email"}},
		DoNothing: true,
	}).Create(customer).Error
}

type AnalyticsRepository interface {
	CreatePageView(ctx context.Context, view *models.PageView) error
	CreateButtonClick(ctx context.Context, click *models.ButtonClick) error
	PageViewsSince(ctx context.Context, restaurantID uint, since time.Time) ([]models.PageView, error)
	ButtonClicksSince(ctx context.Context, restaurantID uint, since time.Time) ([]models.ButtonClick, error)
}

type analyticsRepository struct {
	db *gorm.DB
}

func NewAnalyticsRepository(db *gorm.DB) AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) CreatePageView(ctx context.Context, view *models.PageView) error {
	return r.db.WithContext(ctx).Create(view).Error
}

func (r *analyticsRepository) CreateButtonClick(ctx context.Context, click *models.ButtonClick) error {
	return r.db.WithContext(ctx).Create(click).Error
}

func (r *analyticsRepository) PageViewsSince(ctx context.Context, restaurantID uint, since time.Time) ([]models.PageView, error) {
	var views []models.PageView
	err := r.db.WithContext(ctx).
		Where("restaurant_id = ? AND created_at >= ?", restaurantID, since).
		Order("created_at ASC").
		Find(&views).Error
	return views, err
}

func (r *analyticsRepository) ButtonClicksSince(ctx context.Context, restaurantID uint, since time.Time) ([]models.ButtonClick, error) {
	var clicks []models.ButtonClick
	err := r.db.WithContext(ctx).
		Where("restaurant_id = ? AND created_at >= ?", restaurantID, since).
		Order("created_at ASC").
		Find(&clicks).Error
	return clicks, err
}

type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	ListRecent(ctx context.Context, restaurantID uint, limit int) ([]models.Notification, error)
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	return r.db.WithContext(ctx).Create(notification).Error
}

func (r *notificationRepository) ListRecent(ctx context.Context, restaurantID uint, limit int) ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.db.WithContext(ctx).
		Where("restaurant_id = ?", restaurantID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&notifications).Error
	return notifications, err
}
