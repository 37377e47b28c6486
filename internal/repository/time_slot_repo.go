package repository

import (
	"context"

	"github.com/Eursukkul/menulink/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TimeSlotRepository interface {
	CreateBatch(ctx context.Context, tx *gorm.DB, slots []models.ReservationTimeSlot) error
	Create(ctx context.Context, slot *models.ReservationTimeSlot) error
	FindByID(ctx context.Context, restaurantID, id uint) (*models.ReservationTimeSlot, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.ReservationTimeSlot, error)
	ListByRestaurant(ctx context.Context, restaurantID uint) ([]models.ReservationTimeSlot, error)
	ListForDay(ctx context.Context, tx *gorm.DB, restaurantID uint, dayOfWeek int) ([]models.ReservationTimeSlot, error)
	Save(ctx context.Context, slot *models.ReservationTimeSlot) error
	Delete(ctx context.Context, restaurantID, id uint) error
}

type timeSlotRepository struct {
	db *gorm.DB
}

func NewTimeSlotRepository(db *gorm.DB) TimeSlotRepository {
	return &timeSlotRepository{db: db}
}

func (r *timeSlotRepository) CreateBatch(ctx context.Context, tx *gorm.DB, slots []models.ReservationTimeSlot) error {
	if len(slots) == 0 {
		return nil
	}
	return tx.WithContext(ctx).Create(&slots).Error
}

func (r *timeSlotRepository) Create(ctx context.Context, slot *models.ReservationTimeSlot) error {
	db := r.db.WithContext(ctx)
	if err := db.Create(slot).Error; err != nil {
		return err
	}
	if !slot.IsActive {
		return db.Model(slot).Update("is_active", false).Error
	}
	return nil
}

func (r *timeSlotRepository) FindByID(ctx context.Context, restaurantID, id uint) (*models.ReservationTimeSlot, error) {
	var slot models.ReservationTimeSlot
	err := r.db.WithContext(ctx).Where("restaurant_id = ?", restaurantID).First(&slot, id).Error
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

// FindByIDForUpdate takes a row lock on the slot for the rest of tx. Bookings
// for the same slot serialize on this lock.
func (r *timeSlotRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.ReservationTimeSlot, error) {
	var slot models.ReservationTimeSlot
	if err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&slot, id).Error; err != nil {
		return nil, err
	}
	return &slot, nil
}

func (r *timeSlotRepository) ListByRestaurant(ctx context.Context, restaurantID uint) ([]models.ReservationTimeSlot, error) {
	var slots []models.ReservationTimeSlot
	err := r.db.WithContext(ctx).
		Where("restaurant_id = ?", restaurantID).
		Order("day_of_week ASC, start_time ASC, id ASC").
		Find(&slots).Error
	return slots, err
}

// ListForDay returns active and inactive slots; the availability engine
// decides which ones count.
func (r *timeSlotRepository) ListForDay(ctx context.Context, tx *gorm.DB, restaurantID uint, dayOfWeek int) ([]models.ReservationTimeSlot, error) {
	var slots []models.ReservationTimeSlot
	err := tx.WithContext(ctx).
		Where("restaurant_id = ? AND day_of_week = ?", restaurantID, dayOfWeek).
		Order("start_time ASC, id ASC").
		Find(&slots).Error
	return slots, err
}

func (r *timeSlotRepository) Save(ctx context.Context, slot *models.ReservationTimeSlot) error {
	return r.db.WithContext(ctx).Save(slot).Error
}

// Delete removes the slot and detaches any reservations that referenced it.
// SQLite runs without foreign key enforcement, so the detach is explicit.
func (r *timeSlotRepository) Delete(ctx context.Context, restaurantID, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("restaurant_id = ?", restaurantID).Delete(&models.ReservationTimeSlot{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Model(&models.Reservation{}).
			Where("time_slot_id = ?", id).
			Update("time_slot_id", nil).Error
	})
}
