package repository

import (
	"context"
	"errors"

	"highpass/internal/models"

	"gorm.io/gorm"
)

// BookingRepository defines persistence operations for bookings.
type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id uint) (*models.Booking, error)
	ListByUser(ctx context.Context, userID uint) ([]models.Booking, error)
	Update(ctx context.Context, booking *models.Booking) error
}

type bookingRepository struct {
	db *gorm.DB
}

// NewBookingRepository returns a new BookingRepository implementation.
func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	if err := r.db.WithContext(ctx).Create(booking).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *bookingRepository) GetByID(ctx context.Context, id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Destination").
		First(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Booking", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &booking, nil
}

func (r *bookingRepository) ListByUser(ctx context.Context, userID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Destination").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&bookings).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return bookings, nil
}

func (r *bookingRepository) Update(ctx context.Context, booking *models.Booking) error {
	if err := r.db.WithContext(ctx).Save(booking).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
