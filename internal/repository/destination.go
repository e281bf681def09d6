package repository

import (
	"context"
	"errors"

	"highpass/internal/cache"
	"highpass/internal/models"
	"highpass/internal/validation"

	"gorm.io/gorm"
)

// DestinationRepository defines persistence operations for the catalog.
type DestinationRepository interface {
	ListActive(ctx context.Context) ([]models.Destination, error)
	GetBySlug(ctx context.Context, slug string) (*models.Destination, error)
	GetByID(ctx context.Context, id uint) (*models.Destination, error)
	GetActiveByName(ctx context.Context, name string) (*models.Destination, error)
	Create(ctx context.Context, destination *models.Destination) error
	Update(ctx context.Context, destination *models.Destination) error
}

type destinationRepository struct {
	db *gorm.DB
}

// NewDestinationRepository returns a new DestinationRepository implementation.
func NewDestinationRepository(db *gorm.DB) DestinationRepository {
	return &destinationRepository{db: db}
}

func (r *destinationRepository) ListActive(ctx context.Context) ([]models.Destination, error) {
	var destinations []models.Destination

	err := cache.Aside(ctx, cache.CatalogKey, &destinations, cache.CatalogTTL, func() error {
		if err := r.db.WithContext(ctx).
			Where("active = ?", true).
			Order("name ASC").
			Find(&destinations).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return destinations, nil
}

func (r *destinationRepository) GetBySlug(ctx context.Context, slug string) (*models.Destination, error) {
	var destination models.Destination
	key := cache.DestinationKey(slug)

	err := cache.Aside(ctx, key, &destination, cache.DestinationTTL, func() error {
		if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&destination).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Destination", slug)
			}
			return models.NewInternalError(err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &destination, nil
}

func (r *destinationRepository) GetByID(ctx context.Context, id uint) (*models.Destination, error) {
	var destination models.Destination
	if err := r.db.WithContext(ctx).First(&destination, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Destination", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &destination, nil
}

// GetActiveByName resolves a catalog entry by its display name. Returns
// (nil, nil) when no active destination matches, so callers can turn a
// miss into their own validation error.
func (r *destinationRepository) GetActiveByName(ctx context.Context, name string) (*models.Destination, error) {
	var destination models.Destination
	if err := r.db.WithContext(ctx).
		Where("name = ? AND active = ?", name, true).
		First(&destination).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &destination, nil
}

func (r *destinationRepository) Create(ctx context.Context, destination *models.Destination) error {
	if err := validation.ValidateDestinationSlug(destination.Slug); err != nil {
		return models.NewValidationError(err.Error())
	}
	if err := r.db.WithContext(ctx).Create(destination).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewValidationError("Destination already exists")
		}
		return models.NewInternalError(err)
	}
	cache.InvalidateDestination(ctx, destination.Slug)
	return nil
}

func (r *destinationRepository) Update(ctx context.Context, destination *models.Destination) error {
	if err := r.db.WithContext(ctx).Save(destination).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateDestination(ctx, destination.Slug)
	return nil
}
