package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"highpass/internal/models"

	"gorm.io/gorm"
)

// PermitRepository defines persistence operations for permit applications.
type PermitRepository interface {
	Create(ctx context.Context, permit *models.PermitApplication) error
	GetByID(ctx context.Context, id uint) (*models.PermitApplication, error)
	ListByTourist(ctx context.Context, touristID uint) ([]models.PermitApplication, error)
	ListAll(ctx context.Context, limit, offset int) ([]models.PermitApplication, error)
	Review(ctx context.Context, id uint, decision models.PermitStatus, reviewerID uint, notes string) (*models.PermitApplication, error)
}

type permitRepository struct {
	db *gorm.DB
}

// NewPermitRepository returns a new PermitRepository implementation.
func NewPermitRepository(db *gorm.DB) PermitRepository {
	return &permitRepository{db: db}
}

func (r *permitRepository) Create(ctx context.Context, permit *models.PermitApplication) error {
	if err := r.db.WithContext(ctx).Create(permit).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *permitRepository) GetByID(ctx context.Context, id uint) (*models.PermitApplication, error) {
	var permit models.PermitApplication
	if err := r.db.WithContext(ctx).First(&permit, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Permit", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &permit, nil
}

func (r *permitRepository) ListByTourist(ctx context.Context, touristID uint) ([]models.PermitApplication, error) {
	var permits []models.PermitApplication
	if err := r.db.WithContext(ctx).
		Where("tourist_id = ?", touristID).
		Order("created_at DESC").
		Find(&permits).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return permits, nil
}

func (r *permitRepository) ListAll(ctx context.Context, limit, offset int) ([]models.PermitApplication, error) {
	var permits []models.PermitApplication
	if err := r.db.WithContext(ctx).
		Preload("Tourist").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&permits).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return permits, nil
}

// Review applies a decision to a pending permit. The write is conditional
// on (id, status=Pending, version): a permit that was decided between the
// read and the write loses zero rows and the caller gets a CONFLICT, while
// a permit already terminal at read time gets ALREADY_DECIDED.
func (r *permitRepository) Review(ctx context.Context, id uint, decision models.PermitStatus, reviewerID uint, notes string) (*models.PermitApplication, error) {
	var permit models.PermitApplication

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&permit, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Permit", id)
			}
			return models.NewInternalError(err)
		}

		if !models.CanTransition(permit.Status, decision) {
			if models.IsTerminal(permit.Status) {
				return models.NewAlreadyDecidedError(id, permit.Status)
			}
			return models.NewValidationError(fmt.Sprintf("Permit cannot move from %s to %s", permit.Status, decision))
		}

		now := time.Now()
		result := tx.Model(&models.PermitApplication{}).
			Where("id = ? AND status = ? AND version = ?", id, models.PermitStatusPending, permit.Version).
			Updates(map[string]interface{}{
				"status":         decision,
				"reviewed_by_id": reviewerID,
				"reviewer_notes": notes,
				"reviewed_at":    now,
				"version":        permit.Version + 1,
			})
		if result.Error != nil {
			return models.NewInternalError(result.Error)
		}
		if result.RowsAffected == 0 {
			// Another reviewer decided the permit between our read and write.
			return models.NewConflictError(fmt.Sprintf("Permit %d was reviewed concurrently, re-fetch and retry", id))
		}

		permit.Status = decision
		permit.ReviewedByID = &reviewerID
		permit.ReviewerNotes = notes
		permit.ReviewedAt = &now
		permit.Version++
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &permit, nil
}
