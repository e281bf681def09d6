package repository

import (
	"context"
	"errors"

	"highpass/internal/models"

	"gorm.io/gorm"
)

// ErrEventAlreadyProcessed signals that a gateway event was applied on a
// previous delivery. Callers should acknowledge the event, not fail it.
var ErrEventAlreadyProcessed = errors.New("payment event already processed")

// PaymentRepository defines persistence operations for gateway payments.
type PaymentRepository interface {
	ApplyCheckoutCompleted(ctx context.Context, payment *models.Payment) error
	GetByEventID(ctx context.Context, eventID string) (*models.Payment, error)
	ListByBooking(ctx context.Context, bookingID uint) ([]models.Payment, error)
}

type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository returns a new PaymentRepository implementation.
func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

// ApplyCheckoutCompleted records a completed checkout and marks the booking
// paid in a single transaction. The unique index on stripe_event_id makes
// the apply idempotent: a replayed event returns ErrEventAlreadyProcessed
// and leaves the booking untouched.
func (r *paymentRepository) ApplyCheckoutCompleted(ctx context.Context, payment *models.Payment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(payment).Error; err != nil {
			if isUniqueConstraintError(err) {
				return ErrEventAlreadyProcessed
			}
			return models.NewInternalError(err)
		}

		result := tx.Model(&models.Booking{}).
			Where("id = ?", payment.BookingID).
			Updates(map[string]interface{}{
				"status":         models.BookingStatusConfirmed,
				"payment_status": models.PaymentStatePaid,
			})
		if result.Error != nil {
			return models.NewInternalError(result.Error)
		}
		if result.RowsAffected == 0 {
			return models.NewNotFoundError("Booking", payment.BookingID)
		}
		return nil
	})
}

func (r *paymentRepository) GetByEventID(ctx context.Context, eventID string) (*models.Payment, error) {
	var payment models.Payment
	if err := r.db.WithContext(ctx).Where("stripe_event_id = ?", eventID).First(&payment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &payment, nil
}

func (r *paymentRepository) ListByBooking(ctx context.Context, bookingID uint) ([]models.Payment, error) {
	var payments []models.Payment
	if err := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Order("created_at DESC").
		Find(&payments).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return payments, nil
}
