package service

import (
	"context"
	"fmt"
	"log/slog"

	"highpass/internal/featureflags"
	"highpass/internal/middleware"
	"highpass/internal/models"
	"highpass/internal/notifications"
	"highpass/internal/observability"
	"highpass/internal/payments"
	"highpass/internal/repository"
)

// PaymentService drives the checkout flow and the verified webhook that
// settles bookings.
type PaymentService struct {
	gateway     payments.Gateway
	bookingRepo repository.BookingRepository
	paymentRepo repository.PaymentRepository
	flags       *featureflags.Manager
	notifier    *notifications.Notifier
	successURL  string
	cancelURL   string
}

// NewPaymentService returns a new PaymentService.
func NewPaymentService(
	gateway payments.Gateway,
	bookingRepo repository.BookingRepository,
	paymentRepo repository.PaymentRepository,
	flags *featureflags.Manager,
	notifier *notifications.Notifier,
	successURL, cancelURL string,
) *PaymentService {
	return &PaymentService{
		gateway:     gateway,
		bookingRepo: bookingRepo,
		paymentRepo: paymentRepo,
		flags:       flags,
		notifier:    notifier,
		successURL:  successURL,
		cancelURL:   cancelURL,
	}
}

// CreateCheckout creates a hosted checkout session for an owned, unpaid
// booking. Gated by the online_payments feature flag.
func (s *PaymentService) CreateCheckout(ctx context.Context, requester *models.User, bookingID uint) (*payments.CheckoutSession, error) {
	if !s.flags.Enabled(featureflags.FlagOnlinePayments, requester.ID) {
		return nil, models.NewForbiddenError("Online payments are currently disabled")
	}

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.UserID != requester.ID {
		return nil, models.NewForbiddenError("You may only pay for your own bookings")
	}
	if booking.PaymentStatus == models.PaymentStatePaid {
		return nil, models.NewValidationError("This booking is already paid")
	}

	description := fmt.Sprintf("Booking #%d", booking.ID)
	if booking.Destination != nil {
		description = fmt.Sprintf("%s, %d night(s)", booking.Destination.Name, booking.Nights())
	}

	session, err := s.gateway.CreateCheckoutSession(ctx, payments.CheckoutInput{
		BookingID:     booking.ID,
		Amount:        booking.Amount,
		Currency:      booking.Currency,
		Description:   description,
		CustomerEmail: requester.Email,
		SuccessURL:    s.successURL,
		CancelURL:     s.cancelURL,
	})
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	booking.StripeSessionID = session.ID
	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, err
	}

	return session, nil
}

// HandleWebhook verifies and applies a gateway event. The unique event id
// makes application idempotent: a redelivered event acknowledges without
// touching the booking again.
func (s *PaymentService) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	event, err := s.gateway.ParseWebhook(payload, signature)
	if err != nil {
		observability.WebhookEvents.WithLabelValues("unknown", "rejected").Inc()
		return models.NewValidationError("Invalid webhook payload or signature")
	}

	if event.Type != payments.EventCheckoutCompleted {
		observability.WebhookEvents.WithLabelValues(event.Type, "ignored").Inc()
		return nil
	}
	if event.PaymentStatus != "paid" {
		// Async payment methods complete later via a separate event.
		observability.WebhookEvents.WithLabelValues(event.Type, "deferred").Inc()
		return nil
	}

	payment := &models.Payment{
		BookingID:       event.BookingID,
		StripeSessionID: event.SessionID,
		StripeEventID:   event.ID,
		Amount:          event.Amount,
		Currency:        event.Currency,
		Status:          event.PaymentStatus,
	}

	err = s.paymentRepo.ApplyCheckoutCompleted(ctx, payment)
	if err == repository.ErrEventAlreadyProcessed {
		observability.WebhookEvents.WithLabelValues(event.Type, "duplicate").Inc()
		middleware.Logger.Info("Webhook event replayed, already applied",
			slog.String("event_id", event.ID),
		)
		return nil
	}
	if err != nil {
		observability.WebhookEvents.WithLabelValues(event.Type, "error").Inc()
		return err
	}

	observability.WebhookEvents.WithLabelValues(event.Type, "applied").Inc()

	if booking, getErr := s.bookingRepo.GetByID(ctx, event.BookingID); getErr == nil {
		if pubErr := s.notifier.PublishEvent(ctx, booking.UserID, "booking.confirmed", map[string]interface{}{
			"booking_id": booking.ID,
			"amount":     event.Amount,
			"currency":   event.Currency,
		}); pubErr != nil {
			middleware.Logger.Warn("Failed to publish booking confirmation notification",
				slog.Uint64("booking_id", uint64(booking.ID)),
				slog.String("error", pubErr.Error()),
			)
		}
	}

	return nil
}
