package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"highpass/internal/middleware"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"
	"github.com/stripe/stripe-go/v82/webhook"
)

// ErrMissingStripeSecretKey is returned when the gateway is constructed
// without credentials outside of mock mode.
var ErrMissingStripeSecretKey = errors.New("missing STRIPE_SECRET_KEY")

// EventCheckoutCompleted is the only event type the platform acts on.
const EventCheckoutCompleted = "checkout.session.completed"

// StripeGateway implements Gateway against Stripe Checkout. In mock mode it
// fabricates sessions and trusts webhook payloads, which keeps local
// development and tests off the network.
type StripeGateway struct {
	webhookSecret string
	mockMode      bool
}

// NewStripeGateway configures the Stripe SDK and returns the gateway.
func NewStripeGateway(secretKey, webhookSecret string, mockMode bool) (*StripeGateway, error) {
	if mockMode {
		middleware.Logger.Info("Stripe gateway running in mock mode")
		return &StripeGateway{mockMode: true}, nil
	}

	if secretKey == "" {
		return nil, ErrMissingStripeSecretKey
	}

	stripe.Key = secretKey
	return &StripeGateway{webhookSecret: webhookSecret}, nil
}

// CreateCheckoutSession creates a Stripe Checkout session for a booking.
// The booking id travels in the session metadata so the webhook can route
// the completed payment back to it.
func (g *StripeGateway) CreateCheckoutSession(ctx context.Context, in CheckoutInput) (*CheckoutSession, error) {
	if g.mockMode {
		id := "cs_mock_" + strconv.FormatInt(time.Now().UTC().UnixNano(), 10)
		return &CheckoutSession{
			ID:  id,
			URL: "https://checkout.stripe.com/c/pay/" + id,
		}, nil
	}

	params := &stripe.CheckoutSessionParams{
		Mode:          stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:    stripe.String(in.SuccessURL),
		CancelURL:     stripe.String(in.CancelURL),
		CustomerEmail: stripe.String(in.CustomerEmail),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(strings.ToLower(in.Currency)),
					UnitAmount: stripe.Int64(in.Amount),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(in.Description),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
	}
	params.Context = ctx
	params.Metadata = map[string]string{
		"booking_id": strconv.FormatUint(uint64(in.BookingID), 10),
	}

	sess, err := session.New(params)
	if err != nil {
		middleware.Logger.Error("Stripe checkout session creation failed",
			slog.Uint64("booking_id", uint64(in.BookingID)),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("create checkout session: %w", err)
	}

	return &CheckoutSession{ID: sess.ID, URL: sess.URL}, nil
}

// ParseWebhook verifies the Stripe signature and reduces the event to the
// fields the payment service needs. An empty signature always fails, even
// in mock mode.
func (g *StripeGateway) ParseWebhook(payload []byte, signature string) (*WebhookEvent, error) {
	if signature == "" {
		return nil, errors.New("missing webhook signature")
	}

	var event stripe.Event
	if g.mockMode {
		if err := json.Unmarshal(payload, &event); err != nil {
			return nil, fmt.Errorf("parse webhook payload: %w", err)
		}
	} else {
		verified, err := webhook.ConstructEvent(payload, signature, g.webhookSecret)
		if err != nil {
			return nil, fmt.Errorf("verify webhook signature: %w", err)
		}
		event = verified
	}

	out := &WebhookEvent{
		ID:   event.ID,
		Type: string(event.Type),
	}
	if out.Type != EventCheckoutCompleted {
		return out, nil
	}
	if event.Data == nil {
		return nil, errors.New("webhook event carries no data object")
	}

	var sess stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
		return nil, fmt.Errorf("parse checkout session: %w", err)
	}

	out.SessionID = sess.ID
	out.Amount = sess.AmountTotal
	out.Currency = strings.ToUpper(string(sess.Currency))
	out.PaymentStatus = string(sess.PaymentStatus)

	rawID := sess.Metadata["booking_id"]
	bookingID, err := strconv.ParseUint(rawID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("webhook session %s has no usable booking_id metadata: %w", sess.ID, err)
	}
	out.BookingID = uint(bookingID)

	return out, nil
}
