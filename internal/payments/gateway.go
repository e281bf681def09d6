// Package payments abstracts the external payment provider behind a small
// gateway interface so handlers and services never touch the Stripe SDK
// directly.
package payments

import "context"

// CheckoutInput describes the purchase a checkout session is created for.
type CheckoutInput struct {
	BookingID     uint
	Amount        int64 // minor currency units
	Currency      string
	Description   string
	CustomerEmail string
	SuccessURL    string
	CancelURL     string
}

// CheckoutSession is the provider-hosted payment page a customer is sent to.
type CheckoutSession struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// WebhookEvent is the provider event after signature verification, reduced
// to the fields the payment service acts on.
type WebhookEvent struct {
	ID            string
	Type          string
	SessionID     string
	BookingID     uint
	Amount        int64
	Currency      string
	PaymentStatus string
}

// Gateway abstracts the external payment provider.
type Gateway interface {
	CreateCheckoutSession(ctx context.Context, in CheckoutInput) (*CheckoutSession, error)
	ParseWebhook(payload []byte, signature string) (*WebhookEvent, error)
}
