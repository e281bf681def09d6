// Package mailer sends transactional email for booking confirmations.
package mailer

import (
	"context"
	"fmt"
	"log/slog"

	"highpass/internal/middleware"
	"highpass/internal/models"
	"highpass/internal/observability"

	"github.com/wneessen/go-mail"
)

// Mailer sends transactional mail. Implementations must be safe for
// concurrent use; sends happen from request-scoped goroutines.
type Mailer interface {
	SendBookingConfirmation(ctx context.Context, user *models.User, booking *models.Booking) error
}

// SMTPMailer delivers mail through an SMTP relay using go-mail.
type SMTPMailer struct {
	client *mail.Client
	from   string
}

// NewSMTPMailer connects the SMTP client. Credentials are optional for
// relays that allow unauthenticated submission (e.g. a local MailHog).
func NewSMTPMailer(host string, port int, username, password, from string) (*SMTPMailer, error) {
	opts := []mail.Option{mail.WithPort(port)}
	if username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(username),
			mail.WithPassword(password),
		)
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSOpportunistic))
	}

	client, err := mail.NewClient(host, opts...)
	if err != nil {
		return nil, fmt.Errorf("create smtp client: %w", err)
	}

	return &SMTPMailer{client: client, from: from}, nil
}

// SendBookingConfirmation emails the booking summary to the booking owner.
func (m *SMTPMailer) SendBookingConfirmation(ctx context.Context, user *models.User, booking *models.Booking) error {
	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return fmt.Errorf("set from address: %w", err)
	}
	if err := msg.To(user.Email); err != nil {
		return fmt.Errorf("set to address: %w", err)
	}

	destination := "your destination"
	if booking.Destination != nil {
		destination = booking.Destination.Name
	}

	msg.Subject(fmt.Sprintf("Booking received: %s", destination))
	msg.SetBodyString(mail.TypeTextPlain, fmt.Sprintf(
		"Hi %s,\n\n"+
			"We received your booking #%d for %s.\n"+
			"Stay: %s to %s, %d guest(s).\n"+
			"Total: %.2f %s.\n\n"+
			"Your booking is pending until payment completes.\n",
		user.Name,
		booking.ID,
		destination,
		booking.StartDate.Format("02 Jan 2006"),
		booking.EndDate.Format("02 Jan 2006"),
		booking.Guests,
		float64(booking.Amount)/100,
		booking.Currency,
	))

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		observability.MailSends.WithLabelValues("error").Inc()
		return fmt.Errorf("send booking confirmation: %w", err)
	}
	observability.MailSends.WithLabelValues("success").Inc()
	return nil
}

// NoopMailer logs instead of sending. Used when SMTP is not configured.
type NoopMailer struct{}

// SendBookingConfirmation logs the would-be delivery and succeeds.
func (NoopMailer) SendBookingConfirmation(_ context.Context, user *models.User, booking *models.Booking) error {
	middleware.Logger.Info("Mail delivery skipped (SMTP not configured)",
		slog.String("to", user.Email),
		slog.Uint64("booking_id", uint64(booking.ID)),
	)
	observability.MailSends.WithLabelValues("skipped").Inc()
	return nil
}
