// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"highpass/internal/models"

	"github.com/gofiber/fiber/v2"
)

// CreateCheckout handles POST /api/payments/checkout
// @Summary Create a checkout session
// @Description Create a hosted Stripe Checkout session for an unpaid booking
// @Tags payments
// @Accept json
// @Produce json
// @Param request body object{bookingId=int} true "Checkout request"
// @Success 200 {object} payments.CheckoutSession
// @Failure 400 {object} object{error=string}
// @Failure 403 {object} object{error=string}
// @Router /payments/checkout [post]
func (s *Server) CreateCheckout(c *fiber.Ctx) error {
	user, err := s.currentUser(c)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	var req struct {
		BookingID uint `json:"bookingId"`
	}
	if err := c.BodyParser(&req); err != nil || req.BookingID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("bookingId is required"))
	}

	session, err := s.paymentService.CreateCheckout(c.Context(), user, req.BookingID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(session)
}

// StripeWebhook handles POST /api/payments/webhook
// Public endpoint: the request is authenticated by the Stripe-Signature
// header, never by a JWT. Replayed events are acknowledged with 200 so
// Stripe stops retrying.
// @Summary Stripe webhook
// @Tags payments
// @Accept json
// @Produce json
// @Success 200 {object} object{received=bool}
// @Failure 400 {object} object{error=string}
// @Router /payments/webhook [post]
func (s *Server) StripeWebhook(c *fiber.Ctx) error {
	payload := c.Body()
	signature := c.Get("Stripe-Signature")

	if err := s.paymentService.HandleWebhook(c.Context(), payload, signature); err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"received": true,
	})
}
