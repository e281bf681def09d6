// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"highpass/internal/models"
	"highpass/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateBooking handles POST /api/bookings
// @Summary Create a booking
// @Description Reserve a stay at a catalog destination, priced per night
// @Tags bookings
// @Accept json
// @Produce json
// @Param request body object{destinationId=int,startDate=string,endDate=string,guests=int} true "Booking request"
// @Success 201 {object} models.Booking
// @Failure 400 {object} object{error=string}
// @Router /bookings [post]
func (s *Server) CreateBooking(c *fiber.Ctx) error {
	user, err := s.currentUser(c)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	var req struct {
		DestinationID uint   `json:"destinationId"`
		StartDate     string `json:"startDate"`
		EndDate       string `json:"endDate"`
		Guests        int    `json:"guests"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	booking, err := s.bookingService.Create(c.Context(), service.CreateBookingInput{
		UserID:        user.ID,
		DestinationID: req.DestinationID,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		Guests:        req.Guests,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(booking)
}

// GetMyBookings handles GET /api/bookings/me
// @Summary List own bookings
// @Tags bookings
// @Produce json
// @Success 200 {array} models.Booking
// @Router /bookings/me [get]
func (s *Server) GetMyBookings(c *fiber.Ctx) error {
	user, err := s.currentUser(c)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	bookings, err := s.bookingService.ListForUser(c.Context(), user.ID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(bookings)
}

// GetBooking handles GET /api/bookings/:id
// @Summary Get a booking
// @Description Owner or admin only
// @Tags bookings
// @Produce json
// @Param id path int true "Booking ID"
// @Success 200 {object} models.Booking
// @Failure 403 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /bookings/{id} [get]
func (s *Server) GetBooking(c *fiber.Ctx) error {
	user, err := s.currentUser(c)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	bookingID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	booking, err := s.bookingService.Get(c.Context(), user, bookingID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(booking)
}
