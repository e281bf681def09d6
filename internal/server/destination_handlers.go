// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"highpass/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetDestinations handles GET /api/destinations
// @Summary List active destinations
// @Description The restricted-area catalog, served cache-aside from Redis
// @Tags destinations
// @Produce json
// @Success 200 {array} models.Destination
// @Router /destinations [get]
func (s *Server) GetDestinations(c *fiber.Ctx) error {
	destinations, err := s.destinationRepo.ListActive(c.Context())
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(destinations)
}

// GetDestinationBySlug handles GET /api/destinations/:slug
// @Summary Get a destination by slug
// @Tags destinations
// @Produce json
// @Param slug path string true "Destination slug"
// @Success 200 {object} models.Destination
// @Failure 404 {object} object{error=string}
// @Router /destinations/{slug} [get]
func (s *Server) GetDestinationBySlug(c *fiber.Ctx) error {
	slug := c.Params("slug")
	if slug == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid destination slug"))
	}

	destination, err := s.destinationRepo.GetBySlug(c.Context(), slug)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(destination)
}

// CreateDestination handles POST /api/admin/destinations
// @Summary Add a catalog destination
// @Description Admin only
// @Tags admin
// @Accept json
// @Produce json
// @Param request body models.Destination true "Destination"
// @Success 201 {object} models.Destination
// @Failure 400 {object} object{error=string}
// @Router /admin/destinations [post]
func (s *Server) CreateDestination(c *fiber.Ctx) error {
	var destination models.Destination
	if err := c.BodyParser(&destination); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if destination.Name == "" || destination.Slug == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("name and slug are required"))
	}
	if destination.Currency == "" {
		destination.Currency = "INR"
	}
	destination.ID = 0

	if err := s.destinationRepo.Create(c.Context(), &destination); err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(destination)
}

// UpdateDestination handles PUT /api/admin/destinations/:id
// @Summary Update a catalog destination
// @Description Admin only; also used to deactivate an entry
// @Tags admin
// @Accept json
// @Produce json
// @Param id path int true "Destination ID"
// @Param request body models.Destination true "Destination fields"
// @Success 200 {object} models.Destination
// @Failure 404 {object} object{error=string}
// @Router /admin/destinations/{id} [put]
func (s *Server) UpdateDestination(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	destination, err := s.destinationRepo.GetByID(c.Context(), id)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	var req struct {
		Name           *string `json:"name"`
		Region         *string `json:"region"`
		Description    *string `json:"description"`
		PermitRequired *bool   `json:"permit_required"`
		Active         *bool   `json:"active"`
		PricePerNight  *int64  `json:"price_per_night"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if req.Name != nil {
		destination.Name = *req.Name
	}
	if req.Region != nil {
		destination.Region = *req.Region
	}
	if req.Description != nil {
		destination.Description = *req.Description
	}
	if req.PermitRequired != nil {
		destination.PermitRequired = *req.PermitRequired
	}
	if req.Active != nil {
		destination.Active = *req.Active
	}
	if req.PricePerNight != nil {
		destination.PricePerNight = *req.PricePerNight
	}

	if err := s.destinationRepo.Update(c.Context(), destination); err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(destination)
}
