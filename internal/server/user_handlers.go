// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"highpass/internal/models"
	"highpass/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetMyProfile handles GET /api/users/me
// @Summary Get own profile
// @Tags users
// @Produce json
// @Success 200 {object} models.User
// @Router /users/me [get]
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	user, err := s.currentUser(c)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(user)
}

// UpdateMyProfile handles PUT /api/users/me
// @Summary Update own profile
// @Tags users
// @Accept json
// @Produce json
// @Param request body object{name=string,avatar=string} true "Profile fields"
// @Success 200 {object} models.User
// @Failure 400 {object} object{error=string}
// @Router /users/me [put]
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	user, err := s.currentUser(c)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	var req struct {
		Name   string `json:"name"`
		Avatar string `json:"avatar"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	updated, err := s.userService.UpdateProfile(c.Context(), service.UpdateProfileInput{
		UserID: user.ID,
		Name:   req.Name,
		Avatar: req.Avatar,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(updated)
}

// GetAllUsers handles GET /api/users
// @Summary List users
// @Description Admin only
// @Tags users
// @Produce json
// @Param limit query int false "Page size (max 100)"
// @Param offset query int false "Offset"
// @Success 200 {array} models.User
// @Failure 403 {object} object{error=string}
// @Router /users [get]
func (s *Server) GetAllUsers(c *fiber.Ctx) error {
	p := parsePagination(c, 50)

	users, err := s.userRepo.List(c.Context(), p.Limit, p.Offset)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(users)
}

// SetUserRole handles PUT /api/users/:id/role
// @Summary Change a user's role
// @Description Admin only: promote or demote tourist/official/admin
// @Tags users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param request body object{role=string} true "New role"
// @Success 200 {object} models.User
// @Failure 400 {object} object{error=string}
// @Failure 403 {object} object{error=string}
// @Router /users/{id}/role [put]
func (s *Server) SetUserRole(c *fiber.Ctx) error {
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Role string `json:"role"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	updated, err := s.userService.SetRole(c.Context(), targetID, models.UserRole(req.Role))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(updated)
}

// GetFeatureFlags handles GET /api/admin/feature-flags
// @Summary Feature flag snapshot
// @Description Admin only: resolved flag states for the caller
// @Tags admin
// @Produce json
// @Success 200 {object} map[string]bool
// @Router /admin/feature-flags [get]
func (s *Server) GetFeatureFlags(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(uint)
	return c.JSON(s.featureFlags.Snapshot(userID))
}
