// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"highpass/internal/models"
	"highpass/internal/service"

	"github.com/gofiber/fiber/v2"
)

// SubmitPermit handles POST /api/permits
// @Summary Submit a permit application
// @Description Submit a restricted-area permit application for review
// @Tags permits
// @Accept json
// @Produce json
// @Param request body object{destination=string,startDate=string,endDate=string,reason=string,documentUrl=string} true "Permit application"
// @Success 201 {object} object{success=bool,message=string,permitId=int}
// @Failure 400 {object} object{error=string}
// @Router /permits [post]
func (s *Server) SubmitPermit(c *fiber.Ctx) error {
	user, err := s.currentUser(c)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	var req struct {
		TouristID   uint   `json:"touristId"`
		Destination string `json:"destination"`
		StartDate   string `json:"startDate"`
		EndDate     string `json:"endDate"`
		Reason      string `json:"reason"`
		DocumentURL string `json:"documentUrl"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	// Applications are always filed for the authenticated account.
	if req.TouristID != 0 && req.TouristID != user.ID {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewForbiddenError("You may only submit permits for your own account"))
	}

	permit, err := s.permitService.Submit(c.Context(), service.SubmitPermitInput{
		TouristID:   user.ID,
		Destination: req.Destination,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Reason:      req.Reason,
		DocumentURL: req.DocumentURL,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":  true,
		"message":  "Permit application submitted",
		"permitId": permit.ID,
	})
}

// GetMyPermits handles GET /api/permits/me
// @Summary List own permit applications
// @Tags permits
// @Produce json
// @Success 200 {object} object{success=bool,permits=[]models.PermitApplication}
// @Router /permits/me [get]
func (s *Server) GetMyPermits(c *fiber.Ctx) error {
	user, err := s.currentUser(c)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	permits, err := s.permitService.ListForTourist(c.Context(), user, user.ID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{"success": true, "permits": permits})
}

// GetTouristPermits handles GET /api/permits/:touristId
// @Summary List a tourist's permit applications
// @Description Tourists may read their own; officials and admins may read anyone's
// @Tags permits
// @Produce json
// @Param touristId path int true "Tourist ID"
// @Success 200 {object} object{success=bool,permits=[]models.PermitApplication}
// @Failure 403 {object} object{error=string}
// @Router /permits/{touristId} [get]
func (s *Server) GetTouristPermits(c *fiber.Ctx) error {
	user, err := s.currentUser(c)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	touristID, err := s.parseID(c, "touristId")
	if err != nil {
		return nil
	}

	permits, err := s.permitService.ListForTourist(c.Context(), user, touristID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{"success": true, "permits": permits})
}

// GetAllPermits handles GET /api/permits
// @Summary List all permit applications
// @Description Officials and admins only; joined with the applicant
// @Tags permits
// @Produce json
// @Param limit query int false "Page size (max 100)"
// @Param offset query int false "Offset"
// @Success 200 {object} object{success=bool,permits=[]models.PermitApplication}
// @Failure 403 {object} object{error=string}
// @Router /permits [get]
func (s *Server) GetAllPermits(c *fiber.Ctx) error {
	user, err := s.currentUser(c)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	p := parsePagination(c, 50)
	permits, err := s.permitService.ListAll(c.Context(), user, p.Limit, p.Offset)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{"success": true, "permits": permits})
}

// ReviewPermit handles PUT /api/permits/:id
// @Summary Review a permit application
// @Description Approve or reject a pending application; decided permits are terminal
// @Tags permits
// @Accept json
// @Produce json
// @Param id path int true "Permit ID"
// @Param request body object{status=string,reviewerNotes=string} true "Decision"
// @Success 200 {object} object{success=bool,message=string,permit=models.PermitApplication}
// @Failure 400 {object} object{error=string}
// @Failure 409 {object} object{error=string}
// @Router /permits/{id} [put]
func (s *Server) ReviewPermit(c *fiber.Ctx) error {
	user, err := s.currentUser(c)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	permitID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Status        string `json:"status"`
		ReviewerNotes string `json:"reviewerNotes"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	permit, err := s.permitService.Review(c.Context(), service.ReviewPermitInput{
		PermitID:      permitID,
		ReviewerID:    user.ID,
		Status:        req.Status,
		ReviewerNotes: req.ReviewerNotes,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Permit application reviewed",
		"permit":  permit,
	})
}
