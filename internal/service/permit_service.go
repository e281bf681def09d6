// Package service provides application business logic (permits, bookings, payments, users).
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"highpass/internal/middleware"
	"highpass/internal/models"
	"highpass/internal/notifications"
	"highpass/internal/observability"
	"highpass/internal/repository"
	"highpass/internal/validation"
)

const permitDateLayout = "2006-01-02"

// PermitService owns the permit application lifecycle: submission,
// querying, and the review state machine.
type PermitService struct {
	permitRepo      repository.PermitRepository
	userRepo        repository.UserRepository
	destinationRepo repository.DestinationRepository
	notifier        *notifications.Notifier
}

// SubmitPermitInput is the input for submitting a permit application.
// Dates arrive as strings so the service controls parse errors.
type SubmitPermitInput struct {
	TouristID   uint
	Destination string
	StartDate   string
	EndDate     string
	Reason      string
	DocumentURL string
}

// ReviewPermitInput is the input for deciding a pending application.
type ReviewPermitInput struct {
	PermitID      uint
	ReviewerID    uint
	Status        string
	ReviewerNotes string
}

// NewPermitService returns a new PermitService.
func NewPermitService(
	permitRepo repository.PermitRepository,
	userRepo repository.UserRepository,
	destinationRepo repository.DestinationRepository,
	notifier *notifications.Notifier,
) *PermitService {
	return &PermitService{
		permitRepo:      permitRepo,
		userRepo:        userRepo,
		destinationRepo: destinationRepo,
		notifier:        notifier,
	}
}

// Submit validates and stores a new application with status Pending.
//
// Validation order is part of the contract: required fields, then tourist
// existence, then destination catalog membership, then date parsing, then
// the two date-ordering rules.
func (s *PermitService) Submit(ctx context.Context, in SubmitPermitInput) (*models.PermitApplication, error) {
	if in.TouristID == 0 || in.Destination == "" || in.StartDate == "" || in.EndDate == "" || in.Reason == "" || in.DocumentURL == "" {
		return nil, models.NewValidationError("touristId, destination, startDate, endDate, reason and documentUrl are all required")
	}
	if err := validation.ValidateDocumentURL(in.DocumentURL); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	if _, err := s.userRepo.GetByID(ctx, in.TouristID); err != nil {
		return nil, err
	}

	destination, err := s.destinationRepo.GetActiveByName(ctx, in.Destination)
	if err != nil {
		return nil, err
	}
	if destination == nil {
		return nil, models.NewValidationError(fmt.Sprintf("%q is not an available destination", in.Destination))
	}

	startDate, err := time.Parse(permitDateLayout, in.StartDate)
	if err != nil {
		return nil, models.NewValidationError("startDate must be a date in YYYY-MM-DD format")
	}
	endDate, err := time.Parse(permitDateLayout, in.EndDate)
	if err != nil {
		return nil, models.NewValidationError("endDate must be a date in YYYY-MM-DD format")
	}

	today := time.Now().Truncate(24 * time.Hour)
	if startDate.Before(today) {
		return nil, models.NewValidationError("startDate cannot be in the past")
	}
	if endDate.Before(startDate) {
		return nil, models.NewValidationError("endDate cannot be before startDate")
	}

	permit := &models.PermitApplication{
		TouristID:   in.TouristID,
		Destination: destination.Name,
		StartDate:   startDate,
		EndDate:     endDate,
		Reason:      in.Reason,
		DocumentURL: in.DocumentURL,
		Status:      models.PermitStatusPending,
	}
	if err := s.permitRepo.Create(ctx, permit); err != nil {
		return nil, err
	}

	observability.PermitSubmissions.WithLabelValues(destination.Name).Inc()
	return permit, nil
}

// ListForTourist returns a tourist's applications, newest first. Callers
// may read their own permits; officials and admins may read anyone's.
func (s *PermitService) ListForTourist(ctx context.Context, requester *models.User, touristID uint) ([]models.PermitApplication, error) {
	if requester.ID != touristID && !requester.IsReviewer() {
		return nil, models.NewForbiddenError("You may only view your own permits")
	}
	return s.permitRepo.ListByTourist(ctx, touristID)
}

// ListAll returns every application joined with its applicant, newest
// first. Reviewer-only.
func (s *PermitService) ListAll(ctx context.Context, requester *models.User, limit, offset int) ([]models.PermitApplication, error) {
	if !requester.IsReviewer() {
		return nil, models.NewForbiddenError("Only officials may list all permits")
	}
	return s.permitRepo.ListAll(ctx, limit, offset)
}

// Review applies an Approved/Rejected decision to a pending application
// and notifies the applicant. Decided permits are terminal.
func (s *PermitService) Review(ctx context.Context, in ReviewPermitInput) (*models.PermitApplication, error) {
	decision, ok := models.ParsePermitDecision(in.Status)
	if !ok {
		return nil, models.NewValidationError(fmt.Sprintf("status must be %q or %q", models.PermitStatusApproved, models.PermitStatusRejected))
	}

	permit, err := s.permitRepo.Review(ctx, in.PermitID, decision, in.ReviewerID, in.ReviewerNotes)
	if err != nil {
		if appErr, ok := err.(*models.AppError); ok {
			switch appErr.Code {
			case "ALREADY_DECIDED":
				observability.PermitReviewConflicts.WithLabelValues("already_decided").Inc()
			case "CONFLICT":
				observability.PermitReviewConflicts.WithLabelValues("version_conflict").Inc()
			}
		}
		return nil, err
	}

	observability.PermitDecisions.WithLabelValues(string(permit.Status)).Inc()

	if err := s.notifier.PublishEvent(ctx, permit.TouristID, "permit.decided", map[string]interface{}{
		"permit_id":   permit.ID,
		"destination": permit.Destination,
		"status":      permit.Status,
	}); err != nil {
		// Notification delivery is best-effort.
		middleware.Logger.Warn("Failed to publish permit decision notification",
			slog.Uint64("permit_id", uint64(permit.ID)),
			slog.String("error", err.Error()),
		)
	}

	return permit, nil
}
