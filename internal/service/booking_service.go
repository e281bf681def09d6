package service

import (
	"context"
	"log/slog"
	"time"

	"highpass/internal/mailer"
	"highpass/internal/middleware"
	"highpass/internal/models"
	"highpass/internal/repository"
)

// BookingService owns reservation creation and retrieval.
type BookingService struct {
	bookingRepo     repository.BookingRepository
	destinationRepo repository.DestinationRepository
	userRepo        repository.UserRepository
	mail            mailer.Mailer
}

// CreateBookingInput is the input for creating a booking.
type CreateBookingInput struct {
	UserID        uint
	DestinationID uint
	StartDate     string
	EndDate       string
	Guests        int
}

// NewBookingService returns a new BookingService.
func NewBookingService(
	bookingRepo repository.BookingRepository,
	destinationRepo repository.DestinationRepository,
	userRepo repository.UserRepository,
	mail mailer.Mailer,
) *BookingService {
	return &BookingService{
		bookingRepo:     bookingRepo,
		destinationRepo: destinationRepo,
		userRepo:        userRepo,
		mail:            mail,
	}
}

// Create validates dates and guest count, prices the stay from the
// destination, and stores a pending booking. The confirmation email is
// fire-and-forget: a mail failure is logged, never surfaced.
func (s *BookingService) Create(ctx context.Context, in CreateBookingInput) (*models.Booking, error) {
	if in.DestinationID == 0 || in.StartDate == "" || in.EndDate == "" {
		return nil, models.NewValidationError("destinationId, startDate and endDate are required")
	}
	if in.Guests < 1 || in.Guests > 10 {
		return nil, models.NewValidationError("guests must be between 1 and 10")
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
	if !endDate.After(startDate) {
		return nil, models.NewValidationError("endDate must be after startDate")
	}

	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	destination, err := s.destinationRepo.GetByID(ctx, in.DestinationID)
	if err != nil {
		return nil, err
	}
	if !destination.Active {
		return nil, models.NewValidationError("This destination is not currently bookable")
	}

	booking := &models.Booking{
		UserID:        user.ID,
		DestinationID: destination.ID,
		StartDate:     startDate,
		EndDate:       endDate,
		Guests:        in.Guests,
		Currency:      destination.Currency,
		Status:        models.BookingStatusPending,
		PaymentStatus: models.PaymentStateUnpaid,
	}
	booking.Amount = int64(booking.Nights()) * destination.PricePerNight

	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, err
	}
	booking.Destination = destination

	go s.sendConfirmation(user, booking)

	return booking, nil
}

// sendConfirmation runs outside the request context so a slow relay never
// holds up the response.
func (s *BookingService) sendConfirmation(user *models.User, booking *models.Booking) {
	defer func() {
		if r := recover(); r != nil {
			middleware.Logger.Error("Panic sending booking confirmation", slog.Any("panic", r))
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := s.mail.SendBookingConfirmation(ctx, user, booking); err != nil {
		middleware.Logger.Warn("Booking confirmation email failed",
			slog.Uint64("booking_id", uint64(booking.ID)),
			slog.String("to", user.Email),
			slog.String("error", err.Error()),
		)
	}
}

// ListForUser returns the user's bookings, newest first.
func (s *BookingService) ListForUser(ctx context.Context, userID uint) ([]models.Booking, error) {
	return s.bookingRepo.ListByUser(ctx, userID)
}

// Get returns one booking. Owners and admins only.
func (s *BookingService) Get(ctx context.Context, requester *models.User, id uint) (*models.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking.UserID != requester.ID && requester.Role != models.RoleAdmin {
		return nil, models.NewForbiddenError("You may only view your own bookings")
	}
	return booking, nil
}
