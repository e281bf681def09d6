package service

import (
	"context"

	"highpass/internal/models"
	"highpass/internal/payments"
)

// permitRepoStub is a stub for repository.PermitRepository.
type permitRepoStub struct {
	createFn        func(context.Context, *models.PermitApplication) error
	getByIDFn       func(context.Context, uint) (*models.PermitApplication, error)
	listByTouristFn func(context.Context, uint) ([]models.PermitApplication, error)
	listAllFn       func(context.Context, int, int) ([]models.PermitApplication, error)
	reviewFn        func(context.Context, uint, models.PermitStatus, uint, string) (*models.PermitApplication, error)
}

func (s *permitRepoStub) Create(ctx context.Context, permit *models.PermitApplication) error {
	return s.createFn(ctx, permit)
}
func (s *permitRepoStub) GetByID(ctx context.Context, id uint) (*models.PermitApplication, error) {
	return s.getByIDFn(ctx, id)
}
func (s *permitRepoStub) ListByTourist(ctx context.Context, touristID uint) ([]models.PermitApplication, error) {
	return s.listByTouristFn(ctx, touristID)
}
func (s *permitRepoStub) ListAll(ctx context.Context, limit, offset int) ([]models.PermitApplication, error) {
	return s.listAllFn(ctx, limit, offset)
}
func (s *permitRepoStub) Review(ctx context.Context, id uint, decision models.PermitStatus, reviewerID uint, notes string) (*models.PermitApplication, error) {
	return s.reviewFn(ctx, id, decision, reviewerID, notes)
}

func noopPermitRepo() *permitRepoStub {
	return &permitRepoStub{
		createFn:        func(_ context.Context, _ *models.PermitApplication) error { return nil },
		getByIDFn:       func(_ context.Context, _ uint) (*models.PermitApplication, error) { return &models.PermitApplication{}, nil },
		listByTouristFn: func(_ context.Context, _ uint) ([]models.PermitApplication, error) { return nil, nil },
		listAllFn:       func(_ context.Context, _, _ int) ([]models.PermitApplication, error) { return nil, nil },
		reviewFn: func(_ context.Context, _ uint, _ models.PermitStatus, _ uint, _ string) (*models.PermitApplication, error) {
			return &models.PermitApplication{}, nil
		},
	}
}

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn       func(context.Context, uint) (*models.User, error)
	getByEmailFn    func(context.Context, string) (*models.User, error)
	getByGoogleIDFn func(context.Context, string) (*models.User, error)
	createFn        func(context.Context, *models.User) error
	updateFn        func(context.Context, *models.User) error
	listFn          func(context.Context, int, int) ([]models.User, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByGoogleID(ctx context.Context, googleID string) (*models.User, error) {
	return s.getByGoogleIDFn(ctx, googleID)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.listFn(ctx, limit, offset)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:       func(_ context.Context, id uint) (*models.User, error) { return &models.User{ID: id}, nil },
		getByEmailFn:    func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		getByGoogleIDFn: func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		createFn:        func(_ context.Context, _ *models.User) error { return nil },
		updateFn:        func(_ context.Context, _ *models.User) error { return nil },
		listFn:          func(_ context.Context, _, _ int) ([]models.User, error) { return nil, nil },
	}
}

// destinationRepoStub is a stub for repository.DestinationRepository.
type destinationRepoStub struct {
	listActiveFn      func(context.Context) ([]models.Destination, error)
	getBySlugFn       func(context.Context, string) (*models.Destination, error)
	getByIDFn         func(context.Context, uint) (*models.Destination, error)
	getActiveByNameFn func(context.Context, string) (*models.Destination, error)
	createFn          func(context.Context, *models.Destination) error
	updateFn          func(context.Context, *models.Destination) error
}

func (s *destinationRepoStub) ListActive(ctx context.Context) ([]models.Destination, error) {
	return s.listActiveFn(ctx)
}
func (s *destinationRepoStub) GetBySlug(ctx context.Context, slug string) (*models.Destination, error) {
	return s.getBySlugFn(ctx, slug)
}
func (s *destinationRepoStub) GetByID(ctx context.Context, id uint) (*models.Destination, error) {
	return s.getByIDFn(ctx, id)
}
func (s *destinationRepoStub) GetActiveByName(ctx context.Context, name string) (*models.Destination, error) {
	return s.getActiveByNameFn(ctx, name)
}
func (s *destinationRepoStub) Create(ctx context.Context, destination *models.Destination) error {
	return s.createFn(ctx, destination)
}
func (s *destinationRepoStub) Update(ctx context.Context, destination *models.Destination) error {
	return s.updateFn(ctx, destination)
}

func noopDestinationRepo() *destinationRepoStub {
	return &destinationRepoStub{
		listActiveFn: func(_ context.Context) ([]models.Destination, error) { return nil, nil },
		getBySlugFn:  func(_ context.Context, _ string) (*models.Destination, error) { return &models.Destination{}, nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Destination, error) {
			return &models.Destination{ID: id, Active: true, PricePerNight: 250000, Currency: "INR"}, nil
		},
		getActiveByNameFn: func(_ context.Context, name string) (*models.Destination, error) {
			return &models.Destination{ID: 1, Name: name, Active: true, PricePerNight: 250000, Currency: "INR"}, nil
		},
		createFn: func(_ context.Context, _ *models.Destination) error { return nil },
		updateFn: func(_ context.Context, _ *models.Destination) error { return nil },
	}
}

// bookingRepoStub is a stub for repository.BookingRepository.
type bookingRepoStub struct {
	createFn     func(context.Context, *models.Booking) error
	getByIDFn    func(context.Context, uint) (*models.Booking, error)
	listByUserFn func(context.Context, uint) ([]models.Booking, error)
	updateFn     func(context.Context, *models.Booking) error
}

func (s *bookingRepoStub) Create(ctx context.Context, booking *models.Booking) error {
	return s.createFn(ctx, booking)
}
func (s *bookingRepoStub) GetByID(ctx context.Context, id uint) (*models.Booking, error) {
	return s.getByIDFn(ctx, id)
}
func (s *bookingRepoStub) ListByUser(ctx context.Context, userID uint) ([]models.Booking, error) {
	return s.listByUserFn(ctx, userID)
}
func (s *bookingRepoStub) Update(ctx context.Context, booking *models.Booking) error {
	return s.updateFn(ctx, booking)
}

func noopBookingRepo() *bookingRepoStub {
	return &bookingRepoStub{
		createFn:     func(_ context.Context, _ *models.Booking) error { return nil },
		getByIDFn:    func(_ context.Context, id uint) (*models.Booking, error) { return &models.Booking{ID: id}, nil },
		listByUserFn: func(_ context.Context, _ uint) ([]models.Booking, error) { return nil, nil },
		updateFn:     func(_ context.Context, _ *models.Booking) error { return nil },
	}
}

// paymentRepoStub is a stub for repository.PaymentRepository.
type paymentRepoStub struct {
	applyFn         func(context.Context, *models.Payment) error
	getByEventIDFn  func(context.Context, string) (*models.Payment, error)
	listByBookingFn func(context.Context, uint) ([]models.Payment, error)
}

func (s *paymentRepoStub) ApplyCheckoutCompleted(ctx context.Context, payment *models.Payment) error {
	return s.applyFn(ctx, payment)
}
func (s *paymentRepoStub) GetByEventID(ctx context.Context, eventID string) (*models.Payment, error) {
	return s.getByEventIDFn(ctx, eventID)
}
func (s *paymentRepoStub) ListByBooking(ctx context.Context, bookingID uint) ([]models.Payment, error) {
	return s.listByBookingFn(ctx, bookingID)
}

func noopPaymentRepo() *paymentRepoStub {
	return &paymentRepoStub{
		applyFn:         func(_ context.Context, _ *models.Payment) error { return nil },
		getByEventIDFn:  func(_ context.Context, _ string) (*models.Payment, error) { return nil, nil },
		listByBookingFn: func(_ context.Context, _ uint) ([]models.Payment, error) { return nil, nil },
	}
}

// gatewayStub is a stub for payments.Gateway.
type gatewayStub struct {
	createFn func(context.Context, payments.CheckoutInput) (*payments.CheckoutSession, error)
	parseFn  func([]byte, string) (*payments.WebhookEvent, error)
}

func (s *gatewayStub) CreateCheckoutSession(ctx context.Context, in payments.CheckoutInput) (*payments.CheckoutSession, error) {
	return s.createFn(ctx, in)
}
func (s *gatewayStub) ParseWebhook(payload []byte, signature string) (*payments.WebhookEvent, error) {
	return s.parseFn(payload, signature)
}

// mailerStub records sends for assertion.
type mailerStub struct {
	sendFn func(context.Context, *models.User, *models.Booking) error
}

func (s *mailerStub) SendBookingConfirmation(ctx context.Context, user *models.User, booking *models.Booking) error {
	if s.sendFn == nil {
		return nil
	}
	return s.sendFn(ctx, user, booking)
}
