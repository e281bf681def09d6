package service

import (
	"context"

	"highpass/internal/models"
	"highpass/internal/repository"
	"highpass/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// UserService owns account registration, credential checks, and profiles.
type UserService struct {
	userRepo repository.UserRepository
}

// SignupInput is the input for registering a password account.
type SignupInput struct {
	Name     string
	Email    string
	Password string
}

// GoogleIdentity is a verified Google ID-token payload.
type GoogleIdentity struct {
	GoogleID string
	Email    string
	Name     string
	Avatar   string
}

// UpdateProfileInput is the input for editing one's own profile.
type UpdateProfileInput struct {
	UserID uint
	Name   string
	Avatar string
}

// NewUserService returns a new UserService.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// Signup registers a tourist account with a bcrypt-hashed password.
func (s *UserService) Signup(ctx context.Context, in SignupInput) (*models.User, error) {
	if err := validation.ValidateName(in.Name); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	existing, err := s.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewValidationError("An account with this email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Name:     in.Name,
		Email:    in.Email,
		Password: string(hash),
		Role:     models.RoleTourist,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate checks email/password credentials. The error is identical
// for unknown accounts and wrong passwords.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Password == "" {
		return nil, models.NewUnauthorizedError("Invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, models.NewUnauthorizedError("Invalid email or password")
	}
	return user, nil
}

// LoginWithGoogle resolves a verified Google identity to an account,
// provisioning a tourist account on first sign-in. An existing password
// account with the same email is linked rather than duplicated.
func (s *UserService) LoginWithGoogle(ctx context.Context, identity GoogleIdentity) (*models.User, error) {
	user, err := s.userRepo.GetByGoogleID(ctx, identity.GoogleID)
	if err != nil {
		return nil, err
	}
	if user != nil {
		return user, nil
	}

	user, err = s.userRepo.GetByEmail(ctx, identity.Email)
	if err != nil {
		return nil, err
	}
	if user != nil {
		googleID := identity.GoogleID
		user.GoogleID = &googleID
		if user.Avatar == "" {
			user.Avatar = identity.Avatar
		}
		if err := s.userRepo.Update(ctx, user); err != nil {
			return nil, err
		}
		return user, nil
	}

	googleID := identity.GoogleID
	user = &models.User{
		Name:     identity.Name,
		Email:    identity.Email,
		GoogleID: &googleID,
		Avatar:   identity.Avatar,
		Role:     models.RoleTourist,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetUserByID returns a user by id.
func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// UpdateProfile edits the caller's own display name and avatar.
func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	if in.Name != "" {
		if err := validation.ValidateName(in.Name); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.Name = in.Name
	}
	if in.Avatar != "" {
		user.Avatar = in.Avatar
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// SetRole promotes or demotes an account. Admin-only, enforced by the caller.
func (s *UserService) SetRole(ctx context.Context, targetID uint, role models.UserRole) (*models.User, error) {
	switch role {
	case models.RoleTourist, models.RoleOfficial, models.RoleAdmin:
	default:
		return nil, models.NewValidationError("role must be tourist, official or admin")
	}

	user, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	user.Role = role
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
