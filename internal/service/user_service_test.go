package service

import (
	"context"
	"testing"

	"highpass/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestUserService_Signup_HashesPassword(t *testing.T) {
	var stored *models.User
	userRepo := noopUserRepo()
	userRepo.createFn = func(_ context.Context, user *models.User) error {
		user.ID = 3
		stored = user
		return nil
	}
	svc := NewUserService(userRepo)

	user, err := svc.Signup(context.Background(), SignupInput{
		Name:     "Tsering Angmo",
		Email:    "tsering@example.com",
		Password: "CorrectHorse42",
	})
	require.NoError(t, err)
	require.NotNil(t, stored)

	assert.Equal(t, models.RoleTourist, user.Role)
	assert.NotEqual(t, "CorrectHorse42", stored.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("CorrectHorse42")))
}

func TestUserService_Signup_RejectsWeakPassword(t *testing.T) {
	svc := NewUserService(noopUserRepo())

	_, err := svc.Signup(context.Background(), SignupInput{
		Name:     "Tsering Angmo",
		Email:    "tsering@example.com",
		Password: "short",
	})
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

func TestUserService_Signup_DuplicateEmail(t *testing.T) {
	userRepo := noopUserRepo()
	userRepo.getByEmailFn = func(_ context.Context, email string) (*models.User, error) {
		return &models.User{ID: 1, Email: email}, nil
	}
	svc := NewUserService(userRepo)

	_, err := svc.Signup(context.Background(), SignupInput{
		Name:     "Tsering Angmo",
		Email:    "tsering@example.com",
		Password: "CorrectHorse42",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestUserService_Authenticate(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("CorrectHorse42"), bcrypt.MinCost)
	require.NoError(t, err)

	userRepo := noopUserRepo()
	userRepo.getByEmailFn = func(_ context.Context, email string) (*models.User, error) {
		if email == "tsering@example.com" {
			return &models.User{ID: 1, Email: email, Password: string(hash)}, nil
		}
		return nil, nil
	}
	svc := NewUserService(userRepo)

	user, err := svc.Authenticate(context.Background(), "tsering@example.com", "CorrectHorse42")
	require.NoError(t, err)
	assert.Equal(t, uint(1), user.ID)

	_, err = svc.Authenticate(context.Background(), "tsering@example.com", "WrongPassword1")
	require.Error(t, err)

	// An unknown account yields the same error as a wrong password.
	_, unknownErr := svc.Authenticate(context.Background(), "nobody@example.com", "CorrectHorse42")
	require.Error(t, unknownErr)
	assert.Equal(t, err.Error(), unknownErr.Error())
}

func TestUserService_LoginWithGoogle_ProvisionsAccount(t *testing.T) {
	var created *models.User
	userRepo := noopUserRepo()
	userRepo.createFn = func(_ context.Context, user *models.User) error {
		user.ID = 10
		created = user
		return nil
	}
	svc := NewUserService(userRepo)

	user, err := svc.LoginWithGoogle(context.Background(), GoogleIdentity{
		GoogleID: "g-123",
		Email:    "tsering@example.com",
		Name:     "Tsering Angmo",
	})
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, uint(10), user.ID)
	require.NotNil(t, user.GoogleID)
	assert.Equal(t, "g-123", *user.GoogleID)
	assert.Empty(t, user.Password)
}

func TestUserService_LoginWithGoogle_LinksExistingEmailAccount(t *testing.T) {
	existing := &models.User{ID: 4, Email: "tsering@example.com", Password: "hashed"}
	userRepo := noopUserRepo()
	userRepo.getByEmailFn = func(_ context.Context, _ string) (*models.User, error) {
		return existing, nil
	}
	var updated *models.User
	userRepo.updateFn = func(_ context.Context, user *models.User) error {
		updated = user
		return nil
	}
	svc := NewUserService(userRepo)

	user, err := svc.LoginWithGoogle(context.Background(), GoogleIdentity{
		GoogleID: "g-123",
		Email:    "tsering@example.com",
		Name:     "Tsering Angmo",
	})
	require.NoError(t, err)
	assert.Equal(t, uint(4), user.ID)
	require.NotNil(t, updated)
	require.NotNil(t, updated.GoogleID)
	assert.Equal(t, "g-123", *updated.GoogleID)
}

func TestUserService_SetRole(t *testing.T) {
	userRepo := noopUserRepo()
	svc := NewUserService(userRepo)

	user, err := svc.SetRole(context.Background(), 2, models.RoleOfficial)
	require.NoError(t, err)
	assert.Equal(t, models.RoleOfficial, user.Role)

	_, err = svc.SetRole(context.Background(), 2, models.UserRole("superuser"))
	require.Error(t, err)
}
