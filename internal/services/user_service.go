package services

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/waypoint-app/waypoint/internal/helpers"
	"github.com/waypoint-app/waypoint/internal/models"
)

type UserService struct {
	userRepo models.UserRepo
}

func NewUserService(userRepo models.UserRepo) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

// Register creates a persistent account with a bcrypt password hash.
func (us *UserService) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	user := &models.User{
		Username: username,
		Email:    email,
	}
	if err := models.Validate.Struct(user); err != nil {
		return nil, models.NewValidationError("user", err.Error())
	}
	if !helpers.IsPasswordStrong(password) {
		return nil, models.NewValidationError("password", "must be at least 8 characters with upper, lower and digit")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user.PasswordHash = string(hash)

	if err := us.userRepo.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate checks the credentials and returns the account. Unknown user
// and wrong password collapse into the same error so login probing learns
// nothing.
func (us *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := us.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("invalid username or password: %w", models.ErrNotAuthorized)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("invalid username or password: %w", models.ErrNotAuthorized)
	}
	return user, nil
}

func (us *UserService) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return us.userRepo.GetUserByID(ctx, id)
}
