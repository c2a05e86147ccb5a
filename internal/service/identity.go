package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ecofinds/backend/internal/hash"
	"github.com/ecofinds/backend/internal/models"
)

type IdentityService struct {
	DB *gorm.DB
}

type ProfilePatch struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
}

func (s *IdentityService) Register(ctx context.Context, email, password, username string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrInvalidArgument)
	}

	var existing models.User
	err := s.DB.WithContext(ctx).Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil, fmt.Errorf("%w: user already exists", ErrConflict)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Email:        email,
		PasswordHash: pwHash,
		Username:     username,
	}
	if err := s.DB.WithContext(ctx).Create(&user).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, fmt.Errorf("%w: user already exists", ErrConflict)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return &user, nil
}

func (s *IdentityService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrInvalidArgument)
	}

	// Same error whether the email is unknown or the password is wrong,
	// so the endpoint cannot be used to enumerate accounts.
	var user models.User
	if err := s.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if !hash.CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	return &user, nil
}

func (s *IdentityService) Get(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.DB.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user", ErrNotFound)
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	return &user, nil
}

func (s *IdentityService) Update(ctx context.Context, userID uuid.UUID, patch ProfilePatch) (*models.User, error) {
	var user models.User
	if err := s.DB.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user", ErrNotFound)
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if patch.Email != nil && *patch.Email != user.Email {
		var other models.User
		err := s.DB.WithContext(ctx).Where("email = ? AND id <> ?", *patch.Email, userID).First(&other).Error
		if err == nil {
			return nil, fmt.Errorf("%w: email already in use", ErrConflict)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("lookup email: %w", err)
		}
		user.Email = *patch.Email
	}
	if patch.Username != nil {
		user.Username = *patch.Username
	}

	if err := s.DB.WithContext(ctx).Save(&user).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, fmt.Errorf("%w: email already in use", ErrConflict)
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return &user, nil
}

func (s *IdentityService) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.DB.WithContext(ctx).Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}
