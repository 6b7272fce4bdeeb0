package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/isdelr/conduit-be/internal/models"
)

// UserChanges carries the optional fields of a profile update. Nil means
// "leave unchanged". Empty strings are also ignored for email, username, and
// password, so a blank field in the payload never clears a credential.
type UserChanges struct {
	Email    *string
	Username *string
	Bio      *string
	Image    *string
	Password *string
}

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	Register(ctx context.Context, username, email, password string) (models.User, error)
	Authenticate(ctx context.Context, email, password string) (models.User, error)
	GetUserByID(ctx context.Context, id string) (models.User, error)
	GetUserByUsername(ctx context.Context, username string) (models.User, error)
	UpdateUser(ctx context.Context, id string, changes UserChanges) (models.User, error)
}

// UserService provides business logic for account management.
type UserService struct {
	db *gorm.DB
}

// NewUserService creates a new UserService.
func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// Register creates a new account. The email is stored lower-cased regardless
// of input casing so the unique index behaves case-insensitively.
func (s *UserService) Register(ctx context.Context, username, email, password string) (models.User, error) {
	email = strings.ToLower(email)

	var count int64
	err := s.db.WithContext(ctx).Model(&models.User{}).
		Where("email = ? OR username = ?", email, username).
		Count(&count).Error
	if err != nil {
		return models.User{}, err
	}
	if count > 0 {
		return models.User{}, ErrDuplicateAccount
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	}

	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		// Concurrent registration can still trip the unique index.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.User{}, ErrDuplicateAccount
		}
		return models.User{}, err
	}

	return user, nil
}

// Authenticate verifies a user's credentials. Unknown emails and wrong
// passwords are indistinguishable to the caller.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", strings.ToLower(email)).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrInvalidCredentials
		}
		return models.User{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return models.User{}, ErrInvalidCredentials
	}

	return user, nil
}

// GetUserByID retrieves a single user by their ID.
func (s *UserService) GetUserByID(ctx context.Context, id string) (models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

// GetUserByUsername retrieves a single user by their username.
func (s *UserService) GetUserByUsername(ctx context.Context, username string) (models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

// UpdateUser applies the provided changes to a user. Email and username
// uniqueness are checked against every other account before writing.
func (s *UserService) UpdateUser(ctx context.Context, id string, changes UserChanges) (models.User, error) {
	user, err := s.GetUserByID(ctx, id)
	if err != nil {
		return models.User{}, err
	}

	if changes.Email != nil && *changes.Email != "" {
		email := strings.ToLower(*changes.Email)
		taken, err := s.fieldTakenByOther(ctx, "email", email, id)
		if err != nil {
			return models.User{}, err
		}
		if taken {
			return models.User{}, ErrEmailTaken
		}
		user.Email = email
	}

	if changes.Username != nil && *changes.Username != "" {
		taken, err := s.fieldTakenByOther(ctx, "username", *changes.Username, id)
		if err != nil {
			return models.User{}, err
		}
		if taken {
			return models.User{}, ErrUsernameTaken
		}
		user.Username = *changes.Username
	}

	if changes.Bio != nil {
		user.Bio = *changes.Bio
	}
	if changes.Image != nil {
		user.Image = *changes.Image
	}
	if changes.Password != nil && *changes.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*changes.Password), bcrypt.DefaultCost)
		if err != nil {
			return models.User{}, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = string(hash)
	}

	if err := s.db.WithContext(ctx).Save(&user).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

// fieldTakenByOther reports whether another account already uses the value.
func (s *UserService) fieldTakenByOther(ctx context.Context, field, value, selfID string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.User{}).
		Where(fmt.Sprintf("%s = ?", field), value).
		Where("id <> ?", selfID).
		Count(&count).Error
	return count > 0, err
}
