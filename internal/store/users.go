package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/RachelRYuan/Blogen/internal/models"

	"gorm.io/gorm"
)

// User operations

// GetUserByID retrieves a user with roles and preferences preloaded
func (s *Store) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).
		Preload("Roles").
		Preload("Prefs.Avatar").
		First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetUserByUserName retrieves a user by their login name
func (s *Store) GetUserByUserName(ctx context.Context, userName string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).
		Preload("Roles").
		Preload("Prefs.Avatar").
		Where("user_name = ?", userName).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetUserByEmail retrieves a user by email address
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).
		Preload("Roles").
		Preload("Prefs.Avatar").
		Where("email = ?", email).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &user, nil
}

// ListUsers returns all users ordered by creation time
func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := s.db.WithContext(ctx).
		Preload("Roles").
		Preload("Prefs.Avatar").
		Order("created_at ASC").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// UserNameExists reports whether a login name is already taken
func (s *Store) UserNameExists(ctx context.Context, userName string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.User{}).
		Where("user_name = ?", userName).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// CreateUser creates a new user, translating uniqueness violations
// into ErrUsernameConflict / ErrEmailConflict.
func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	db := s.db.WithContext(ctx)

	var existing models.User
	err := db.Where("user_name = ?", user.UserName).First(&existing).Error
	if err == nil {
		return ErrUsernameConflict
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check username: %w", err)
	}

	err = db.Where("email = ?", user.Email).First(&existing).Error
	if err == nil {
		return ErrEmailConflict
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check email: %w", err)
	}

	if err := db.Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// SaveUser persists changes to an existing user
func (s *Store) SaveUser(ctx context.Context, user *models.User) error {
	return s.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(user).Error
}

// CountUsers returns the total number of users
func (s *Store) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.User{}).Count(&count).Error
	return count, err
}

// GetRolesByNames returns the roles matching the given names
func (s *Store) GetRolesByNames(ctx context.Context, names []string) ([]models.Role, error) {
	var roles []models.Role
	err := s.db.WithContext(ctx).Where("name IN ?", names).Find(&roles).Error
	if err != nil {
		return nil, err
	}
	return roles, nil
}
