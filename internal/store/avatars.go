package store

import (
	"context"
	"errors"

	"github.com/RachelRYuan/Blogen/internal/models"

	"gorm.io/gorm"
)

// Avatar operations

// GetAvatarByFileName retrieves an avatar by its file name
func (s *Store) GetAvatarByFileName(ctx context.Context, fileName string) (*models.Avatar, error) {
	var avatar models.Avatar
	err := s.db.WithContext(ctx).Where("file_name = ?", fileName).First(&avatar).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &avatar, nil
}

// ListAvatarFileNames returns the catalog of avatar file names
func (s *Store) ListAvatarFileNames(ctx context.Context) ([]string, error) {
	var names []string
	err := s.db.WithContext(ctx).
		Model(&models.Avatar{}).
		Order("file_name ASC").
		Pluck("file_name", &names).Error
	if err != nil {
		return nil, err
	}
	return names, nil
}
