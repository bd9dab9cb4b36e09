package services

import (
	"context"
	"errors"

	"github.com/RachelRYuan/Blogen/internal/models"
	"github.com/RachelRYuan/Blogen/internal/store"
)

// AvatarService exposes the stock avatar catalog.
type AvatarService struct {
	store *store.Store
}

func NewAvatarService(s *store.Store) *AvatarService {
	return &AvatarService{store: s}
}

// ListFileNames returns every avatar file name in the catalog.
func (s *AvatarService) ListFileNames(ctx context.Context) ([]string, error) {
	return s.store.ListAvatarFileNames(ctx)
}

// GetByFileName returns the avatar with the given file name.
func (s *AvatarService) GetByFileName(ctx context.Context, fileName string) (*models.Avatar, error) {
	avatar, err := s.store.GetAvatarByFileName(ctx, fileName)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return avatar, nil
}
