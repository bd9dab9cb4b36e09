package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/RachelRYuan/Blogen/internal/models"
	"github.com/RachelRYuan/Blogen/internal/store"
)

// CategoryService exposes category reads for everyone; mutations are
// restricted to admins at the route level.
type CategoryService struct {
	store *store.Store
}

func NewCategoryService(s *store.Store) *CategoryService {
	return &CategoryService{store: s}
}

// Get returns a single category.
func (s *CategoryService) Get(ctx context.Context, id uint) (*models.Category, error) {
	category, err := s.store.GetCategoryByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return category, nil
}

// List returns a page of categories.
func (s *CategoryService) List(
	ctx context.Context,
	page, pageSize int,
) ([]models.Category, store.PaginationResult, error) {
	params := store.NewPaginationParams(page, pageSize, "")
	return s.store.ListCategories(ctx, params)
}

// Create adds a new category. Duplicate names surface as
// store.ErrCategoryConflict.
func (s *CategoryService) Create(ctx context.Context, name string) (*models.Category, error) {
	category := &models.Category{Name: name}
	if err := s.store.CreateCategory(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// Update renames a category.
func (s *CategoryService) Update(ctx context.Context, id uint, name string) (*models.Category, error) {
	category, err := s.store.GetCategoryByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if name != category.Name {
		if _, err := s.store.GetCategoryByName(ctx, name); err == nil {
			return nil, store.ErrCategoryConflict
		} else if !errors.Is(err, store.ErrRecordNotFound) {
			return nil, err
		}
	}

	category.Name = name
	if err := s.store.SaveCategory(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to save category: %w", err)
	}
	return category, nil
}
