package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/RachelRYuan/Blogen/internal/models"

	"gorm.io/gorm"
)

// Category operations

// GetCategoryByID retrieves a category by its primary key
func (s *Store) GetCategoryByID(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	err := s.db.WithContext(ctx).First(&category, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &category, nil
}

// GetCategoryByName retrieves a category by its unique name
func (s *Store) GetCategoryByName(ctx context.Context, name string) (*models.Category, error) {
	var category models.Category
	err := s.db.WithContext(ctx).Where("name = ?", name).First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &category, nil
}

// ListCategories returns a page of categories ordered by name
func (s *Store) ListCategories(
	ctx context.Context,
	params PaginationParams,
) ([]models.Category, PaginationResult, error) {
	db := s.db.WithContext(ctx).Model(&models.Category{})

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, PaginationResult{}, err
	}

	result := CalculatePagination(total, params.Page, params.PageSize)

	var categories []models.Category
	err := db.
		Order("name ASC").
		Offset((result.CurrentPage - 1) * result.PageSize).
		Limit(result.PageSize).
		Find(&categories).Error
	if err != nil {
		return nil, PaginationResult{}, err
	}
	return categories, result, nil
}

// CreateCategory creates a new category, translating name collisions
// into ErrCategoryConflict.
func (s *Store) CreateCategory(ctx context.Context, category *models.Category) error {
	db := s.db.WithContext(ctx)

	var existing models.Category
	err := db.Where("name = ?", category.Name).First(&existing).Error
	if err == nil {
		return ErrCategoryConflict
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check category name: %w", err)
	}

	if err := db.Create(category).Error; err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

// SaveCategory persists changes to an existing category
func (s *Store) SaveCategory(ctx context.Context, category *models.Category) error {
	return s.db.WithContext(ctx).Save(category).Error
}
