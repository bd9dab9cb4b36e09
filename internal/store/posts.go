package store

import (
	"context"
	"errors"

	"github.com/RachelRYuan/Blogen/internal/models"

	"gorm.io/gorm"
)

// Post operations

// postPreloads applies the standard eager loads for post reads: the
// author with preferences, the category, and one level of children.
func postPreloads(db *gorm.DB) *gorm.DB {
	return db.
		Preload("User.Prefs.Avatar").
		Preload("Category").
		Preload("Children", func(db *gorm.DB) *gorm.DB {
			return db.Order("created ASC")
		}).
		Preload("Children.User.Prefs.Avatar").
		Preload("Children.Category")
}

// GetPostByID retrieves a single post with author, category and children
func (s *Store) GetPostByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := postPreloads(s.db.WithContext(ctx)).First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &post, nil
}

// ListParentPosts returns a page of top-level posts, newest first.
// categoryID filters by category when non-zero.
func (s *Store) ListParentPosts(
	ctx context.Context,
	params PaginationParams,
	categoryID uint,
) ([]models.Post, PaginationResult, error) {
	db := s.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("parent_id IS NULL")
	if categoryID != 0 {
		db = db.Where("category_id = ?", categoryID)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, PaginationResult{}, err
	}

	result := CalculatePagination(total, params.Page, params.PageSize)

	var posts []models.Post
	err := postPreloads(db).
		Order("created DESC").
		Offset((result.CurrentPage - 1) * result.PageSize).
		Limit(result.PageSize).
		Find(&posts).Error
	if err != nil {
		return nil, PaginationResult{}, err
	}
	return posts, result, nil
}

// ListParentPostsByUser returns a page of top-level posts by one author,
// optionally restricted to one category (categoryID 0 means all).
func (s *Store) ListParentPostsByUser(
	ctx context.Context,
	userID uint,
	params PaginationParams,
	categoryID uint,
) ([]models.Post, PaginationResult, error) {
	db := s.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("parent_id IS NULL AND user_id = ?", userID)
	if categoryID != 0 {
		db = db.Where("category_id = ?", categoryID)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, PaginationResult{}, err
	}

	result := CalculatePagination(total, params.Page, params.PageSize)

	var posts []models.Post
	err := postPreloads(db).
		Order("created DESC").
		Offset((result.CurrentPage - 1) * result.PageSize).
		Limit(result.PageSize).
		Find(&posts).Error
	if err != nil {
		return nil, PaginationResult{}, err
	}
	return posts, result, nil
}

// ListLatestPosts returns the most recent top-level posts up to limit
func (s *Store) ListLatestPosts(ctx context.Context, limit int) ([]models.Post, error) {
	var posts []models.Post
	err := postPreloads(s.db.WithContext(ctx)).
		Where("parent_id IS NULL").
		Order("created DESC").
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// SearchPosts returns top-level posts whose title or text contains the
// search term, newest first.
func (s *Store) SearchPosts(
	ctx context.Context,
	params PaginationParams,
) ([]models.Post, PaginationResult, error) {
	pattern := "%" + params.Search + "%"
	db := s.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("parent_id IS NULL").
		Where("title LIKE ? OR text LIKE ?", pattern, pattern)

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, PaginationResult{}, err
	}

	result := CalculatePagination(total, params.Page, params.PageSize)

	var posts []models.Post
	err := postPreloads(db).
		Order("created DESC").
		Offset((result.CurrentPage - 1) * result.PageSize).
		Limit(result.PageSize).
		Find(&posts).Error
	if err != nil {
		return nil, PaginationResult{}, err
	}
	return posts, result, nil
}

// CreatePost creates a new post
func (s *Store) CreatePost(ctx context.Context, post *models.Post) error {
	return s.db.WithContext(ctx).Create(post).Error
}

// SavePost persists changes to an existing post
func (s *Store) SavePost(ctx context.Context, post *models.Post) error {
	return s.db.WithContext(ctx).Save(post).Error
}

// DeletePost deletes a post and its direct children
func (s *Store) DeletePost(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("parent_id = ?", id).Delete(&models.Post{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, id).Error
	})
}

// CountPosts returns the total number of posts
func (s *Store) CountPosts(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Post{}).Count(&count).Error
	return count, err
}
