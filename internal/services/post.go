package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/RachelRYuan/Blogen/internal/authz"
	"github.com/RachelRYuan/Blogen/internal/metrics"
	"github.com/RachelRYuan/Blogen/internal/models"
	"github.com/RachelRYuan/Blogen/internal/store"
)

// PostService exposes blog post reads and writes. Mutations are
// permitted to the post's author or an admin.
type PostService struct {
	store       *store.Store
	rec         metrics.Recorder
	latestLimit int
}

func NewPostService(s *store.Store, rec metrics.Recorder, latestLimit int) *PostService {
	return &PostService{
		store:       s,
		rec:         rec,
		latestLimit: latestLimit,
	}
}

// Get returns a single post with its author, category and replies.
func (s *PostService) Get(ctx context.Context, id uint) (*models.Post, error) {
	post, err := s.store.GetPostByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return post, nil
}

// List returns a page of top-level posts, optionally filtered by
// category name.
func (s *PostService) List(
	ctx context.Context,
	page, pageSize int,
	categoryName string,
) ([]models.Post, store.PaginationResult, error) {
	var categoryID uint
	if categoryName != "" {
		category, err := s.store.GetCategoryByName(ctx, categoryName)
		if err != nil {
			if errors.Is(err, store.ErrRecordNotFound) {
				return nil, store.PaginationResult{}, ErrUnknownCategory
			}
			return nil, store.PaginationResult{}, err
		}
		categoryID = category.ID
	}

	params := store.NewPaginationParams(page, pageSize, "")
	return s.store.ListParentPosts(ctx, params, categoryID)
}

// ListByUser returns a page of top-level posts by one author, optionally
// filtered by category name.
func (s *PostService) ListByUser(
	ctx context.Context,
	userID uint,
	page, pageSize int,
	categoryName string,
) ([]models.Post, store.PaginationResult, error) {
	var categoryID uint
	if categoryName != "" {
		category, err := s.store.GetCategoryByName(ctx, categoryName)
		if err != nil {
			if errors.Is(err, store.ErrRecordNotFound) {
				return nil, store.PaginationResult{}, ErrUnknownCategory
			}
			return nil, store.PaginationResult{}, err
		}
		categoryID = category.ID
	}

	params := store.NewPaginationParams(page, pageSize, "")
	return s.store.ListParentPostsByUser(ctx, userID, params, categoryID)
}

// Latest returns the newest top-level posts for the public landing page.
// The configured limit caps any caller-supplied value.
func (s *PostService) Latest(ctx context.Context, limit int) ([]models.Post, error) {
	if limit <= 0 || limit > s.latestLimit {
		limit = s.latestLimit
	}
	return s.store.ListLatestPosts(ctx, limit)
}

// Search returns top-level posts matching the search term in title or body.
func (s *PostService) Search(
	ctx context.Context,
	term string,
	page, pageSize int,
) ([]models.Post, store.PaginationResult, error) {
	params := store.NewPaginationParams(page, pageSize, term)
	return s.store.SearchPosts(ctx, params)
}

// PostParams carries the writable fields of a post.
type PostParams struct {
	Title        string
	Text         string
	CategoryName string
}

// Create creates a new top-level post authored by the principal.
func (s *PostService) Create(
	ctx context.Context,
	principal *authz.Principal,
	p PostParams,
) (*models.Post, error) {
	return s.create(ctx, principal, p, nil)
}

// CreateChild creates a reply under a top-level post. Replying to a
// reply is rejected so threads stay one level deep.
func (s *PostService) CreateChild(
	ctx context.Context,
	principal *authz.Principal,
	parentID uint,
	p PostParams,
) (*models.Post, error) {
	parent, err := s.store.GetPostByID(ctx, parentID)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !parent.IsParent() {
		return nil, ErrReplyToReply
	}
	return s.create(ctx, principal, p, &parent.ID)
}

func (s *PostService) create(
	ctx context.Context,
	principal *authz.Principal,
	p PostParams,
	parentID *uint,
) (*models.Post, error) {
	userID, err := subjectID(principal)
	if err != nil {
		return nil, err
	}

	category, err := s.store.GetCategoryByName(ctx, p.CategoryName)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, ErrUnknownCategory
		}
		return nil, err
	}

	post := &models.Post{
		Title:      p.Title,
		Text:       p.Text,
		Created:    time.Now(),
		UserID:     userID,
		CategoryID: category.ID,
		ParentID:   parentID,
	}
	if err := s.store.CreatePost(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	kind := "post"
	if parentID != nil {
		kind = "reply"
	}
	s.rec.RecordPostCreated(kind)

	return s.store.GetPostByID(ctx, post.ID)
}

// Update modifies a post's title, text and category. The new content
// replaces the old wholesale and the post timestamp is reset.
func (s *PostService) Update(
	ctx context.Context,
	principal *authz.Principal,
	id uint,
	p PostParams,
) (*models.Post, error) {
	post, err := s.store.GetPostByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := s.requireAuthorOrAdmin(principal, post); err != nil {
		return nil, err
	}

	category, err := s.store.GetCategoryByName(ctx, p.CategoryName)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, ErrUnknownCategory
		}
		return nil, err
	}

	post.Title = p.Title
	post.Text = p.Text
	post.CategoryID = category.ID
	post.Category = *category
	post.Created = time.Now()

	if err := s.store.SavePost(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to save post: %w", err)
	}
	return s.store.GetPostByID(ctx, post.ID)
}

// Delete removes a post. Deleting a parent removes its replies too.
func (s *PostService) Delete(
	ctx context.Context,
	principal *authz.Principal,
	id uint,
) error {
	post, err := s.store.GetPostByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if err := s.requireAuthorOrAdmin(principal, post); err != nil {
		return err
	}

	if err := s.store.DeletePost(ctx, id); err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	s.rec.RecordPostDeleted()
	return nil
}

func (s *PostService) requireAuthorOrAdmin(principal *authz.Principal, post *models.Post) error {
	owner := strconv.FormatUint(uint64(post.UserID), 10)
	decision := authz.Evaluate(principal, authz.SelfOrScope(owner, authz.AuthorityAdmin))
	if !decision.Permitted() {
		return ErrForbidden
	}
	return nil
}

func subjectID(principal *authz.Principal) (uint, error) {
	if principal == nil {
		return 0, ErrForbidden
	}
	id, err := strconv.ParseUint(principal.SubjectID, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed subject id %q: %w", principal.SubjectID, err)
	}
	return uint(id), nil
}
