package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/RachelRYuan/Blogen/internal/auth"
	"github.com/RachelRYuan/Blogen/internal/authz"
	"github.com/RachelRYuan/Blogen/internal/cache"
	"github.com/RachelRYuan/Blogen/internal/models"
	"github.com/RachelRYuan/Blogen/internal/store"
)

// UserService exposes account reads and self-service profile updates.
// Reads go through a cache-aside layer keyed by user id; every write
// invalidates the entry so stale profiles never outlive an update.
type UserService struct {
	store    *store.Store
	cache    cache.Cache[models.User]
	cacheTTL time.Duration
}

func NewUserService(
	s *store.Store,
	c cache.Cache[models.User],
	cacheTTL time.Duration,
) *UserService {
	return &UserService{
		store:    s,
		cache:    c,
		cacheTTL: cacheTTL,
	}
}

func userCacheKey(id uint) string {
	return "user:" + strconv.FormatUint(uint64(id), 10)
}

// GetByID returns the user with the given id, serving repeated reads
// from cache.
func (s *UserService) GetByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := cache.GetWithFetch(
		ctx,
		s.cache,
		userCacheKey(id),
		s.cacheTTL,
		func(ctx context.Context, key string) (models.User, error) {
			u, err := s.store.GetUserByID(ctx, id)
			if err != nil {
				return models.User{}, err
			}
			return *u, nil
		},
	)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetByUserName returns the user with the given login name.
func (s *UserService) GetByUserName(ctx context.Context, userName string) (*models.User, error) {
	user, err := s.store.GetUserByUserName(ctx, userName)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

// List returns all users.
func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.store.ListUsers(ctx)
}

// UpdateParams carries the mutable profile fields. Zero values leave
// the current value untouched; avatar changes go by file name.
type UpdateParams struct {
	FirstName      string
	LastName       string
	Email          string
	UserName       string
	AvatarFileName string
}

// Update modifies a user's profile. Permitted for the user themselves
// or an admin; everyone else gets ErrForbidden.
func (s *UserService) Update(
	ctx context.Context,
	principal *authz.Principal,
	id uint,
	p UpdateParams,
) (*models.User, error) {
	if err := s.requireSelfOrAdmin(principal, id); err != nil {
		return nil, err
	}

	user, err := s.store.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if p.FirstName != "" {
		user.FirstName = p.FirstName
	}
	if p.LastName != "" {
		user.LastName = p.LastName
	}
	if p.Email != "" && p.Email != user.Email {
		if _, err := s.store.GetUserByEmail(ctx, p.Email); err == nil {
			return nil, store.ErrEmailConflict
		} else if !errors.Is(err, store.ErrRecordNotFound) {
			return nil, err
		}
		user.Email = p.Email
	}
	if p.UserName != "" && p.UserName != user.UserName {
		taken, err := s.store.UserNameExists(ctx, p.UserName)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, store.ErrUsernameConflict
		}
		user.UserName = p.UserName
	}
	if p.AvatarFileName != "" {
		avatar, err := s.store.GetAvatarByFileName(ctx, p.AvatarFileName)
		if err != nil {
			return nil, ErrUnknownAvatar
		}
		user.Prefs.AvatarID = avatar.ID
		user.Prefs.Avatar = *avatar
	}

	if err := s.store.SaveUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to save user: %w", err)
	}

	_ = s.cache.Delete(ctx, userCacheKey(id))
	return user, nil
}

// ChangePassword replaces a user's password. Permitted for the user
// themselves or an admin.
func (s *UserService) ChangePassword(
	ctx context.Context,
	principal *authz.Principal,
	id uint,
	newPassword string,
) error {
	if err := s.requireSelfOrAdmin(principal, id); err != nil {
		return err
	}

	user, err := s.store.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.PasswordHash = hash

	if err := s.store.SaveUser(ctx, user); err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}

	_ = s.cache.Delete(ctx, userCacheKey(id))
	return nil
}

func (s *UserService) requireSelfOrAdmin(principal *authz.Principal, ownerID uint) error {
	owner := strconv.FormatUint(uint64(ownerID), 10)
	decision := authz.Evaluate(principal, authz.SelfOrScope(owner, authz.AuthorityAdmin))
	if !decision.Permitted() {
		return ErrForbidden
	}
	return nil
}
