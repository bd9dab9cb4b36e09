package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/RachelRYuan/Blogen/internal/auth"
	"github.com/RachelRYuan/Blogen/internal/metrics"
	"github.com/RachelRYuan/Blogen/internal/models"
	"github.com/RachelRYuan/Blogen/internal/store"
	"github.com/RachelRYuan/Blogen/internal/token"
)

// OAuth2LoginService binds third-party identities to local accounts.
// The provider-verified email is the join key: an existing account with
// that email is reused, otherwise a local account is created on first
// login. Provider tokens are never stored; the outcome is the same
// locally-signed access token form login produces.
type OAuth2LoginService struct {
	store         *store.Store
	tokens        *token.Provider
	rec           metrics.Recorder
	defaultAvatar string
}

func NewOAuth2LoginService(
	s *store.Store,
	tokens *token.Provider,
	rec metrics.Recorder,
	defaultAvatar string,
) *OAuth2LoginService {
	return &OAuth2LoginService{
		store:         s,
		tokens:        tokens,
		rec:           rec,
		defaultAvatar: defaultAvatar,
	}
}

// ResolveLocalUser finds or creates the local account for a verified
// provider profile. Repeated logins with the same email always resolve
// to the same account.
func (s *OAuth2LoginService) ResolveLocalUser(
	ctx context.Context,
	profile *auth.Profile,
) (*models.User, error) {
	if profile.Email == "" {
		return nil, auth.ErrNoUsableEmail
	}

	user, err := s.store.GetUserByEmail(ctx, profile.Email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, store.ErrRecordNotFound) {
		return nil, err
	}

	return s.createLocalUser(ctx, profile)
}

func (s *OAuth2LoginService) createLocalUser(
	ctx context.Context,
	profile *auth.Profile,
) (*models.User, error) {
	// OAuth2-only accounts never log in with a password, but the
	// column is non-empty so a random placeholder is hashed in.
	placeholder, err := auth.RandomPassword(24)
	if err != nil {
		return nil, err
	}
	hash, err := auth.HashPassword(placeholder)
	if err != nil {
		return nil, err
	}

	roles, err := s.store.GetRolesByNames(ctx, []string{models.RoleUser, models.RoleAPI})
	if err != nil {
		return nil, err
	}
	avatar, err := s.store.GetAvatarByFileName(ctx, s.defaultAvatar)
	if err != nil {
		return nil, err
	}

	firstName, lastName := splitFullName(profile.FullName)
	baseName := profile.Username
	if baseName == "" {
		baseName = strings.SplitN(profile.Email, "@", 2)[0]
	}

	// The provider login may already be taken locally; probe a few
	// numbered variants before giving up.
	for attempt := 0; attempt < 5; attempt++ {
		userName := baseName
		if attempt > 0 {
			userName = fmt.Sprintf("%s%d", baseName, attempt)
		}

		user := &models.User{
			UserName:     userName,
			FirstName:    firstName,
			LastName:     lastName,
			Email:        profile.Email,
			PasswordHash: hash,
			Enabled:      true,
			Roles:        roles,
			Prefs: models.UserPrefs{
				AvatarID: avatar.ID,
			},
		}

		err := s.store.CreateUser(ctx, user)
		if err == nil {
			log.Printf("[OAuth2] Created local account %s for %s", userName, profile.Email)
			return user, nil
		}
		if errors.Is(err, store.ErrUsernameConflict) {
			continue
		}
		return nil, err
	}

	return nil, fmt.Errorf("%w: no free username for %s", store.ErrUsernameConflict, baseName)
}

// LoginUser issues an access token for a resolved local user.
// provider names the identity provider for metrics.
func (s *OAuth2LoginService) LoginUser(user *models.User, provider string) (string, error) {
	start := time.Now()
	compact, err := s.tokens.Issue(
		strconv.FormatUint(uint64(user.ID), 10),
		user.RoleNames(),
	)
	if err != nil {
		s.rec.RecordLogin(provider, false)
		return "", err
	}
	s.rec.RecordTokenIssued(provider, time.Since(start))
	s.rec.RecordLogin(provider, true)
	return compact, nil
}

func splitFullName(fullName string) (string, string) {
	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		return "", ""
	}
	parts := strings.SplitN(fullName, " ", 2)
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], parts[1]
}
