package auth

import (
	"context"

	"github.com/RachelRYuan/Blogen/internal/models"
	"github.com/RachelRYuan/Blogen/internal/store"
)

// LocalAuthenticator validates username/password pairs against the local
// credential store.
type LocalAuthenticator struct {
	store *store.Store
}

// NewLocalAuthenticator creates a new local authenticator
func NewLocalAuthenticator(s *store.Store) *LocalAuthenticator {
	return &LocalAuthenticator{store: s}
}

// Authenticate verifies credentials against the local database. Every
// failure path returns ErrBadCredentials so callers cannot learn whether
// the username exists.
func (a *LocalAuthenticator) Authenticate(
	ctx context.Context,
	username, password string,
) (*models.User, error) {
	user, err := a.store.GetUserByUserName(ctx, username)
	if err != nil {
		return nil, ErrBadCredentials
	}

	if !user.Enabled {
		return nil, ErrBadCredentials
	}

	if !CheckPassword(password, user.PasswordHash) {
		return nil, ErrBadCredentials
	}

	return user, nil
}

// Name returns provider name for logging
func (a *LocalAuthenticator) Name() string {
	return "local"
}
