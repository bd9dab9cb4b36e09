package services

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/RachelRYuan/Blogen/internal/auth"
	"github.com/RachelRYuan/Blogen/internal/metrics"
	"github.com/RachelRYuan/Blogen/internal/models"
	"github.com/RachelRYuan/Blogen/internal/store"
	"github.com/RachelRYuan/Blogen/internal/token"
)

const loginMethodForm = "form"

// AuthorizationService handles signup and username/password login.
// Successful logins produce a signed access token carrying the user's
// role names as scopes.
type AuthorizationService struct {
	store         *store.Store
	local         *auth.LocalAuthenticator
	tokens        *token.Provider
	rec           metrics.Recorder
	defaultAvatar string
}

func NewAuthorizationService(
	s *store.Store,
	local *auth.LocalAuthenticator,
	tokens *token.Provider,
	rec metrics.Recorder,
	defaultAvatar string,
) *AuthorizationService {
	return &AuthorizationService{
		store:         s,
		local:         local,
		tokens:        tokens,
		rec:           rec,
		defaultAvatar: defaultAvatar,
	}
}

// LoginForm authenticates a username/password pair and issues an access
// token for the user. Credential failures surface as
// auth.ErrBadCredentials without distinguishing the cause.
func (s *AuthorizationService) LoginForm(
	ctx context.Context,
	username, password string,
) (string, *models.User, error) {
	user, err := s.local.Authenticate(ctx, username, password)
	if err != nil {
		s.rec.RecordLogin(loginMethodForm, false)
		return "", nil, err
	}

	compact, err := s.issueToken(user, loginMethodForm)
	if err != nil {
		return "", nil, err
	}

	s.rec.RecordLogin(loginMethodForm, true)
	return compact, user, nil
}

// SignUpParams carries the fields of a new account request.
type SignUpParams struct {
	UserName       string
	FirstName      string
	LastName       string
	Email          string
	Password       string
	AvatarFileName string
}

// SignUp registers a new local account. New users receive the user and
// api roles; admin is only ever granted by hand.
func (s *AuthorizationService) SignUp(
	ctx context.Context,
	p SignUpParams,
) (*models.User, error) {
	hash, err := auth.HashPassword(p.Password)
	if err != nil {
		s.rec.RecordSignup(false)
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	roles, err := s.store.GetRolesByNames(ctx, []string{models.RoleUser, models.RoleAPI})
	if err != nil {
		s.rec.RecordSignup(false)
		return nil, err
	}

	avatarName := p.AvatarFileName
	if avatarName == "" {
		avatarName = s.defaultAvatar
	}
	avatar, err := s.store.GetAvatarByFileName(ctx, avatarName)
	if err != nil {
		s.rec.RecordSignup(false)
		return nil, ErrUnknownAvatar
	}

	user := &models.User{
		UserName:     p.UserName,
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		Email:        p.Email,
		PasswordHash: hash,
		Enabled:      true,
		Roles:        roles,
		Prefs: models.UserPrefs{
			AvatarID: avatar.ID,
		},
	}

	if err := s.store.CreateUser(ctx, user); err != nil {
		s.rec.RecordSignup(false)
		return nil, err
	}

	log.Printf("[Auth] New user registered: %s", user.UserName)
	s.rec.RecordSignup(true)
	return user, nil
}

// UserNameExists reports whether a login name is already taken.
func (s *AuthorizationService) UserNameExists(ctx context.Context, userName string) (bool, error) {
	return s.store.UserNameExists(ctx, userName)
}

func (s *AuthorizationService) issueToken(user *models.User, method string) (string, error) {
	start := time.Now()
	compact, err := s.tokens.Issue(
		strconv.FormatUint(uint64(user.ID), 10),
		user.RoleNames(),
	)
	if err != nil {
		return "", err
	}
	s.rec.RecordTokenIssued(method, time.Since(start))
	return compact, nil
}
