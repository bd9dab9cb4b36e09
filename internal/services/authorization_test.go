package services

import (
	"context"
	"testing"

	"github.com/RachelRYuan/Blogen/internal/auth"
	"github.com/RachelRYuan/Blogen/internal/authz"
	"github.com/RachelRYuan/Blogen/internal/metrics"
	"github.com/RachelRYuan/Blogen/internal/models"
	"github.com/RachelRYuan/Blogen/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuthorizationService(t *testing.T, s *store.Store) *AuthorizationService {
	t.Helper()
	return NewAuthorizationService(
		s,
		auth.NewLocalAuthenticator(s),
		newTestTokenProvider(t),
		metrics.NewNoopMetrics(),
		"avatar0.jpg",
	)
}

func TestAuthorizationService_SignUp(t *testing.T) {
	s := setupTestStore(t)
	svc := newTestAuthorizationService(t, s)

	user, err := svc.SignUp(context.Background(), SignUpParams{
		UserName:  "newuser",
		FirstName: "New",
		LastName:  "User",
		Email:     "newuser@example.com",
		Password:  "secretpassword",
	})
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.True(t, user.Enabled)

	// New accounts get user and api roles, never admin.
	assert.True(t, user.HasRole(models.RoleUser))
	assert.True(t, user.HasRole(models.RoleAPI))
	assert.False(t, user.HasRole(models.RoleAdmin))

	// The plaintext password is never stored.
	assert.NotEqual(t, "secretpassword", user.PasswordHash)
	assert.True(t, auth.CheckPassword("secretpassword", user.PasswordHash))
}

func TestAuthorizationService_SignUp_Conflicts(t *testing.T) {
	s := setupTestStore(t)
	svc := newTestAuthorizationService(t, s)

	params := SignUpParams{
		UserName: "taken",
		Email:    "taken@example.com",
		Password: "secretpassword",
	}
	_, err := svc.SignUp(context.Background(), params)
	require.NoError(t, err)

	_, err = svc.SignUp(context.Background(), params)
	assert.ErrorIs(t, err, store.ErrUsernameConflict)

	params.UserName = "other"
	_, err = svc.SignUp(context.Background(), params)
	assert.ErrorIs(t, err, store.ErrEmailConflict)
}

func TestAuthorizationService_SignUp_UnknownAvatar(t *testing.T) {
	s := setupTestStore(t)
	svc := newTestAuthorizationService(t, s)

	_, err := svc.SignUp(context.Background(), SignUpParams{
		UserName:       "avataruser",
		Email:          "avataruser@example.com",
		Password:       "secretpassword",
		AvatarFileName: "no-such-avatar.jpg",
	})
	assert.ErrorIs(t, err, ErrUnknownAvatar)
}

func TestAuthorizationService_LoginForm(t *testing.T) {
	s := setupTestStore(t)
	svc := newTestAuthorizationService(t, s)

	signed, err := svc.SignUp(context.Background(), SignUpParams{
		UserName: "login",
		Email:    "login@example.com",
		Password: "secretpassword",
	})
	require.NoError(t, err)

	compact, user, err := svc.LoginForm(context.Background(), "login", "secretpassword")
	require.NoError(t, err)
	assert.Equal(t, signed.ID, user.ID)
	assert.NotEmpty(t, compact)

	// The token subject is the user id and the scopes are the role names.
	claims, err := svc.tokens.Verify(compact)
	require.NoError(t, err)
	assert.Equal(t, principalFor(user).SubjectID, claims.Subject)
	assert.ElementsMatch(t, []string{models.RoleUser, models.RoleAPI}, claims.Scopes)
}

func TestAuthorizationService_LoginForm_BadCredentials(t *testing.T) {
	s := setupTestStore(t)
	svc := newTestAuthorizationService(t, s)

	_, _, err := svc.LoginForm(context.Background(), "nobody", "whatever")
	assert.ErrorIs(t, err, auth.ErrBadCredentials)
}

func TestAuthorizationService_UserNameExists(t *testing.T) {
	s := setupTestStore(t)
	svc := newTestAuthorizationService(t, s)

	exists, err := svc.UserNameExists(context.Background(), "admin")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = svc.UserNameExists(context.Background(), "free-name")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestAdminTokenCarriesAdminScope(t *testing.T) {
	s := setupTestStore(t)
	svc := newTestAuthorizationService(t, s)

	compact, user, err := svc.LoginForm(context.Background(), "admin", testAdminPassword)
	require.NoError(t, err)
	require.True(t, user.IsAdmin())

	claims, err := svc.tokens.Verify(compact)
	require.NoError(t, err)
	assert.Contains(t, claims.Scopes, models.RoleAdmin)

	// The scope form of the claim satisfies admin-gated policy.
	p := &authz.Principal{SubjectID: claims.Subject}
	for _, scope := range claims.Scopes {
		p.Authorities = append(p.Authorities, authz.AuthorityForRole(scope))
	}
	assert.True(t, authz.Evaluate(p, authz.RequireScope(authz.AuthorityAdmin)).Permitted())
}
