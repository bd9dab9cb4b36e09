package services

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/RachelRYuan/Blogen/internal/auth"
	"github.com/RachelRYuan/Blogen/internal/authz"
	"github.com/RachelRYuan/Blogen/internal/cache"
	"github.com/RachelRYuan/Blogen/internal/metrics"
	"github.com/RachelRYuan/Blogen/internal/models"
	"github.com/RachelRYuan/Blogen/internal/store"
	"github.com/RachelRYuan/Blogen/internal/token"

	"github.com/stretchr/testify/require"
)

const testAdminPassword = "test-admin-password"

func setupTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.New("sqlite", ":memory:", testAdminPassword)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func newTestTokenProvider(t *testing.T) *token.Provider {
	t.Helper()
	keys, err := token.GenerateKeys()
	require.NoError(t, err)
	return token.NewProvider(keys, "blogen-test", time.Hour, 0)
}

func createTestUser(t *testing.T, s *store.Store, userName string) *models.User {
	t.Helper()
	hash, err := auth.HashPassword("secretpassword")
	require.NoError(t, err)

	ctx := context.Background()
	roles, err := s.GetRolesByNames(ctx, []string{models.RoleUser, models.RoleAPI})
	require.NoError(t, err)
	avatar, err := s.GetAvatarByFileName(ctx, "avatar0.jpg")
	require.NoError(t, err)

	user := &models.User{
		UserName:     userName,
		Email:        userName + "@example.com",
		FirstName:    "Test",
		LastName:     "User",
		PasswordHash: hash,
		Enabled:      true,
		Roles:        roles,
		Prefs:        models.UserPrefs{AvatarID: avatar.ID},
	}
	require.NoError(t, s.CreateUser(ctx, user))
	return user
}

func createTestCategory(t *testing.T, s *store.Store, name string) *models.Category {
	t.Helper()
	category := &models.Category{Name: name}
	require.NoError(t, s.CreateCategory(context.Background(), category))
	return category
}

func principalFor(user *models.User) *authz.Principal {
	authorities := make([]string, 0, len(user.Roles))
	for _, r := range user.Roles {
		authorities = append(authorities, authz.AuthorityForRole(r.Name))
	}
	return &authz.Principal{
		SubjectID:   strconv.FormatUint(uint64(user.ID), 10),
		Authorities: authorities,
	}
}

func adminPrincipal() *authz.Principal {
	return &authz.Principal{
		SubjectID: "1",
		Authorities: []string{
			authz.AuthorityUser,
			authz.AuthorityAPI,
			authz.AuthorityAdmin,
		},
	}
}

func newTestUserService(t *testing.T, s *store.Store) *UserService {
	t.Helper()
	return NewUserService(s, cache.NewMemoryCache[models.User](), 5*time.Minute)
}

func newTestPostService(t *testing.T, s *store.Store) *PostService {
	t.Helper()
	return NewPostService(s, metrics.NewNoopMetrics(), 9)
}
