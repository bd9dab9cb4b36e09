package auth

import (
	"context"
	"testing"

	"github.com/RachelRYuan/Blogen/internal/models"
	"github.com/RachelRYuan/Blogen/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.New("sqlite", ":memory:", "test-admin-password")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func createTestUser(t *testing.T, s *store.Store, userName, password string, enabled bool) *models.User {
	t.Helper()
	hash, err := HashPassword(password)
	require.NoError(t, err)

	user := &models.User{
		UserName:     userName,
		Email:        userName + "@example.com",
		FirstName:    "Test",
		LastName:     "User",
		PasswordHash: hash,
		Enabled:      true,
	}
	require.NoError(t, s.CreateUser(context.Background(), user))
	if !enabled {
		user.Enabled = false
		require.NoError(t, s.DB().Model(user).Update("enabled", false).Error)
	}
	return user
}

func TestLocalAuthenticator_Success(t *testing.T) {
	s := setupTestStore(t)
	a := NewLocalAuthenticator(s)
	createTestUser(t, s, "mcgill", "secretpassword", true)

	user, err := a.Authenticate(context.Background(), "mcgill", "secretpassword")
	require.NoError(t, err)
	assert.Equal(t, "mcgill", user.UserName)
}

func TestLocalAuthenticator_FailuresIndistinguishable(t *testing.T) {
	s := setupTestStore(t)
	a := NewLocalAuthenticator(s)
	createTestUser(t, s, "mcgill", "secretpassword", true)

	_, unknownErr := a.Authenticate(context.Background(), "nobody", "secretpassword")
	_, wrongErr := a.Authenticate(context.Background(), "mcgill", "wrongpassword")

	// Unknown username and wrong password must yield the same error.
	assert.ErrorIs(t, unknownErr, ErrBadCredentials)
	assert.ErrorIs(t, wrongErr, ErrBadCredentials)
	assert.Equal(t, unknownErr.Error(), wrongErr.Error())
}

func TestLocalAuthenticator_DisabledUser(t *testing.T) {
	s := setupTestStore(t)
	a := NewLocalAuthenticator(s)
	createTestUser(t, s, "disabled", "secretpassword", false)

	_, err := a.Authenticate(context.Background(), "disabled", "secretpassword")
	assert.ErrorIs(t, err, ErrBadCredentials)
}

func TestLocalAuthenticator_AdminSeedLogin(t *testing.T) {
	s := setupTestStore(t)
	a := NewLocalAuthenticator(s)

	user, err := a.Authenticate(context.Background(), "admin", "test-admin-password")
	require.NoError(t, err)
	assert.True(t, user.IsAdmin())
	assert.True(t, user.HasRole(models.RoleAPI))
}
