package services

import (
	"context"
	"testing"

	"github.com/RachelRYuan/Blogen/internal/auth"
	"github.com/RachelRYuan/Blogen/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_GetByID_CachesReads(t *testing.T) {
	s := setupTestStore(t)
	svc := newTestUserService(t, s)
	user := createTestUser(t, s, "cached")

	first, err := svc.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "cached", first.UserName)

	// Mutate the row behind the cache; a repeated read still sees the
	// cached profile until a write invalidates it.
	require.NoError(t, s.DB().Model(user).Update("first_name", "Changed").Error)

	second, err := svc.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, first.FirstName, second.FirstName)
}

func TestUserService_GetByID_NotFound(t *testing.T) {
	s := setupTestStore(t)
	svc := newTestUserService(t, s)

	_, err := svc.GetByID(context.Background(), 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserService_Update_SelfOrAdmin(t *testing.T) {
	s := setupTestStore(t)
	svc := newTestUserService(t, s)
	user := createTestUser(t, s, "profile")
	stranger := createTestUser(t, s, "stranger")

	_, err := svc.Update(context.Background(), principalFor(stranger), user.ID, UpdateParams{
		FirstName: "Hijacked",
	})
	assert.ErrorIs(t, err, ErrForbidden)

	updated, err := svc.Update(context.Background(), principalFor(user), user.ID, UpdateParams{
		FirstName:      "Updated",
		AvatarFileName: "avatar3.jpg",
	})
	require.NoError(t, err)
	assert.Equal(t, "Updated", updated.FirstName)
	assert.Equal(t, "avatar3.jpg", updated.Prefs.Avatar.FileName)
	// Untouched fields keep their values.
	assert.Equal(t, "User", updated.LastName)
	assert.Equal(t, "profile@example.com", updated.Email)

	// Admins may update anyone.
	_, err = svc.Update(context.Background(), adminPrincipal(), user.ID, UpdateParams{
		LastName: "Moderated",
	})
	assert.NoError(t, err)
}

func TestUserService_Update_InvalidatesCache(t *testing.T) {
	s := setupTestStore(t)
	svc := newTestUserService(t, s)
	user := createTestUser(t, s, "fresh")

	cached, err := svc.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Test", cached.FirstName)

	_, err = svc.Update(context.Background(), principalFor(user), user.ID, UpdateParams{
		FirstName: "Renamed",
	})
	require.NoError(t, err)

	after, err := svc.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", after.FirstName)
}

func TestUserService_Update_Conflicts(t *testing.T) {
	s := setupTestStore(t)
	svc := newTestUserService(t, s)
	user := createTestUser(t, s, "first")
	createTestUser(t, s, "second")

	_, err := svc.Update(context.Background(), principalFor(user), user.ID, UpdateParams{
		UserName: "second",
	})
	assert.ErrorIs(t, err, store.ErrUsernameConflict)

	_, err = svc.Update(context.Background(), principalFor(user), user.ID, UpdateParams{
		Email: "second@example.com",
	})
	assert.ErrorIs(t, err, store.ErrEmailConflict)
}

func TestUserService_Update_UnknownAvatar(t *testing.T) {
	s := setupTestStore(t)
	svc := newTestUserService(t, s)
	user := createTestUser(t, s, "avatarless")

	_, err := svc.Update(context.Background(), principalFor(user), user.ID, UpdateParams{
		AvatarFileName: "no-such.jpg",
	})
	assert.ErrorIs(t, err, ErrUnknownAvatar)
}

func TestUserService_ChangePassword(t *testing.T) {
	s := setupTestStore(t)
	svc := newTestUserService(t, s)
	user := createTestUser(t, s, "rotating")
	stranger := createTestUser(t, s, "stranger")

	err := svc.ChangePassword(context.Background(), principalFor(stranger), user.ID, "newpassword")
	assert.ErrorIs(t, err, ErrForbidden)

	err = svc.ChangePassword(context.Background(), principalFor(user), user.ID, "newpassword")
	require.NoError(t, err)

	authenticator := auth.NewLocalAuthenticator(s)
	_, err = authenticator.Authenticate(context.Background(), "rotating", "secretpassword")
	assert.ErrorIs(t, err, auth.ErrBadCredentials)
	_, err = authenticator.Authenticate(context.Background(), "rotating", "newpassword")
	assert.NoError(t, err)
}

func TestUserService_List(t *testing.T) {
	s := setupTestStore(t)
	svc := newTestUserService(t, s)
	createTestUser(t, s, "one")
	createTestUser(t, s, "two")

	users, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 3) // seeded admin + two created
}
