package store

import (
	"context"
	"testing"
	"time"

	"github.com/RachelRYuan/Blogen/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestStoreWithSQLite tests store operations with SQLite
func TestStoreWithSQLite(t *testing.T) {
	s, err := New("sqlite", ":memory:", "test-admin-password")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	testBasicOperations(t, s)
}

// TestStoreWithPostgres tests store operations with PostgreSQL
func TestStoreWithPostgres(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping PostgreSQL integration test in short mode")
	}

	defer func() {
		if r := recover(); r != nil {
			t.Skipf("Skipping PostgreSQL test: Docker not available (panic: %v)", r)
		}
	}()

	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Skipf("Skipping PostgreSQL test: Docker not available (%v)", err)
		return
	}
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	s, err := New("postgres", dsn, "test-admin-password")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	testBasicOperations(t, s)
}

func testBasicOperations(t *testing.T, s *Store) {
	ctx := context.Background()

	t.Run("SeedData", func(t *testing.T) {
		// Roles, avatars and the admin account exist after bootstrap.
		roles, err := s.GetRolesByNames(ctx, []string{
			models.RoleUser, models.RoleAPI, models.RoleAdmin,
		})
		require.NoError(t, err)
		assert.Len(t, roles, 3)

		avatars, err := s.ListAvatarFileNames(ctx)
		require.NoError(t, err)
		assert.Len(t, avatars, 8)

		admin, err := s.GetUserByUserName(ctx, "admin")
		require.NoError(t, err)
		assert.True(t, admin.IsAdmin())
		assert.Equal(t, "avatar0.jpg", admin.Prefs.Avatar.FileName)
	})

	t.Run("CreateAndGetUser", func(t *testing.T) {
		user := seedUser(t, s, "storeuser")

		byID, err := s.GetUserByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "storeuser", byID.UserName)
		assert.Len(t, byID.Roles, 2)

		byEmail, err := s.GetUserByEmail(ctx, "storeuser@example.com")
		require.NoError(t, err)
		assert.Equal(t, user.ID, byEmail.ID)

		_, err = s.GetUserByID(ctx, 99999)
		assert.ErrorIs(t, err, ErrRecordNotFound)
	})

	t.Run("UserConflicts", func(t *testing.T) {
		seedUser(t, s, "conflict")

		dup := &models.User{
			UserName:     "conflict",
			Email:        "unique@example.com",
			PasswordHash: "hash",
			Enabled:      true,
		}
		assert.ErrorIs(t, s.CreateUser(ctx, dup), ErrUsernameConflict)

		dup = &models.User{
			UserName:     "unique",
			Email:        "conflict@example.com",
			PasswordHash: "hash",
			Enabled:      true,
		}
		assert.ErrorIs(t, s.CreateUser(ctx, dup), ErrEmailConflict)
	})

	t.Run("UserNameExists", func(t *testing.T) {
		exists, err := s.UserNameExists(ctx, "admin")
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = s.UserNameExists(ctx, "ghost")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("Categories", func(t *testing.T) {
		category := &models.Category{Name: "Store Tech"}
		require.NoError(t, s.CreateCategory(ctx, category))

		assert.ErrorIs(t,
			s.CreateCategory(ctx, &models.Category{Name: "Store Tech"}),
			ErrCategoryConflict)

		byName, err := s.GetCategoryByName(ctx, "Store Tech")
		require.NoError(t, err)
		assert.Equal(t, category.ID, byName.ID)
	})

	t.Run("PostsAndReplies", func(t *testing.T) {
		author := seedUser(t, s, "postauthor")
		category := &models.Category{Name: "Posting"}
		require.NoError(t, s.CreateCategory(ctx, category))

		parent := &models.Post{
			Title:      "Parent",
			Text:       "parent body",
			Created:    time.Now(),
			UserID:     author.ID,
			CategoryID: category.ID,
		}
		require.NoError(t, s.CreatePost(ctx, parent))

		child := &models.Post{
			Title:      "Child",
			Text:       "child body",
			Created:    time.Now(),
			UserID:     author.ID,
			CategoryID: category.ID,
			ParentID:   &parent.ID,
		}
		require.NoError(t, s.CreatePost(ctx, child))

		got, err := s.GetPostByID(ctx, parent.ID)
		require.NoError(t, err)
		assert.Equal(t, "postauthor", got.User.UserName)
		assert.Equal(t, "Posting", got.Category.Name)
		require.Len(t, got.Children, 1)
		assert.Equal(t, "Child", got.Children[0].Title)

		// Parent listings exclude replies.
		posts, page, err := s.ListParentPosts(ctx, NewPaginationParams(1, 10, ""), category.ID)
		require.NoError(t, err)
		assert.Len(t, posts, 1)
		assert.Equal(t, int64(1), page.Total)

		// Deleting the parent removes the reply too.
		require.NoError(t, s.DeletePost(ctx, parent.ID))
		_, err = s.GetPostByID(ctx, parent.ID)
		assert.ErrorIs(t, err, ErrRecordNotFound)
		_, err = s.GetPostByID(ctx, child.ID)
		assert.ErrorIs(t, err, ErrRecordNotFound)
	})

	t.Run("Counts", func(t *testing.T) {
		users, err := s.CountUsers(ctx)
		require.NoError(t, err)
		assert.Positive(t, users)

		_, err = s.CountPosts(ctx)
		require.NoError(t, err)
	})
}

func seedUser(t *testing.T, s *Store, userName string) *models.User {
	t.Helper()
	ctx := context.Background()

	roles, err := s.GetRolesByNames(ctx, []string{models.RoleUser, models.RoleAPI})
	require.NoError(t, err)
	avatar, err := s.GetAvatarByFileName(ctx, "avatar1.jpg")
	require.NoError(t, err)

	user := &models.User{
		UserName:     userName,
		Email:        userName + "@example.com",
		FirstName:    "Store",
		LastName:     "Test",
		PasswordHash: "hash",
		Enabled:      true,
		Roles:        roles,
		Prefs:        models.UserPrefs{AvatarID: avatar.ID},
	}
	require.NoError(t, s.CreateUser(ctx, user))
	return user
}
