package services

import (
	"context"
	"testing"

	"github.com/RachelRYuan/Blogen/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryService_CreateAndGet(t *testing.T) {
	s := setupTestStore(t)
	svc := NewCategoryService(s)

	created, err := svc.Create(context.Background(), "Business")
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	got, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Business", got.Name)

	_, err = svc.Get(context.Background(), 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCategoryService_Create_Conflict(t *testing.T) {
	s := setupTestStore(t)
	svc := NewCategoryService(s)

	_, err := svc.Create(context.Background(), "Business")
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), "Business")
	assert.ErrorIs(t, err, store.ErrCategoryConflict)
}

func TestCategoryService_Update(t *testing.T) {
	s := setupTestStore(t)
	svc := NewCategoryService(s)

	created, err := svc.Create(context.Background(), "Busines")
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), "Tech")
	require.NoError(t, err)

	renamed, err := svc.Update(context.Background(), created.ID, "Business")
	require.NoError(t, err)
	assert.Equal(t, "Business", renamed.Name)

	// Renaming onto an existing name is a conflict.
	_, err = svc.Update(context.Background(), created.ID, "Tech")
	assert.ErrorIs(t, err, store.ErrCategoryConflict)
}

func TestCategoryService_List_SortedByName(t *testing.T) {
	s := setupTestStore(t)
	svc := NewCategoryService(s)

	for _, name := range []string{"Zeta", "Alpha", "Mid"} {
		_, err := svc.Create(context.Background(), name)
		require.NoError(t, err)
	}

	categories, _, err := svc.List(context.Background(), 0, 10)
	require.NoError(t, err)
	require.Len(t, categories, 3)
	assert.Equal(t, "Alpha", categories[0].Name)
	assert.Equal(t, "Zeta", categories[2].Name)
}

func TestAvatarService_ListFileNames(t *testing.T) {
	s := setupTestStore(t)
	svc := NewAvatarService(s)

	names, err := svc.ListFileNames(context.Background())
	require.NoError(t, err)
	assert.Len(t, names, 8)
	assert.Equal(t, "avatar0.jpg", names[0])
}
