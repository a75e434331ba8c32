package services

import (
	"context"
	"strings"
	"testing"

	"github.com/dmitrijs2005/crossclip/internal/common"
	"github.com/dmitrijs2005/crossclip/internal/server/config"
	"github.com/dmitrijs2005/crossclip/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newItemService(t *testing.T, limit int) (*ItemService, *fakeItemsRepo, *fakeBlobs) {
	t.Helper()
	db, _ := newSQLMockDB(t)
	repo := newFakeItemsRepo()
	store := newFakeBlobs()
	s := NewItemService(db, &fakeRepoManager{it: repo}, store, &config.Config{InlineContentLimit: limit}, nil)
	return s, repo, store
}

func TestItemService_AddAndList_Inline(t *testing.T) {
	s, repo, store := newItemService(t, 1024)
	ctx := context.Background()

	id1, err := s.Add(ctx, "u1", &models.Item{Content: "first", CreatedAt: 1000, OriginDevice: "laptop"})
	require.NoError(t, err)
	id2, err := s.Add(ctx, "u1", &models.Item{Content: "second", CreatedAt: 2000, OriginDevice: "phone"})
	require.NoError(t, err)
	_, err = s.Add(ctx, "u2", &models.Item{Content: "other", CreatedAt: 3000})
	require.NoError(t, err)

	assert.NotEqual(t, id1, id2)
	assert.Len(t, repo.rows, 3)
	assert.Empty(t, store.objects)

	got, err := s.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, id2, got[0].ID)
	assert.Equal(t, "second", got[0].Content)
	assert.Equal(t, "phone", got[0].OriginDevice)
	assert.Equal(t, id1, got[1].ID)
}

func TestItemService_Add_Offloads(t *testing.T) {
	s, repo, store := newItemService(t, 8)
	ctx := context.Background()

	big := strings.Repeat("x", 100)
	id, err := s.Add(ctx, "u1", &models.Item{Content: big, CreatedAt: 1})
	require.NoError(t, err)

	row := repo.rows[id]
	require.NotNil(t, row)
	assert.Empty(t, row.Content)
	assert.NotEmpty(t, row.StorageKey)
	assert.Equal(t, big, string(store.objects[row.StorageKey]))

	got, err := s.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, big, got[0].Content)

	require.NoError(t, s.Delete(ctx, "u1", id))
	assert.Empty(t, store.objects)
}

func TestItemService_Add_Validation(t *testing.T) {
	s, repo, _ := newItemService(t, 0)
	ctx := context.Background()

	_, err := s.Add(ctx, "u1", &models.Item{Content: "  \n\t"})
	assert.ErrorIs(t, err, common.ErrorEmptyContent)

	_, err = s.Add(ctx, "u1", &models.Item{Content: strings.Repeat("a", common.MaxContentBytes+1)})
	assert.ErrorIs(t, err, common.ErrorContentTooLarge)

	assert.Empty(t, repo.rows)
}

func TestItemService_Add_BlobFailure(t *testing.T) {
	s, repo, store := newItemService(t, 1)
	store.putErr = errBoom{}

	_, err := s.Add(context.Background(), "u1", &models.Item{Content: "abc"})
	require.Error(t, err)
	assert.Empty(t, repo.rows)
}

func TestItemService_Add_RowFailureCleansBlob(t *testing.T) {
	s, repo, store := newItemService(t, 1)
	repo.createErr = errBoom{}

	_, err := s.Add(context.Background(), "u1", &models.Item{Content: "abc"})
	require.Error(t, err)
	assert.Empty(t, store.objects)
}

func TestItemService_List_SkipsMissingBlob(t *testing.T) {
	s, repo, _ := newItemService(t, 0)
	repo.rows["gone"] = &models.Item{ID: "gone", UserID: "u1", StorageKey: "items/u1/gone", CreatedAt: 5}
	repo.rows["ok"] = &models.Item{ID: "ok", UserID: "u1", Content: "here", CreatedAt: 1}

	got, err := s.List(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "ok", got[0].ID)
}

func TestItemService_List_Error(t *testing.T) {
	s, repo, _ := newItemService(t, 0)
	repo.listErr = errBoom{}

	_, err := s.List(context.Background(), "u1")
	assert.Error(t, err)
}

func TestItemService_Delete_Idempotent(t *testing.T) {
	s, _, _ := newItemService(t, 0)
	ctx := context.Background()

	id, err := s.Add(ctx, "u1", &models.Item{Content: "x", CreatedAt: 1})
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, "u2", id), "other users cannot delete but get no error")
	got, err := s.List(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, got, 1)

	require.NoError(t, s.Delete(ctx, "u1", id))
	require.NoError(t, s.Delete(ctx, "u1", id))
	require.NoError(t, s.Delete(ctx, "u1", "never-existed"))

	got, err = s.List(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestItemService_Delete_RepoError(t *testing.T) {
	s, repo, _ := newItemService(t, 0)
	repo.deleteErr = errBoom{}

	assert.Error(t, s.Delete(context.Background(), "u1", "7d9f4f3e-2a51-4c55-9a57-0c1d2e3f4a5b"))
}

func TestItemService_Delete_MalformedIDSkipsRepository(t *testing.T) {
	s, repo, _ := newItemService(t, 0)
	repo.deleteErr = errBoom{}

	for _, id := range []string{"x", "", "never-existed", "1; DROP TABLE items"} {
		require.NoError(t, s.Delete(context.Background(), "u1", id), id)
	}
	assert.Zero(t, repo.deleteCalls)
}
