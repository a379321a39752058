package iolegacy

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brucewayne1212/withdean-football-fixtures/pkg/schema"
	"github.com/brucewayne1212/withdean-football-fixtures/pkg/taskstore"
)

func testRecord(id, orgID string) taskstore.Record {
	return taskstore.Record{
		ID:             id,
		OrganizationID: orgID,
		FixtureID:      "fixture-1",
		TaskType:       schema.TaskHomeEmail,
		Status:         schema.StatusPending,
		UpdatedAt:      time.Now().UTC().Truncate(time.Second),
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store, err := New(dir)
	require.NoError(t, err)
	ctx := context.Background()

	rec := testRecord("task-1", "org-1")
	require.NoError(t, store.Save(ctx, rec))

	// One file per task under the org directory.
	_, err = os.Stat(filepath.Join(dir, "org-1", "task-1.json"))
	require.NoError(t, err)

	loaded, err := store.Load(ctx, "task-1")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, rec.ID, loaded.ID)
	assert.Equal(t, rec.Status, loaded.Status)
	assert.Equal(t, rec.TaskType, loaded.TaskType)
	assert.True(t, rec.UpdatedAt.Equal(loaded.UpdatedAt))
}

func TestFileStoreLoadMissing(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)

	rec, err := store.Load(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestFileStoreList(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, testRecord("task-1", "org-1")))
	require.NoError(t, store.Save(ctx, testRecord("task-2", "org-1")))
	require.NoError(t, store.Save(ctx, testRecord("task-3", "org-2")))

	recs, err := store.List(ctx, "org-1")
	require.NoError(t, err)
	assert.Len(t, recs, 2)

	recs, err = store.List(ctx, "org-3")
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestFileStoreDelete(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, testRecord("task-1", "org-1")))
	require.NoError(t, store.Delete(ctx, "task-1"))

	rec, err := store.Load(ctx, "task-1")
	require.NoError(t, err)
	assert.Nil(t, rec)

	// Deleting again is a no-op.
	require.NoError(t, store.Delete(ctx, "task-1"))
}

func TestFileStoreOverwrite(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	rec := testRecord("task-1", "org-1")
	require.NoError(t, store.Save(ctx, rec))

	rec.Status = schema.StatusCompleted
	require.NoError(t, store.Save(ctx, rec))

	loaded, err := store.Load(ctx, "task-1")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, schema.StatusCompleted, loaded.Status)
}
