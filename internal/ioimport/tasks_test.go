package ioimport

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brucewayne1212/withdean-football-fixtures/internal/iomem"
	"github.com/brucewayne1212/withdean-football-fixtures/pkg/parse"
	"github.com/brucewayne1212/withdean-football-fixtures/pkg/schema"
	"github.com/brucewayne1212/withdean-football-fixtures/pkg/taskstore"
)

func importOneHomeFixture(t *testing.T, store *iomem.Store) schema.Task {
	t.Helper()
	imp := newTestImporter(store)

	data := csvHeader +
		"Withdean Youth U9 Red,Hassocks Juniors U9 Robins,H,Stanley Deason 3G,28/09/25 10:00\n"
	_, err := imp.Import(
		context.Background(), testOrg, []byte(data), parse.FormatCSV)
	require.NoError(t, err)

	tasks := activeTasks(t, store)
	require.Len(t, tasks, 1)
	return tasks[0]
}

func TestTaskServiceSetStatusForward(t *testing.T) {
	store := iomem.New()
	task := importOneHomeFixture(t, store)
	svc := NewTaskService(store, nil, testConfig(), testLogger())
	ctx := context.Background()

	require.NoError(t, svc.SetStatus(ctx, task.ID, schema.StatusInProgress))
	require.NoError(t, svc.SetStatus(ctx, task.ID, schema.StatusCompleted))

	after, err := store.Task(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, schema.StatusCompleted, after.Status)
	assert.NotNil(t, after.CompletedAt)
}

func TestTaskServiceSetStatusBackwardRejected(t *testing.T) {
	store := iomem.New()
	task := importOneHomeFixture(t, store)
	svc := NewTaskService(store, nil, testConfig(), testLogger())
	ctx := context.Background()

	require.NoError(t, svc.SetStatus(ctx, task.ID, schema.StatusCompleted))

	err := svc.SetStatus(ctx, task.ID, schema.StatusPending)
	assert.Error(t, err)

	// Same-status changes are also rejected.
	err = svc.SetStatus(ctx, task.ID, schema.StatusCompleted)
	assert.Error(t, err)
}

func TestTaskServiceSetStatusNotFound(t *testing.T) {
	store := iomem.New()
	svc := NewTaskService(store, nil, testConfig(), testLogger())

	err := svc.SetStatus(context.Background(), "no-such-task",
		schema.StatusCompleted)
	assert.Error(t, err)
}

func TestTaskServiceListFiltersByStatus(t *testing.T) {
	store := iomem.New()
	task := importOneHomeFixture(t, store)
	svc := NewTaskService(store, nil, testConfig(), testLogger())
	ctx := context.Background()

	pending, err := svc.List(ctx, testOrg, schema.StatusPending)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, task.ID, pending[0].ID)

	completed, err := svc.List(ctx, testOrg, schema.StatusCompleted)
	require.NoError(t, err)
	assert.Empty(t, completed)
}

func TestTaskServiceSweep(t *testing.T) {
	store := iomem.New()
	task := importOneHomeFixture(t, store)
	cfg := testConfig()
	cfg.Legacy.SweepAfterDays = 30
	svc := NewTaskService(store, nil, cfg, testLogger())
	ctx := context.Background()

	// A freshly completed task survives the sweep.
	task.Status = schema.StatusCompleted
	now := time.Now()
	task.CompletedAt = &now
	require.NoError(t, store.SaveTask(ctx, &task))

	count, err := svc.Sweep(ctx, testOrg)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	// Backdate completion past the retention window.
	old := time.Now().AddDate(0, 0, -31)
	task.CompletedAt = &old
	require.NoError(t, store.SaveTask(ctx, &task))

	count, err = svc.Sweep(ctx, testOrg)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	assert.Empty(t, activeTasks(t, store))
}

// brokenMirror always fails, standing in for an unreachable legacy
// store.
type brokenMirror struct{}

func (brokenMirror) Load(context.Context, string) (*taskstore.Record, error) {
	return nil, errors.New("mirror down")
}
func (brokenMirror) Save(context.Context, taskstore.Record) error {
	return errors.New("mirror down")
}
func (brokenMirror) Delete(context.Context, string) error {
	return errors.New("mirror down")
}
func (brokenMirror) List(context.Context, string) ([]taskstore.Record, error) {
	return nil, errors.New("mirror down")
}

func TestTaskServiceMirrorFailureDoesNotBlock(t *testing.T) {
	store := iomem.New()
	task := importOneHomeFixture(t, store)
	svc := NewTaskService(store, brokenMirror{}, testConfig(), testLogger())
	ctx := context.Background()

	// The database write wins even when the mirror is down.
	require.NoError(t, svc.SetStatus(ctx, task.ID, schema.StatusInProgress))

	after, err := store.Task(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, schema.StatusInProgress, after.Status)
}
