package iosync

import (
	"context"

	"github.com/brucewayne1212/withdean-football-fixtures/pkg/storage"
	"github.com/brucewayne1212/withdean-football-fixtures/pkg/taskstore"
)

// dbTasks adapts storage.Store to the taskstore contract so the
// database can act as the primary side of the pair.
type dbTasks struct {
	store storage.Store
}

// NewDBTasks wraps the database store as a taskstore.Store.
func NewDBTasks(store storage.Store) taskstore.Store {
	return &dbTasks{store: store}
}

func (d *dbTasks) Load(
	ctx context.Context, id string,
) (*taskstore.Record, error) {
	task, err := d.store.Task(ctx, id)
	if err != nil || task == nil {
		return nil, err
	}
	rec := taskstore.FromTask(task)
	return &rec, nil
}

func (d *dbTasks) Save(ctx context.Context, rec taskstore.Record) error {
	task := rec.Task()
	return d.store.SaveTask(ctx, &task)
}

// Delete archives instead of removing; the database never drops
// workflow history.
func (d *dbTasks) Delete(ctx context.Context, id string) error {
	task, err := d.store.Task(ctx, id)
	if err != nil || task == nil {
		return err
	}
	task.IsArchived = true
	return d.store.SaveTask(ctx, task)
}

func (d *dbTasks) List(
	ctx context.Context, orgID string,
) ([]taskstore.Record, error) {
	tasks, err := d.store.Tasks(ctx, storage.TaskFilter{
		OrganizationID:  orgID,
		IncludeArchived: true,
	})
	if err != nil {
		return nil, err
	}
	recs := make([]taskstore.Record, len(tasks))
	for i := range tasks {
		recs[i] = taskstore.FromTask(&tasks[i])
	}
	return recs, nil
}
