package main

import (
	"context"
	"fmt"

	"github.com/brucewayne1212/withdean-football-fixtures/internal/iodb"
	"github.com/brucewayne1212/withdean-football-fixtures/internal/iolegacy"
	"github.com/brucewayne1212/withdean-football-fixtures/internal/iopg"
	"github.com/brucewayne1212/withdean-football-fixtures/internal/iosync"
	"github.com/brucewayne1212/withdean-football-fixtures/pkg/db"
	"github.com/brucewayne1212/withdean-football-fixtures/pkg/storage"
	"github.com/brucewayne1212/withdean-football-fixtures/pkg/taskstore"
)

// openStore connects to PostgreSQL and returns the fixture store.
// The caller closes the operator when done.
func openStore(ctx context.Context) (storage.Store, db.Operator, error) {
	op := iodb.NewPgxOperator()
	if err := op.Connect(ctx, &cfg.Database); err != nil {
		return nil, nil, err
	}

	store, err := iopg.New(op)
	if err != nil {
		op.Close()
		return nil, nil, err
	}
	return store, op, nil
}

// taskMirror returns the task store the workflow commands write through.
// With the legacy file store enabled this is the dual-store syncer;
// otherwise nil, meaning the database alone.
func taskMirror(store storage.Store) (taskstore.Store, error) {
	if !cfg.Legacy.Enabled {
		return nil, nil
	}

	legacy, err := iolegacy.New(cfg.Legacy.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open legacy task store: %w", err)
	}
	return iosync.New(iosync.NewDBTasks(store), legacy, log), nil
}
