package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brucewayne1212/withdean-football-fixtures/internal/iodb"
	"github.com/brucewayne1212/withdean-football-fixtures/internal/ioschema"
	"github.com/brucewayne1212/withdean-football-fixtures/internal/iotesting"
)

// Integration test, requires a PostgreSQL server with a fixtures_test
// database. Skip with: go test -short

// TestSchemaCreate_Integration runs the complete schema creation
// workflow end-to-end: connect, create via GORM AutoMigrate, verify
// the tables exist.
func TestSchemaCreate_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	cfg := iotesting.GetTestConfig()

	op := iodb.NewPgxOperator()
	err := op.Connect(ctx, &cfg.Database)
	require.NoError(t, err, "Should connect to database")
	defer op.Close()

	_ = op.DropAllTables(ctx)

	sm := ioschema.NewManager(op)
	err = sm.Create(ctx)
	require.NoError(t, err, "Schema creation should succeed")

	expectedTables := []string{
		"organizations",
		"teams",
		"pitches",
		"pitch_aliases",
		"fixtures",
		"tasks",
		"team_contacts",
		"team_coaches",
		"email_templates",
	}
	for _, table := range expectedTables {
		exists, err := op.TableExists(ctx, table)
		require.NoError(t, err,
			"Should be able to check table existence for %s", table)
		assert.True(t, exists, "Table %s should exist after schema creation", table)
	}

	has, err := op.HasTables(ctx)
	require.NoError(t, err)
	assert.True(t, has)

	// Migrate on an existing schema is a no-op and must not fail.
	err = sm.Migrate(ctx)
	assert.NoError(t, err, "Migrate over an existing schema should succeed")
}
