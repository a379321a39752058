// Package db defines the low-level database management contract.
package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/brucewayne1212/withdean-football-fixtures/pkg/config"
)

// Operator manages the PostgreSQL connection lifecycle and exposes the
// pool to higher-level components. Schema creation and migration belong
// to the SchemaManager; the Operator only answers questions about the
// database's raw state.
type Operator interface {
	// Connect establishes a connection pool to the database.
	Connect(context.Context, *config.DatabaseConfig) error

	// Close closes the connection pool.
	Close() error

	// Pool returns the underlying pgxpool.Pool, nil before Connect.
	Pool() *pgxpool.Pool

	// TableExists checks if a table exists in the public schema.
	TableExists(ctx context.Context, tableName string) (bool, error)

	// HasTables checks if the database has any tables at all. Used to
	// decide whether schema creation needs confirmation before
	// dropping data.
	HasTables(ctx context.Context) (bool, error)

	// DropAllTables drops every table in the public schema.
	DropAllTables(ctx context.Context) error
}
