// Package ioschema implements the schema lifecycle with GORM
// AutoMigrate over the operator's pgx pool.
package ioschema

import (
	"context"

	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/brucewayne1212/withdean-football-fixtures/pkg/db"
	"github.com/brucewayne1212/withdean-football-fixtures/pkg/fixtures"
	"github.com/brucewayne1212/withdean-football-fixtures/pkg/schema"
)

type manager struct {
	operator db.Operator
}

// NewManager creates a SchemaManager over a connected operator.
func NewManager(op db.Operator) fixtures.SchemaManager {
	return &manager{operator: op}
}

// Create builds the schema from scratch, dropping whatever is there.
func (m *manager) Create(ctx context.Context) error {
	if m.operator.Pool() == nil {
		return NotConnectedError()
	}
	if err := m.operator.DropAllTables(ctx); err != nil {
		return err
	}

	gormDB, err := m.open()
	if err != nil {
		return err
	}
	if err := schema.Migrate(gormDB); err != nil {
		return CreateSchemaError(err)
	}
	return nil
}

// Migrate updates an existing schema in place. AutoMigrate only adds
// columns and indexes; it never drops data.
func (m *manager) Migrate(ctx context.Context) error {
	if m.operator.Pool() == nil {
		return NotConnectedError()
	}

	gormDB, err := m.open()
	if err != nil {
		return err
	}
	if err := schema.Migrate(gormDB); err != nil {
		return MigrateSchemaError(err)
	}
	return nil
}

func (m *manager) open() (*gorm.DB, error) {
	sqlDB := stdlib.OpenDBFromPool(m.operator.Pool())
	gormDB, err := gorm.Open(
		postgres.New(postgres.Config{Conn: sqlDB}),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)},
	)
	if err != nil {
		return nil, GORMConnectionError(err)
	}
	return gormDB, nil
}
