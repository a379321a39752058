package ioschema

import (
	"fmt"

	"github.com/gnames/gn"

	"github.com/brucewayne1212/withdean-football-fixtures/pkg/errcode"
)

// NotConnectedError is returned when schema operations run before the
// operator connected.
func NotConnectedError() error {
	msg := `Database is not connected

<em>How to fix:</em> connect the database operator before managing the schema`

	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Err:  fmt.Errorf("schema operation before Connect"),
	}
}

// GORMConnectionError is returned when GORM cannot open over the pool.
func GORMConnectionError(err error) error {
	msg := `Could not initialize the ORM over the database connection`

	return &gn.Error{
		Code: errcode.SchemaGORMConnectionError,
		Msg:  msg,
		Err:  fmt.Errorf("gorm open: %w", err),
	}
}

// CreateSchemaError is returned when schema creation fails.
func CreateSchemaError(err error) error {
	msg := `Could not create the database schema

<em>How to fix:</em>
  1. Verify the database user can create tables
  2. Re-run <em>fixtures schema create</em>`

	return &gn.Error{
		Code: errcode.SchemaCreateError,
		Msg:  msg,
		Err:  fmt.Errorf("schema create: %w", err),
	}
}

// MigrateSchemaError is returned when schema migration fails.
func MigrateSchemaError(err error) error {
	msg := `Could not migrate the database schema

<em>How to fix:</em>
  1. Check the migration output for the failing table
  2. Re-run <em>fixtures schema migrate</em>`

	return &gn.Error{
		Code: errcode.SchemaMigrateError,
		Msg:  msg,
		Err:  fmt.Errorf("schema migrate: %w", err),
	}
}
