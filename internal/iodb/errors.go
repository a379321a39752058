package iodb

import (
	"fmt"

	"github.com/gnames/gn"

	"github.com/brucewayne1212/withdean-football-fixtures/pkg/errcode"
)

// ConnectionError is returned when the database connection fails.
func ConnectionError(
	host string, port int, database, user string, err error,
) error {
	msg := `Could not connect to the PostgreSQL database

<em>Possible causes:</em>
  1. PostgreSQL is not running
  2. Database configuration is incorrect

<em>How to fix:</em>
  1. Check if PostgreSQL is running:
     <em>pg_isready -h %s -p %d</em>

  2. Verify the database exists:
     <em>psql -h %s -U %s -l</em>

  3. Review connection settings:
     Host: %s
     Port: %d
     Database: %s
     User: %s`

	return &gn.Error{
		Code: errcode.DBConnectionError,
		Msg:  msg,
		Vars: []any{
			host, port,
			host, user,
			host, port, database, user,
		},
		Err: fmt.Errorf("failed to connect to %s:%d/%s: %w",
			host, port, database, err),
	}
}

// NotConnectedError is returned when an operation runs before Connect.
func NotConnectedError() error {
	msg := `Database is not connected

<em>How to fix:</em> call Connect before any database operation`

	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Err:  fmt.Errorf("database operation before Connect"),
	}
}

// TableCheckError is returned when checking database state fails.
func TableCheckError(err error) error {
	msg := `Could not verify database state`

	return &gn.Error{
		Code: errcode.DBTableCheckError,
		Msg:  msg,
		Err:  fmt.Errorf("failed to check database tables: %w", err),
	}
}

// QueryError wraps a failed maintenance query.
func QueryError(op string, err error) error {
	msg := `Database query failed

<em>Operation:</em> %s`

	return &gn.Error{
		Code: errcode.DBQueryError,
		Msg:  msg,
		Vars: []any{op},
		Err:  fmt.Errorf("%s: %w", op, err),
	}
}
