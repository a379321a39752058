package iopg

import (
	"fmt"

	"github.com/gnames/gn"

	"github.com/brucewayne1212/withdean-football-fixtures/pkg/errcode"
)

// NotConnectedError is returned when the store is built over an
// operator that never connected.
func NotConnectedError() error {
	msg := `Database is not connected

<em>How to fix:</em> connect the database operator before opening the store`

	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Err:  fmt.Errorf("store opened before Connect"),
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

// TxConflictError is returned when a transaction keeps failing on
// serialization conflicts after the retry.
func TxConflictError(err error) error {
	msg := `A concurrent import changed the same fixtures

<em>How to fix:</em> re-run the import; only one import per organization can commit at a time`

	return &gn.Error{
		Code: errcode.ImportStorageConflictError,
		Msg:  msg,
		Err:  fmt.Errorf("serialization conflict: %w", err),
	}
}

// QueryError wraps a failed store query with the operation name.
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
