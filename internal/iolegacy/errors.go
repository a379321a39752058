package iolegacy

import (
	"fmt"

	"github.com/gnames/gn"

	"github.com/brucewayne1212/withdean-football-fixtures/pkg/errcode"
)

// ReadError wraps a failed read of the file store.
func ReadError(path string, err error) error {
	msg := `Could not read the legacy task store

<em>Path:</em> %s

<em>How to fix:</em> check the legacy.dir setting and file permissions`

	return &gn.Error{
		Code: errcode.LegacyStoreReadError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("legacy store read %s: %w", path, err),
	}
}

// WriteError wraps a failed write to the file store.
func WriteError(path string, err error) error {
	msg := `Could not write the legacy task store

<em>Path:</em> %s

<em>How to fix:</em> check the legacy.dir setting and file permissions`

	return &gn.Error{
		Code: errcode.LegacyStoreWriteError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("legacy store write %s: %w", path, err),
	}
}
