package iosync

import (
	"fmt"

	"github.com/gnames/gn"

	"github.com/brucewayne1212/withdean-football-fixtures/pkg/errcode"
)

// SecondaryWriteError marks a failed mirror write. The primary write
// already succeeded, so callers only ever see this in logs.
func SecondaryWriteError(taskID string, err error) error {
	msg := `Task saved, but mirroring to the file store failed

<em>Task:</em> %s`

	return &gn.Error{
		Code: errcode.SyncSecondaryWriteError,
		Msg:  msg,
		Vars: []any{taskID},
		Err:  fmt.Errorf("mirror task %s: %w", taskID, err),
	}
}

// DivergenceError marks a secondary record that disagrees with the
// primary and could not be repaired.
func DivergenceError(taskID string, err error) error {
	msg := `File store copy of a task diverged and could not be repaired

<em>Task:</em> %s`

	return &gn.Error{
		Code: errcode.SyncDivergenceError,
		Msg:  msg,
		Vars: []any{taskID},
		Err:  fmt.Errorf("repair task %s: %w", taskID, err),
	}
}
