package ioimport

import (
	"fmt"

	"github.com/gnames/gn"

	"github.com/brucewayne1212/withdean-football-fixtures/pkg/errcode"
	"github.com/brucewayne1212/withdean-football-fixtures/pkg/schema"
)

// RolledBackError wraps a storage failure that aborted an import.
func RolledBackError(err error) error {
	msg := `Import failed and was rolled back

<em>Cause:</em> %s

<em>How to fix:</em> nothing from this batch was written; fix the cause and re-run the import`

	return &gn.Error{
		Code: errcode.ImportAtomicityError,
		Msg:  msg,
		Vars: []any{err.Error()},
		Err:  err,
	}
}

// TaskNotFoundError is returned when a workflow command names an
// unknown task.
func TaskNotFoundError(id string) error {
	msg := `Task not found

<em>Task:</em> %s

<em>How to fix:</em> run <em>fixtures tasks list</em> to see current task ids`

	return &gn.Error{
		Code: errcode.TaskNotFoundError,
		Msg:  msg,
		Vars: []any{id},
		Err:  fmt.Errorf("task %s not found", id),
	}
}

// TaskTransitionError is returned for a backward or unknown status
// change.
func TaskTransitionError(id string, from, to schema.TaskStatus) error {
	msg := `Task status can only move forward

<em>Task:</em> %s
<em>Current:</em> %s
<em>Requested:</em> %s

<em>Order:</em> pending, waiting, in_progress, completed`

	return &gn.Error{
		Code: errcode.TaskTransitionError,
		Msg:  msg,
		Vars: []any{id, string(from), string(to)},
		Err: fmt.Errorf("task %s: transition %s -> %s not allowed",
			id, from, to),
	}
}
