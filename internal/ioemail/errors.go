package ioemail

import (
	"fmt"

	"github.com/gnames/gn"

	"github.com/brucewayne1212/withdean-football-fixtures/pkg/errcode"
)

// TemplateError is returned when the organization's template cannot
// be read.
func TemplateError(orgID string, err error) error {
	msg := `Could not read the organization's email template

<em>Organization:</em> %s

<em>How to fix:</em> check the email_templates table; deleting the row falls back to the built-in template`

	return &gn.Error{
		Code: errcode.EmailTemplateError,
		Msg:  msg,
		Vars: []any{orgID},
		Err:  fmt.Errorf("load template for org %s: %w", orgID, err),
	}
}

// TaskContextError is returned when a task cannot be expanded into a
// full email context.
func TaskContextError(taskID, reason string) error {
	msg := `Cannot build an email for this task

<em>Task:</em> %s
<em>Reason:</em> %s

<em>How to fix:</em> run <em>fixtures tasks list</em> and pick a home_email task`

	return &gn.Error{
		Code: errcode.EmailTaskContextError,
		Msg:  msg,
		Vars: []any{taskID, reason},
		Err:  fmt.Errorf("email context for task %s: %s", taskID, reason),
	}
}
