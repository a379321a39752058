package parse

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/brucewayne1212/withdean-football-fixtures/pkg/errcode"
)

// FormatUnrecognizedError creates an error for input no parser claims.
// The import aborts before any writes when this is returned.
func FormatUnrecognizedError(sample string) error {
	msg := `No parser recognized the input

<em>Input starts with:</em> %q

<em>Supported formats:</em>
  - CSV / XLSX fixture sheets (club layout or named headers)
  - Pasted league-site fixture text

<em>How to fix:</em>
  1. Export the sheet as CSV or XLSX
  2. Or paste the fixture rows as text and pass --format text`

	return &gn.Error{
		Code: errcode.ParseFormatUnrecognizedError,
		Msg:  msg,
		Vars: []any{sample},
		Err:  fmt.Errorf("unrecognized input format"),
	}
}

// EmptyInputError creates an error for blank input.
func EmptyInputError() error {
	msg := `Input is empty

<em>How to fix:</em> check the uploaded file or pasted text`

	return &gn.Error{
		Code: errcode.ParseEmptyInputError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("empty input"),
	}
}

// TabularReadError creates an error for a CSV or XLSX file that could
// not be read.
func TabularReadError(kind string, err error) error {
	msg := `Could not read tabular input

<em>Format:</em> %s

<em>Possible causes:</em>
  - Truncated or corrupted file
  - Password-protected workbook`

	return &gn.Error{
		Code: errcode.ParseTabularError,
		Msg:  msg,
		Vars: []any{kind},
		Err:  fmt.Errorf("read %s: %w", kind, err),
	}
}
