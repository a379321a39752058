package config

import (
	"fmt"

	"github.com/gnames/gn"

	"github.com/brucewayne1212/withdean-football-fixtures/pkg/errcode"
)

// invalidPortError creates an error for an out-of-range database port.
func invalidPortError(port int) error {
	msg := `Database port is out of range

<em>Port:</em> %d

<em>How to fix:</em>
  1. Set database.port in fixtures.yaml to a value between 1 and 65535
  2. Or set the WFF_DATABASE_PORT environment variable`

	return &gn.Error{
		Code: errcode.ConfigInvalidError,
		Msg:  msg,
		Vars: []any{port},
		Err:  fmt.Errorf("invalid database port: %d", port),
	}
}

// invalidSSLModeError creates an error for an unknown ssl_mode value.
func invalidSSLModeError(mode string) error {
	msg := `Unknown database SSL mode

<em>Mode:</em> %s

<em>Valid values:</em> disable, require, verify-ca, verify-full`

	return &gn.Error{
		Code: errcode.ConfigInvalidError,
		Msg:  msg,
		Vars: []any{mode},
		Err:  fmt.Errorf("invalid ssl_mode: %q", mode),
	}
}

// invalidThresholdError creates an error for matcher thresholds outside
// the unit interval.
func invalidThresholdError(name string, v float64) error {
	msg := `Matcher threshold is out of range

<em>Setting:</em> %s
<em>Value:</em> %v

<em>How to fix:</em> use a value inside the unit interval; the default
accept threshold is 0.82 with an ambiguity margin of 0.05.`

	return &gn.Error{
		Code: errcode.ConfigInvalidError,
		Msg:  msg,
		Vars: []any{name, v},
		Err:  fmt.Errorf("invalid %s: %v", name, v),
	}
}

// legacyDirMissingError creates an error for an enabled legacy store
// without a directory.
func legacyDirMissingError() error {
	msg := `Legacy task store is enabled but has no directory

<em>How to fix:</em>
  1. Set legacy.dir in fixtures.yaml
  2. Or disable the legacy store with legacy.enabled: false`

	return &gn.Error{
		Code: errcode.ConfigInvalidError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("legacy store enabled without legacy.dir"),
	}
}
