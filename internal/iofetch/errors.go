package iofetch

import (
	"fmt"

	"github.com/gnames/gn"

	"github.com/brucewayne1212/withdean-football-fixtures/pkg/errcode"
)

// FetchURLError is returned when a fixtures page cannot be downloaded.
func FetchURLError(url string, err error) error {
	msg := `Could not download the fixtures page

<em>URL:</em> %s

<em>How to fix:</em>
  1. Check the URL opens in a browser
  2. Check your network connection
  3. Retry, or copy the page text and import it with <em>--text</em>`

	return &gn.Error{
		Code: errcode.FetchURLError,
		Msg:  msg,
		Vars: []any{url},
		Err:  fmt.Errorf("failed to fetch %s: %w", url, err),
	}
}

// FetchStatusError is returned when the server answers with an error
// status.
func FetchStatusError(url string, status int) error {
	msg := `The fixtures page returned HTTP %d

<em>URL:</em> %s

<em>How to fix:</em> check the URL is current; league sites move
fixture pages between seasons`

	return &gn.Error{
		Code: errcode.FetchStatusError,
		Msg:  msg,
		Vars: []any{status, url},
		Err:  fmt.Errorf("fetch %s: http status %d", url, status),
	}
}
