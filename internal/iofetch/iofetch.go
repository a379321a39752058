// Package iofetch downloads league fixture pages over HTTP and reduces
// them to plain text suitable for the free-form text parser. It is an
// impure package.
package iofetch

import (
	"context"
	"html"
	"regexp"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/brucewayne1212/withdean-football-fixtures/pkg/fixtures"
)

var (
	// Tags that end a visual line in the original page.
	lineBreakRe = regexp.MustCompile(`(?i)<(?:br\s*/?|/p|/tr|/li|/div|/h[1-6]|/table)>`)
	// Cell boundaries collapse to a space so row text stays on one line.
	cellBreakRe  = regexp.MustCompile(`(?i)</t[dh]>`)
	scriptRe     = regexp.MustCompile(`(?is)<(script|style)[^>]*>.*?</(script|style)>`)
	tagRe        = regexp.MustCompile(`<[^>]*>`)
	blankLinesRe = regexp.MustCompile(`\n{3,}`)
)

type fetcher struct {
	client *resty.Client
}

// New returns a Fetcher that downloads pages with the given timeout per
// request.
func New(timeout time.Duration) fixtures.Fetcher {
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("User-Agent", "withdean-fixtures/"+fixtures.Version)
	return &fetcher{client: client}
}

// Fetch downloads the page at url and returns its visible text. HTML
// markup is tolerated but not required; plain-text responses pass
// through unchanged.
func (f *fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	resp, err := f.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, FetchURLError(url, err)
	}
	if resp.IsError() {
		return nil, FetchStatusError(url, resp.StatusCode())
	}

	body := string(resp.Body())
	if !strings.Contains(body, "<") {
		return []byte(body), nil
	}
	return []byte(stripHTML(body)), nil
}

// stripHTML converts an HTML document to plain text, keeping one line
// per visual row so the text parser sees the same shape a copy-paste
// from the page would produce.
func stripHTML(doc string) string {
	doc = scriptRe.ReplaceAllString(doc, "")
	doc = lineBreakRe.ReplaceAllString(doc, "\n")
	doc = cellBreakRe.ReplaceAllString(doc, " ")
	doc = tagRe.ReplaceAllString(doc, "")
	doc = html.UnescapeString(doc)

	lines := strings.Split(doc, "\n")
	for i, line := range lines {
		lines[i] = strings.Join(strings.Fields(line), " ")
	}
	doc = strings.Join(lines, "\n")
	doc = blankLinesRe.ReplaceAllString(doc, "\n\n")
	return strings.TrimSpace(doc)
}
