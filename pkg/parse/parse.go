// Package parse turns raw fixture inputs (spreadsheets, pasted league
// text) into loosely typed rows. Parsers pass field text through
// unchanged; date and time interpretation belongs to pkg/normalize, so a
// row can always answer "what did the source actually say".
package parse

import (
	"bytes"
	"regexp"
	"strings"
)

// Format tags the source a RawRow came from.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatText Format = "text"

	// FormatAuto asks Parse to detect the format itself.
	FormatAuto Format = "auto"
)

// Canonical field names shared by all parsers. The alias tables map
// source column headings onto these.
const (
	FieldTeam          = "team"
	FieldLeague        = "league"
	FieldHomeManager   = "home_manager"
	FieldFixturesSec   = "fixtures_sec"
	FieldOpposition    = "opposition"
	FieldHomeAway      = "home_away"
	FieldPitch         = "pitch"
	FieldKickoff       = "kickoff"
	FieldInstructions  = "instructions"
	FieldMatchFormat   = "format"
	FieldEachWay       = "each_way"
	FieldFixtureLength = "fixture_length"
	FieldReferee       = "referee"
	FieldManagerMobile = "manager_mobile"
	FieldContact1      = "contact_1"
	FieldContact2      = "contact_2"
	FieldContact3      = "contact_3"
)

// RawRow is one loosely typed record produced by a parser. Values are
// verbatim source text keyed by canonical field name. Rows are
// ephemeral; the normalizer consumes them and they are discarded.
type RawRow struct {
	// Index is the 0-based position of the row in its source.
	Index int

	// Format is the source format that produced the row.
	Format Format

	// Fields maps canonical field names to raw text.
	Fields map[string]string
}

// Get returns the trimmed value of a field, or "" when absent.
func (r RawRow) Get(field string) string {
	return strings.TrimSpace(r.Fields[field])
}

// Options tunes parsing behavior.
type Options struct {
	// ManagedTeams lists the club's own team names; the free-text
	// parser uses them to decide which side of a "vs" is ours.
	ManagedTeams []string
}

var (
	xlsxMagic   = []byte{0x50, 0x4b, 0x03, 0x04}
	dateTimeRe  = regexp.MustCompile(`\d{1,2}/\d{1,2}/\d{2,4}\s+\d{1,2}:\d{2}`)
	vsSplitRe   = regexp.MustCompile(`(?i)\s+vs?\s+`)
	htmlMarkRe  = regexp.MustCompile(`(?i)<(table|tr|td|div|html)[\s>]`)
	pipeRowRe   = regexp.MustCompile(`\|`)
	keyValRe    = regexp.MustCompile(`(?i)^\s*[a-z /&-]+:\s*\S`)
	multiSpaces = regexp.MustCompile(`\s+`)
)

// DetectFormat inspects structural signals of the input and returns the
// format a parser claims with confidence. It returns a
// FormatUnrecognized error when no parser does.
func DetectFormat(data []byte) (Format, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return "", EmptyInputError()
	}
	if bytes.HasPrefix(data, xlsxMagic) {
		return FormatXLSX, nil
	}

	text := string(data)
	if looksDelimited(text) {
		return FormatCSV, nil
	}
	if looksLikeFixtureText(text) {
		return FormatText, nil
	}
	return "", FormatUnrecognizedError(sample(text))
}

// Parse reads the input into raw rows. With FormatAuto the format is
// detected first.
func Parse(data []byte, format Format, opts Options) ([]RawRow, error) {
	var err error
	if format == FormatAuto || format == "" {
		format, err = DetectFormat(data)
		if err != nil {
			return nil, err
		}
	}

	switch format {
	case FormatCSV:
		return parseCSV(data)
	case FormatXLSX:
		return parseXLSX(data)
	case FormatText:
		return parseText(string(data), opts), nil
	default:
		return nil, FormatUnrecognizedError(string(format))
	}
}

// looksDelimited reports whether the first non-blank line splits into
// several cells on a common delimiter, or names known columns.
func looksDelimited(text string) bool {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		commas := strings.Count(line, ",")
		semis := strings.Count(line, ";")
		if commas >= 2 || semis >= 2 {
			return true
		}
		if headerAliasCount(strings.Split(line, ",")) >= 2 {
			return true
		}
		return false
	}
	return false
}

// looksLikeFixtureText checks for the markers of scraped or pasted
// league-site fixture text.
func looksLikeFixtureText(text string) bool {
	if htmlMarkRe.MatchString(text) {
		return true
	}
	if vsSplitRe.MatchString(text) {
		return true
	}
	if dateTimeRe.MatchString(text) {
		return true
	}
	for _, line := range strings.Split(text, "\n") {
		if keyValRe.MatchString(line) || pipeRowRe.MatchString(line) {
			return true
		}
	}
	return false
}

func sample(text string) string {
	text = strings.TrimSpace(text)
	if len(text) > 80 {
		text = text[:80]
	}
	return text
}
