// Package normalize converts raw fixture rows into canonical values:
// parsed kickoff timestamps, trimmed display text, and folded keys for
// comparison. Normalization only shapes transient rows; it never
// mutates persisted entities.
package normalize

import (
	"regexp"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/cases"

	"github.com/brucewayne1212/withdean-football-fixtures/pkg/parse"
	"github.com/brucewayne1212/withdean-football-fixtures/pkg/schema"
)

// FixtureRow is the canonical shape of one incoming fixture. Immutable
// once produced. Kickoff stays nil when no date pattern matched; the
// original text survives in KickoffText either way.
type FixtureRow struct {
	Index         int
	Team          string
	Opposition    string
	Side          schema.HomeAway
	Pitch         string
	Kickoff       *time.Time
	KickoffText   string
	League        string
	Instructions  string
	MatchFormat   string
	EachWay       string
	FixtureLength string
	Referee       string
	HomeManager   string
	FixturesSec   string
	ManagerMobile string
	Contact1      string
	Contact2      string
	Contact3      string
}

var folder = cases.Fold()

// Fold lowercases for comparison (Unicode case folding), trims, and
// collapses runs of whitespace. Display text keeps its original casing;
// Fold output is for comparisons only.
func Fold(s string) string {
	s = folder.String(strings.TrimSpace(s))
	return collapseRe.ReplaceAllString(s, " ")
}

// Key reduces a name to its identity form: folded, punctuation
// stripped, single-spaced. Team and pitch identity inside an
// organization is equality of keys.
func Key(s string) string {
	var b strings.Builder
	for _, r := range Fold(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune(' ')
		}
	}
	return strings.TrimSpace(collapseRe.ReplaceAllString(b.String(), " "))
}

var (
	collapseRe = regexp.MustCompile(`\s+`)
	ordinalRe  = regexp.MustCompile(`(\d+)(st|nd|rd|th)\b`)
	timeRe     = regexp.MustCompile(`(?i)\b(\d{1,2})(?:[:.](\d{2}))?\s*(am|pm)\b|\b(\d{1,2}):(\d{2})\b`)
	weekdays   = []string{
		"monday", "tuesday", "wednesday", "thursday", "friday",
		"saturday", "sunday", "mon", "tue", "tues", "wed", "thu",
		"thur", "thurs", "fri", "sat", "sun",
	}
)

// datetime layouts tried before splitting date and time apart.
var datetimeLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"02/01/2006 15:04",
	"02/01/06 15:04",
	"02-01-2006 15:04",
}

// date-only layouts, day-first per UK sources.
var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"02/01/06",
	"02-01-2006",
	"2 January 2006",
	"2 Jan 2006",
}

// year-less layouts completed with the season year.
var yearlessLayouts = []string{
	"2 January",
	"2 Jan",
	"02/01",
	"2/1",
}

// Kickoff parses a raw kickoff string. It attempts ISO-like patterns,
// day-first UK patterns, then free-text forms ("Sat 14 Sep 3pm",
// "14/09"), completing year-less dates with seasonYear. The second
// result is false when no pattern matched; the caller keeps the text
// and continues.
func Kickoff(text string, seasonYear int) (time.Time, bool) {
	s := strings.TrimSpace(text)
	if s == "" {
		return time.Time{}, false
	}
	s = collapseRe.ReplaceAllString(s, " ")

	for _, layout := range datetimeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, true
		}
	}

	// Split a time-of-day out of the text, parse the rest as a date.
	hour, minute, timed, rest := extractTime(s)
	rest = stripWeekday(rest)
	rest = ordinalRe.ReplaceAllString(rest, "$1")
	rest = strings.Trim(strings.TrimSpace(rest), ",-")
	rest = strings.TrimSpace(rest)

	var day time.Time
	found := false
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, rest, time.UTC); err == nil {
			day, found = t, true
			break
		}
	}
	if !found {
		for _, layout := range yearlessLayouts {
			if t, err := time.ParseInLocation(layout, rest, time.UTC); err == nil {
				day = time.Date(seasonYear, t.Month(), t.Day(),
					0, 0, 0, 0, time.UTC)
				found = true
				break
			}
		}
	}
	if !found {
		return time.Time{}, false
	}
	if timed {
		day = time.Date(day.Year(), day.Month(), day.Day(),
			hour, minute, 0, 0, time.UTC)
	}
	return day, true
}

// extractTime pulls the first time-of-day token out of s and returns
// the remainder. Handles 15:04, 3pm, 3.30pm.
func extractTime(s string) (hour, minute int, ok bool, rest string) {
	m := timeRe.FindStringSubmatchIndex(s)
	if m == nil {
		return 0, 0, false, s
	}
	sub := timeRe.FindStringSubmatch(s)
	if sub[4] != "" { // 24-hour "15:04"
		hour = atoi(sub[4])
		minute = atoi(sub[5])
	} else {
		hour = atoi(sub[1])
		if sub[2] != "" {
			minute = atoi(sub[2])
		}
		if strings.EqualFold(sub[3], "pm") && hour < 12 {
			hour += 12
		}
		if strings.EqualFold(sub[3], "am") && hour == 12 {
			hour = 0
		}
	}
	rest = strings.TrimSpace(s[:m[0]] + " " + s[m[1]:])
	return hour, minute, true, rest
}

func stripWeekday(s string) string {
	lower := strings.ToLower(s)
	for _, d := range weekdays {
		if strings.HasPrefix(lower, d) {
			tail := s[len(d):]
			if tail == "" || tail[0] == ' ' || tail[0] == ',' {
				return strings.TrimLeft(tail, " ,")
			}
		}
	}
	return s
}

func atoi(s string) int {
	n := 0
	for _, r := range s {
		n = n*10 + int(r-'0')
	}
	return n
}

// Side maps raw home/away text onto the canonical flag. "A" and "away"
// mean away; anything else (including blank) is treated as home, which
// matches how club sheets leave the column empty for home rounds.
func Side(raw string) schema.HomeAway {
	switch Fold(raw) {
	case "a", "away":
		return schema.Away
	default:
		return schema.Home
	}
}

// Row converts a parsed raw row into its canonical form. Text fields
// are trimmed with original casing retained for display; kickoff text
// is interpreted with the pattern ladder.
func Row(raw parse.RawRow, seasonYear int) FixtureRow {
	row := FixtureRow{
		Index:         raw.Index,
		Team:          clean(raw.Get(parse.FieldTeam)),
		Opposition:    clean(raw.Get(parse.FieldOpposition)),
		Side:          Side(raw.Get(parse.FieldHomeAway)),
		Pitch:         clean(raw.Get(parse.FieldPitch)),
		KickoffText:   clean(raw.Get(parse.FieldKickoff)),
		League:        clean(raw.Get(parse.FieldLeague)),
		Instructions:  clean(raw.Get(parse.FieldInstructions)),
		MatchFormat:   clean(raw.Get(parse.FieldMatchFormat)),
		EachWay:       clean(raw.Get(parse.FieldEachWay)),
		FixtureLength: clean(raw.Get(parse.FieldFixtureLength)),
		Referee:       clean(raw.Get(parse.FieldReferee)),
		HomeManager:   clean(raw.Get(parse.FieldHomeManager)),
		FixturesSec:   clean(raw.Get(parse.FieldFixturesSec)),
		ManagerMobile: clean(raw.Get(parse.FieldManagerMobile)),
		Contact1:      clean(raw.Get(parse.FieldContact1)),
		Contact2:      clean(raw.Get(parse.FieldContact2)),
		Contact3:      clean(raw.Get(parse.FieldContact3)),
	}
	if t, ok := Kickoff(row.KickoffText, seasonYear); ok {
		row.Kickoff = &t
	}
	return row
}

// clean trims and collapses whitespace but keeps casing. Spreadsheet
// artifacts like "nan" and "none" become empty.
func clean(s string) string {
	s = strings.TrimSpace(collapseRe.ReplaceAllString(s, " "))
	switch strings.ToLower(s) {
	case "nan", "none", "null":
		return ""
	}
	return s
}
