package parse

import (
	"regexp"
	"strings"
)

// The free-text parser handles pasted or scraped league-site fixture
// data. It tries, in order: single-line FA rows, "key: value" lines,
// pipe-table rows, and finally free-form "X vs Y" extraction. All field
// values stay verbatim; dates are text until the normalizer sees them.

var (
	faLineRe    = regexp.MustCompile(`(\d{1,2}/\d{1,2}/\d{2,4})\s+(\d{1,2}:\d{2})`)
	tagRe       = regexp.MustCompile(`(?s)<[^>]*>`)
	compWordRe  = regexp.MustCompile(`(?i)^(under|group|division|cup|league|u\d+)`)
	vsAnywhere  = regexp.MustCompile(`(?i)(^|\s)vs?(\s|$)`)
	keyValLines = map[string]string{
		"date":           FieldKickoff,
		"kick-off time":  FieldKickoff,
		"kickoff time":   FieldKickoff,
		"ko":             FieldKickoff,
		"time":           FieldKickoff,
		"opposition":     FieldOpposition,
		"home manager":   FieldHomeManager,
		"fixtures sec":   FieldFixturesSec,
		"home/away":      FieldHomeAway,
		"pitch":          FieldPitch,
		"venue":          FieldPitch,
		"format":         FieldMatchFormat,
		"each way":       FieldEachWay,
		"fixture length": FieldFixtureLength,
		"referee":        FieldReferee,
		"manager mobile": FieldManagerMobile,
		"mobile":         FieldManagerMobile,
		"contact 1":      FieldContact1,
		"contact 2":      FieldContact2,
		"contact 3":      FieldContact3,
		"instructions":   FieldInstructions,
		"competition":    FieldLeague,
		"league":         FieldLeague,
	}
)

// parseText parses pasted or scraped fixture text into raw rows.
func parseText(text string, opts Options) []RawRow {
	text = StripHTML(text)

	var rows []RawRow
	for _, line := range strings.Split(text, "\n") {
		line = cleanLine(line)
		if line == "" {
			continue
		}
		if row, ok := parseFALine(line, opts.ManagedTeams); ok {
			row.Index = len(rows)
			rows = append(rows, row)
		}
	}
	if len(rows) > 0 {
		return rows
	}

	if row, ok := parseKeyValueBlock(text, opts.ManagedTeams); ok {
		return []RawRow{row}
	}
	if row, ok := parseFreeForm(cleanLine(text), opts.ManagedTeams); ok {
		return []RawRow{row}
	}
	return nil
}

// StripHTML reduces scraped markup to its text content. Table cell
// boundaries become spaces so row text stays splittable.
func StripHTML(text string) string {
	if !strings.Contains(text, "<") {
		return text
	}
	text = strings.ReplaceAll(text, "</tr>", "\n")
	text = strings.ReplaceAll(text, "</TR>", "\n")
	return tagRe.ReplaceAllString(text, " ")
}

// cleanLine normalizes separators: tabs to spaces, VS variants to
// "vs", collapsed whitespace.
func cleanLine(s string) string {
	s = strings.ReplaceAll(s, "\t", " ")
	s = regexp.MustCompile(`(?i)\s+vs?\s+`).ReplaceAllString(s, " vs ")
	return strings.TrimSpace(multiSpaces.ReplaceAllString(s, " "))
}

// parseFALine handles the FA results-page row layout:
//
//	28/09/25 10:00 Hassocks Juniors U9 Robins vs Withdean Youth U9 Red  Hassocks Rec  Under 9 Group B
//
// One of the two sides must be a managed team.
func parseFALine(line string, managed []string) (RawRow, bool) {
	parts := vsSplitRe.Split(line, 2)
	if len(parts) != 2 {
		return RawRow{}, false
	}
	dt := faLineRe.FindStringSubmatchIndex(parts[0])
	if dt == nil {
		return RawRow{}, false
	}
	kickoff := strings.TrimSpace(parts[0][dt[0]:dt[1]])
	team1 := strings.TrimSpace(parts[0][dt[1]:])

	team2, venue, competition := splitOppositionTail(parts[1])
	if team1 == "" || team2 == "" {
		return RawRow{}, false
	}

	ours1 := isManagedTeam(team1, managed)
	ours2 := isManagedTeam(team2, managed)
	if !ours1 && !ours2 {
		return RawRow{}, false
	}

	var ours, opposition string
	if ours1 {
		ours, opposition = team1, team2
	} else {
		ours, opposition = team2, team1
	}

	// FA pages list home side first; venue words matching the
	// opposition also mean away.
	side := "Home"
	if !ours1 || venueNamesTeam(venue, opposition) {
		side = "Away"
	}

	fields := map[string]string{
		FieldTeam:       ours,
		FieldOpposition: opposition,
		FieldHomeAway:   side,
		FieldKickoff:    kickoff,
	}
	if venue != "" && side == "Home" {
		fields[FieldPitch] = venue
	}
	if competition != "" {
		fields[FieldLeague] = competition
	}
	return RawRow{Format: FormatText, Fields: fields}, true
}

// splitOppositionTail separates "team2 venue competition" in an FA row.
// The competition usually starts with words like Under, Group, Cup or
// a U-age marker; the age marker inside the team name itself ends the
// team tokens.
func splitOppositionTail(tail string) (team, venue, competition string) {
	words := strings.Fields(strings.TrimSpace(tail))
	if len(words) == 0 {
		return "", "", ""
	}

	// Team name runs through its age/colour suffix (".. U9 Red"), or
	// the first three words as a fallback.
	teamEnd := 0
	for i, w := range words {
		if regexp.MustCompile(`(?i)^u\d+$`).MatchString(w) {
			teamEnd = i + 1
			if i+1 < len(words) && !compWordRe.MatchString(words[i+1]) {
				teamEnd = i + 2
			}
			break
		}
	}
	if teamEnd == 0 {
		teamEnd = min(3, len(words))
	}
	team = strings.Join(words[:teamEnd], " ")
	rest := words[teamEnd:]

	compStart := len(rest)
	for i, w := range rest {
		if compWordRe.MatchString(w) {
			compStart = i
			break
		}
	}
	venue = strings.Join(rest[:compStart], " ")
	competition = strings.Join(rest[compStart:], " ")
	return team, venue, competition
}

// parseKeyValueBlock handles "Opposition: Rovers U10" lines and
// "Opposition | Rovers U10" table rows.
func parseKeyValueBlock(text string, managed []string) (RawRow, bool) {
	fields := make(map[string]string)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		var key, value string
		if k, v, ok := strings.Cut(line, ":"); ok && !strings.Contains(k, "|") {
			key, value = k, v
		} else if cells := strings.Split(line, "|"); len(cells) >= 2 {
			key, value = cells[0], cells[1]
		} else if vsAnywhere.MatchString(line) {
			if t1, t2, ok := splitVersus(line); ok {
				fields[FieldTeam], fields[FieldOpposition] =
					orientVersus(t1, t2, managed)
			}
			continue
		} else {
			continue
		}

		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		for marker, field := range keyValLines {
			if strings.Contains(key, marker) {
				// Date and time lines merge into one kickoff value.
				if field == FieldKickoff && fields[FieldKickoff] != "" {
					fields[FieldKickoff] += " " + value
				} else if fields[field] == "" {
					fields[field] = value
				}
				break
			}
		}
	}
	if len(fields) == 0 {
		return RawRow{}, false
	}
	return RawRow{Format: FormatText, Fields: fields}, true
}

// parseFreeForm pulls a fixture out of unstructured text: a date/time
// if present and the two sides of a "vs".
func parseFreeForm(text string, managed []string) (RawRow, bool) {
	fields := make(map[string]string)
	if m := faLineRe.FindString(text); m != "" {
		fields[FieldKickoff] = m
	}
	if t1, t2, ok := splitVersus(text); ok {
		fields[FieldTeam], fields[FieldOpposition] =
			orientVersus(t1, t2, managed)
		// Pasted league data describes the opposition's page more
		// often than not; treated as away until corrected.
		fields[FieldHomeAway] = "Away"
	}
	if len(fields) == 0 {
		return RawRow{}, false
	}
	return RawRow{Format: FormatText, Fields: fields}, true
}

// orientVersus puts the managed side first when it can tell which side
// that is.
func orientVersus(t1, t2 string, managed []string) (team, opposition string) {
	if isManagedTeam(t2, managed) && !isManagedTeam(t1, managed) {
		return t2, t1
	}
	return t1, t2
}

func splitVersus(text string) (string, string, bool) {
	parts := vsSplitRe.Split(text, 2)
	if len(parts) != 2 {
		return "", "", false
	}
	t1 := strings.TrimSpace(faLineRe.ReplaceAllString(parts[0], ""))
	t2 := strings.TrimSpace(parts[1])
	// The right side may run on into venue text; keep its team-like
	// prefix.
	if words := strings.Fields(t2); len(words) > 5 {
		t2 = strings.Join(words[:5], " ")
	}
	if t1 == "" || t2 == "" {
		return "", "", false
	}
	return t1, t2, true
}

// isManagedTeam reports whether a name matches one of the club's own
// teams, tolerating partial containment either way.
func isManagedTeam(name string, managed []string) bool {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return false
	}
	for _, m := range managed {
		m = strings.ToLower(strings.TrimSpace(m))
		if m == "" {
			continue
		}
		if n == m || strings.Contains(n, m) || strings.Contains(m, n) {
			return true
		}
	}
	return false
}

func venueNamesTeam(venue, team string) bool {
	v := strings.ToLower(venue)
	for _, w := range strings.Fields(strings.ToLower(team)) {
		if len(w) > 3 && strings.Contains(v, w) {
			return true
		}
	}
	return false
}
