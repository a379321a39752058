package parse

import (
	"strings"
	"unicode"
)

// headerAliases maps folded column headings onto canonical field names.
// Matching is case-insensitive and ignores punctuation, so "KO Time",
// "Kick Off" and "KO&Finish time" all land on FieldKickoff.
var headerAliases = map[string]string{
	"team":              FieldTeam,
	"ourteam":           FieldTeam,
	"hometeam":          FieldTeam,
	"league":            FieldLeague,
	"leaguedivision":    FieldLeague,
	"division":          FieldLeague,
	"competition":       FieldLeague,
	"homemanager":       FieldHomeManager,
	"manager":           FieldHomeManager,
	"fixturessec":       FieldFixturesSec,
	"fixturessecretary": FieldFixturesSec,
	"opposition":        FieldOpposition,
	"opponent":          FieldOpposition,
	"awayteam":          FieldOpposition,
	"homeaway":          FieldHomeAway,
	"venue":             FieldPitch,
	"pitch":             FieldPitch,
	"ground":            FieldPitch,
	"location":          FieldPitch,
	"kickoff":           FieldKickoff,
	"ko":                FieldKickoff,
	"kotime":            FieldKickoff,
	"kofinishtime":      FieldKickoff,
	"time":              FieldKickoff,
	"date":              FieldKickoff,
	"datetime":          FieldKickoff,
	"instructions":      FieldInstructions,
	"furtherinstructions":                      FieldInstructions,
	"furtherinstructionsforwithdeanmanagement": FieldInstructions,
	"notes":              FieldInstructions,
	"format":             FieldMatchFormat,
	"matchformat":        FieldMatchFormat,
	"eachway":            FieldEachWay,
	"fixturelength":      FieldFixtureLength,
	"length":             FieldFixtureLength,
	"referee":            FieldReferee,
	"homemanagermobile":  FieldManagerMobile,
	"managermobile":      FieldManagerMobile,
	"mobile":             FieldManagerMobile,
	"hometeamcontact1":   FieldContact1,
	"contact1":           FieldContact1,
	"hometeamcontact2":   FieldContact2,
	"contact2":           FieldContact2,
	"hometeamcontact3":   FieldContact3,
	"contact3":           FieldContact3,
}

// clubSheetColumns is the positional layout of the club's master sheet,
// which arrives without a header row.
var clubSheetColumns = []string{
	FieldTeam,
	FieldLeague,
	FieldHomeManager,
	FieldFixturesSec,
	FieldOpposition,
	FieldHomeAway,
	FieldPitch,
	FieldKickoff,
	FieldInstructions,
	FieldMatchFormat,
	FieldEachWay,
	FieldFixtureLength,
	FieldReferee,
	FieldManagerMobile,
	FieldContact1,
	FieldContact2,
	FieldContact3,
}

// foldHeader reduces a column heading to letters and digits for alias
// lookup.
func foldHeader(h string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(h)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// mapHeaders resolves a header row to canonical field names by column
// index. Unknown headings are dropped.
func mapHeaders(hdr []string) map[int]string {
	m := make(map[int]string, len(hdr))
	for i, h := range hdr {
		if canon, ok := headerAliases[foldHeader(h)]; ok {
			if _, taken := fieldTaken(m, canon); !taken {
				m[i] = canon
			}
		}
	}
	return m
}

func fieldTaken(m map[int]string, field string) (int, bool) {
	for i, f := range m {
		if f == field {
			return i, true
		}
	}
	return 0, false
}

// headerAliasCount counts how many cells of a row are recognizable
// column headings.
func headerAliasCount(cells []string) int {
	n := 0
	for _, c := range cells {
		if _, ok := headerAliases[foldHeader(c)]; ok {
			n++
		}
	}
	return n
}
