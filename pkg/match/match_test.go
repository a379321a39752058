package match_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brucewayne1212/withdean-football-fixtures/pkg/config"
	"github.com/brucewayne1212/withdean-football-fixtures/pkg/match"
	"github.com/brucewayne1212/withdean-football-fixtures/pkg/normalize"
)

func newMatcher() *match.Matcher {
	return match.New(config.Defaults().Match)
}

func TestSimilarity(t *testing.T) {
	tests := []struct {
		msg  string
		a, b string
		min  float64
		max  float64
	}{
		{"identical", "withdean youth u12 hawks", "withdean youth u12 hawks", 1.0, 1.0},
		{"suffix noise", "rottingdean fc", "rottingdean", 0.7, 1.0},
		{"different age group", "withdean youth u12 hawks", "withdean youth u14 hawks", 0.0, 0.82},
		{"unrelated", "saltdean tigers", "hove rangers", 0.0, 0.4},
		{"empty", "", "anything", 0.0, 0.0},
	}
	for _, tt := range tests {
		s := match.Similarity(normalize.Key(tt.a), normalize.Key(tt.b))
		assert.GreaterOrEqual(t, s, tt.min, tt.msg)
		assert.LessOrEqual(t, s, tt.max, tt.msg)
	}
}

func TestMatchExact(t *testing.T) {
	m := newMatcher()
	cands := []match.Candidate{
		{ID: "1", Name: "Rottingdean FC U12"},
		{ID: "2", Name: "Saltdean United U12"},
	}
	res := m.Match("ROTTINGDEAN fc  U12", cands)
	require.NotNil(t, res.Matched)
	assert.True(t, res.Exact)
	assert.Equal(t, "1", res.Matched.ID)
	assert.Equal(t, 1.0, res.Score)
}

func TestMatchFuzzyAccept(t *testing.T) {
	m := newMatcher()
	cands := []match.Candidate{
		{ID: "1", Name: "Rottingdean FC U12 Blues"},
		{ID: "2", Name: "Hove Park Colts"},
	}
	res := m.Match("Rottingdean U12 Blues", cands)
	require.NotNil(t, res.Matched)
	assert.False(t, res.Exact)
	assert.Equal(t, "1", res.Matched.ID)
	assert.GreaterOrEqual(t, res.Score, 0.82)
}

func TestMatchBelowThreshold(t *testing.T) {
	m := newMatcher()
	cands := []match.Candidate{
		{ID: "1", Name: "Hove Park Colts"},
	}
	res := m.Match("Saltdean Tigers U13", cands)
	assert.Nil(t, res.Matched)
	assert.Empty(t, res.NearMisses)
}

func TestMatchAmbiguous(t *testing.T) {
	m := newMatcher()
	// Two candidates differing only in a detail the query omits. Both
	// score identically, so the matcher must refuse to pick one.
	cands := []match.Candidate{
		{ID: "1", Name: "Withdean Youth Hawks Red"},
		{ID: "2", Name: "Withdean Youth Hawks Blue"},
	}
	res := m.Match("Withdean Youth Hawks", cands)
	assert.Nil(t, res.Matched)
	assert.NotEmpty(t, res.NearMisses)
	assert.Len(t, res.NearMisses, 2)
}

func TestMatchEmptyName(t *testing.T) {
	m := newMatcher()
	res := m.Match("   ", []match.Candidate{{ID: "1", Name: "X"}})
	assert.Nil(t, res.Matched)
}

func TestMatchNoCandidates(t *testing.T) {
	m := newMatcher()
	res := m.Match("Saltdean Tigers", nil)
	assert.Nil(t, res.Matched)
	assert.False(t, res.Exact)
}
