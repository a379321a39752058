// Package match scores name similarity for the entity resolver.
//
// The policy is deliberately conservative: exact normalized-key matches
// win outright; fuzzy matches must clear an acceptance threshold AND
// beat the runner-up by an ambiguity margin, otherwise the resolver
// creates a new entity and flags the near misses for manual review.
// Merging two distinct teams loses data that is hard to recover; an
// extra near-duplicate entity is a cheap later fix via an alias.
package match

import (
	"sort"
	"strings"

	"github.com/agext/levenshtein"

	"github.com/brucewayne1212/withdean-football-fixtures/pkg/config"
	"github.com/brucewayne1212/withdean-football-fixtures/pkg/normalize"
)

// Candidate is a directory entry offered to the matcher.
type Candidate struct {
	ID   string
	Name string
}

// Result is the outcome of matching one name against a directory.
type Result struct {
	// Matched is the accepted candidate, nil when the name should
	// become a new entity.
	Matched *Candidate

	// Exact is true when the normalized keys were equal.
	Exact bool

	// Score is the winning similarity score (1.0 for exact).
	Score float64

	// NearMisses lists candidates that scored above the threshold but
	// were rejected for ambiguity, best first. Advisory only.
	NearMisses []Scored
}

// Scored pairs a candidate with its similarity score.
type Scored struct {
	Candidate Candidate
	Score     float64
}

// Matcher applies the configured acceptance policy.
type Matcher struct {
	cfg config.MatchConfig
}

// New creates a Matcher with the given policy.
func New(cfg config.MatchConfig) *Matcher {
	return &Matcher{cfg: cfg}
}

// Match resolves name against candidates. It never mutates anything;
// the caller decides what a nil Matched means (usually: create).
func (m *Matcher) Match(name string, candidates []Candidate) Result {
	key := normalize.Key(name)
	if key == "" {
		return Result{}
	}

	var scored []Scored
	for _, c := range candidates {
		ckey := normalize.Key(c.Name)
		if ckey == key {
			c := c
			return Result{Matched: &c, Exact: true, Score: 1.0}
		}
		if s := Similarity(key, ckey); s > 0 {
			scored = append(scored, Scored{Candidate: c, Score: s})
		}
	}
	if len(scored) == 0 {
		return Result{}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	best := scored[0]
	if best.Score < m.cfg.AcceptThreshold {
		return Result{}
	}
	if len(scored) > 1 &&
		best.Score-scored[1].Score < m.cfg.AmbiguityMargin {
		// Two near-equal candidates: refuse to guess.
		return Result{NearMisses: above(scored, m.cfg.AcceptThreshold)}
	}
	return Result{Matched: &best.Candidate, Score: best.Score}
}

// Similarity scores two normalized keys in [0,1]. The score blends
// token-set overlap (Dice) with edit distance on the residual tokens,
// so "hawks fc" vs "hawks" stays high while "u12 hawks" vs "hawks"
// drops below the default threshold.
func Similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	ta, tb := tokens(a), tokens(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}

	shared := 0
	residA, residB := []string{}, []string{}
	avail := make(map[string]int, len(tb))
	for _, t := range tb {
		avail[t]++
	}
	for _, t := range ta {
		if avail[t] > 0 {
			avail[t]--
			shared++
		} else {
			residA = append(residA, t)
		}
	}
	used := make(map[string]int, len(ta))
	for _, t := range ta {
		used[t]++
	}
	for _, t := range tb {
		if used[t] > 0 {
			used[t]--
		} else {
			residB = append(residB, t)
		}
	}
	dice := 2 * float64(shared) / float64(len(ta)+len(tb))

	// The edit component compares what is left after shared tokens are
	// removed. When only one side has leftovers ("fc", "red") the names
	// differ by pure extra text, penalized relative to the whole name;
	// when both do ("u12" vs "u14") the residuals are edit-compared, so
	// near-identical names for distinct squads stay apart.
	ra, rb := strings.Join(residA, " "), strings.Join(residB, " ")
	var edit float64
	switch {
	case ra == "" && rb == "":
		edit = 1.0
	case ra == "":
		edit = 1.0 - float64(len(rb))/float64(len(b))
	case rb == "":
		edit = 1.0 - float64(len(ra))/float64(len(a))
	default:
		edit = levenshtein.Similarity(ra, rb, nil)
	}

	return 0.6*dice + 0.4*edit
}

func tokens(s string) []string {
	return strings.Fields(s)
}

func above(scored []Scored, threshold float64) []Scored {
	var out []Scored
	for _, s := range scored {
		if s.Score >= threshold {
			out = append(out, s)
		}
	}
	return out
}
