package ioimport

import (
	"context"
	"fmt"

	"github.com/gnames/gnuuid"

	"github.com/brucewayne1212/withdean-football-fixtures/pkg/fixtures"
	"github.com/brucewayne1212/withdean-football-fixtures/pkg/normalize"
	"github.com/brucewayne1212/withdean-football-fixtures/pkg/schema"
	"github.com/brucewayne1212/withdean-football-fixtures/pkg/storage"
)

// engine applies normalized rows to the fixture store. It keeps two
// indexes over the organization's fixtures: the full identity (with the
// home/away flag) decides CREATE vs UPDATE vs SKIP; the flagless
// identity catches the correction case where a re-import flips a
// fixture from home to away or back.
type engine struct {
	tx  storage.Tx
	res *resolver

	byIdentity map[string]*schema.Fixture
	byFlagless map[string]*schema.Fixture
}

func newEngine(
	ctx context.Context, tx storage.Tx, res *resolver,
) (*engine, error) {
	existing, err := tx.Fixtures(ctx)
	if err != nil {
		return nil, err
	}

	e := &engine{
		tx:         tx,
		res:        res,
		byIdentity: make(map[string]*schema.Fixture, len(existing)),
		byFlagless: make(map[string]*schema.Fixture, len(existing)),
	}
	for i := range existing {
		f := &existing[i]
		e.index(f)
	}
	return e, nil
}

func (e *engine) index(f *schema.Fixture) {
	e.byIdentity[identityOf(f)] = f
	e.byFlagless[flaglessIdentityOf(f)] = f
}

// apply processes one normalized row: resolve names, decide the upsert,
// reconcile tasks, update the summary.
func (e *engine) apply(
	ctx context.Context, row normalize.FixtureRow, s *fixtures.ImportSummary,
) error {
	if row.Team == "" {
		unresolved(s, row.Index, "no team name")
		return nil
	}
	if row.Opposition == "" {
		unresolved(s, row.Index, "no opposition for %q", row.Team)
		return nil
	}

	team, err := e.res.team(ctx, e.tx, row.Team)
	if err != nil {
		return err
	}
	if team == nil {
		// Punctuation-only names normalize to an empty key.
		unresolved(s, row.Index,
			"team name %q has no usable characters", row.Team)
		return nil
	}
	opp, err := e.res.opposition(ctx, e.tx, row.Opposition)
	if err != nil {
		return err
	}
	if opp == nil {
		unresolved(s, row.Index,
			"opposition name %q has no usable characters", row.Opposition)
		return nil
	}

	var pitchID string
	if row.Side == schema.Home && row.Pitch != "" {
		pitch, err := e.res.pitch(ctx, e.tx, row.Pitch)
		if err != nil {
			return err
		}
		if pitch != nil {
			pitchID = pitch.ID
		}
	}

	if row.KickoffText != "" && row.Kickoff == nil {
		unresolved(s, row.Index,
			"kickoff %q not understood; fixture kept with the raw text",
			row.KickoffText)
	}

	incoming := schema.Fixture{
		TeamID:           team.ID,
		OppositionTeamID: opp.ID,
		OppositionName:   row.Opposition,
		HomeAway:         row.Side,
		PitchID:          pitchID,
		KickoffAt:        row.Kickoff,
		KickoffTimeText:  row.KickoffText,
		MatchFormat:      row.MatchFormat,
		FixtureLength:    row.FixtureLength,
		EachWay:          row.EachWay,
		RefereeInfo:      row.Referee,
		Instructions:     row.Instructions,
		HomeManager:      row.HomeManager,
		FixturesSec:      row.FixturesSec,
		ManagerMobile:    row.ManagerMobile,
		Contact1:         row.Contact1,
		Contact2:         row.Contact2,
		Contact3:         row.Contact3,
	}

	identity := identityOf(&incoming)
	if existing, ok := e.byIdentity[identity]; ok {
		return e.update(ctx, existing, &incoming, false, s)
	}
	if existing, ok := e.byFlagless[flaglessIdentityOf(&incoming)]; ok {
		// Same match, opposite flag: a correction, not a new fixture.
		s.Notes = append(s.Notes, fmt.Sprintf(
			"fixture %s vs %s changed to %s",
			team.Name, opp.Name, sideLabel(row.Side)))
		return e.update(ctx, existing, &incoming, true, s)
	}
	return e.create(ctx, identity, &incoming, s)
}

func (e *engine) create(
	ctx context.Context, identity string, f *schema.Fixture,
	s *fixtures.ImportSummary,
) error {
	f.ID = gnuuid.New(identity).String()
	if err := e.tx.SaveFixture(ctx, f); err != nil {
		return err
	}
	e.index(f)
	if err := reconcileTasks(ctx, e.tx, f); err != nil {
		return err
	}
	s.Created++
	return nil
}

func (e *engine) update(
	ctx context.Context, existing, incoming *schema.Fixture, flipped bool,
	s *fixtures.ImportSummary,
) error {
	delete(e.byIdentity, identityOf(existing))
	delete(e.byFlagless, flaglessIdentityOf(existing))

	changed := merge(existing, incoming)
	if flipped {
		existing.HomeAway = incoming.HomeAway
		changed = true
	}
	e.index(existing)

	if !changed {
		s.Skipped++
		return nil
	}
	if err := e.tx.SaveFixture(ctx, existing); err != nil {
		return err
	}
	if err := reconcileTasks(ctx, e.tx, existing); err != nil {
		return err
	}
	s.Updated++
	return nil
}

// merge copies non-empty incoming fields over existing ones and reports
// whether anything changed. Blank incoming values never erase detail a
// previous import established.
func merge(existing, incoming *schema.Fixture) bool {
	changed := false

	set := func(dst *string, src string) {
		if src != "" && src != *dst {
			*dst = src
			changed = true
		}
	}

	set(&existing.OppositionName, incoming.OppositionName)
	set(&existing.PitchID, incoming.PitchID)
	set(&existing.MatchFormat, incoming.MatchFormat)
	set(&existing.FixtureLength, incoming.FixtureLength)
	set(&existing.EachWay, incoming.EachWay)
	set(&existing.RefereeInfo, incoming.RefereeInfo)
	set(&existing.Instructions, incoming.Instructions)
	set(&existing.HomeManager, incoming.HomeManager)
	set(&existing.FixturesSec, incoming.FixturesSec)
	set(&existing.ManagerMobile, incoming.ManagerMobile)
	set(&existing.Contact1, incoming.Contact1)
	set(&existing.Contact2, incoming.Contact2)
	set(&existing.Contact3, incoming.Contact3)

	if incoming.KickoffAt != nil &&
		(existing.KickoffAt == nil ||
			!existing.KickoffAt.Equal(*incoming.KickoffAt)) {
		existing.KickoffAt = incoming.KickoffAt
		changed = true
	}
	if incoming.KickoffTimeText != "" &&
		incoming.KickoffTimeText != existing.KickoffTimeText {
		existing.KickoffTimeText = incoming.KickoffTimeText
		changed = true
	}

	return changed
}

// identityOf is the deduplication key: organization scope comes from
// the transaction, so the key covers team, opposition, flag and the
// kickoff date. An unparsed kickoff falls back to its normalized text.
func identityOf(f *schema.Fixture) string {
	return flaglessIdentityOf(f) + "|" + string(f.HomeAway)
}

func flaglessIdentityOf(f *schema.Fixture) string {
	return fmt.Sprintf("fixture|%s|%s|%s",
		f.TeamID, f.OppositionTeamID, datePart(f))
}

func datePart(f *schema.Fixture) string {
	if f.KickoffAt != nil {
		return f.KickoffAt.Format("2006-01-02")
	}
	if key := normalize.Key(f.KickoffTimeText); key != "" {
		return key
	}
	return "tbd"
}
