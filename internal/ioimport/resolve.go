package ioimport

import (
	"context"
	"fmt"

	"github.com/gnames/gnuuid"

	"github.com/brucewayne1212/withdean-football-fixtures/pkg/match"
	"github.com/brucewayne1212/withdean-football-fixtures/pkg/normalize"
	"github.com/brucewayne1212/withdean-football-fixtures/pkg/schema"
	"github.com/brucewayne1212/withdean-football-fixtures/pkg/storage"
)

// resolver matches incoming names against the organization's directory.
// It works on a snapshot read inside the import transaction and keeps
// the snapshot current as it creates entities, so later rows in the
// same batch resolve to entities earlier rows created.
type resolver struct {
	orgID   string
	matcher *match.Matcher

	teams   []schema.Team
	pitches []schema.Pitch
	aliases map[string]string // alias key -> pitch id

	notes []string
}

func newResolver(
	ctx context.Context, tx storage.Tx, matcher *match.Matcher, orgID string,
) (*resolver, error) {
	teams, err := tx.Teams(ctx)
	if err != nil {
		return nil, err
	}
	pitches, err := tx.Pitches(ctx)
	if err != nil {
		return nil, err
	}
	aliasRows, err := tx.PitchAliases(ctx)
	if err != nil {
		return nil, err
	}

	aliases := make(map[string]string, len(aliasRows))
	for _, a := range aliasRows {
		aliases[a.AliasKey] = a.PitchID
	}

	return &resolver{
		orgID:   orgID,
		matcher: matcher,
		teams:   teams,
		pitches: pitches,
		aliases: aliases,
	}, nil
}

func (r *resolver) managedNames() []string {
	var names []string
	for _, t := range r.teams {
		if t.IsManaged {
			names = append(names, t.Name)
		}
	}
	return names
}

// team resolves a managed-team name, creating the team when nothing in
// the directory matches well enough.
func (r *resolver) team(
	ctx context.Context, tx storage.Tx, name string,
) (*schema.Team, error) {
	return r.resolveTeam(ctx, tx, name, true)
}

// opposition resolves an opposition name the same way, but newly
// created teams stay unmanaged.
func (r *resolver) opposition(
	ctx context.Context, tx storage.Tx, name string,
) (*schema.Team, error) {
	return r.resolveTeam(ctx, tx, name, false)
}

func (r *resolver) resolveTeam(
	ctx context.Context, tx storage.Tx, name string, managed bool,
) (*schema.Team, error) {
	key := normalize.Key(name)
	if key == "" {
		return nil, nil
	}

	var candidates []match.Candidate
	for _, t := range r.teams {
		if managed && !t.IsManaged {
			continue
		}
		candidates = append(candidates, match.Candidate{ID: t.ID, Name: t.Name})
	}

	res := r.matcher.Match(name, candidates)
	if res.Matched != nil {
		return r.teamByID(res.Matched.ID), nil
	}
	r.noteNearMisses("team", name, res.NearMisses)

	team := schema.Team{
		ID:        gnuuid.New("team|"+r.orgID+"|"+key).String(),
		Name:      name,
		NameKey:   key,
		IsManaged: managed,
	}
	if err := tx.SaveTeam(ctx, &team); err != nil {
		return nil, err
	}
	r.teams = append(r.teams, team)
	return &team, nil
}

// pitch resolves a venue name: alias table first, then exact key, then
// fuzzy match, then create.
func (r *resolver) pitch(
	ctx context.Context, tx storage.Tx, name string,
) (*schema.Pitch, error) {
	key := normalize.Key(name)
	if key == "" {
		return nil, nil
	}

	if pitchID, ok := r.aliases[key]; ok {
		return r.pitchByID(pitchID), nil
	}

	var candidates []match.Candidate
	for _, p := range r.pitches {
		candidates = append(candidates, match.Candidate{ID: p.ID, Name: p.Name})
	}
	res := r.matcher.Match(name, candidates)
	if res.Matched != nil {
		return r.pitchByID(res.Matched.ID), nil
	}
	r.noteNearMisses("pitch", name, res.NearMisses)

	pitch := schema.Pitch{
		ID:      gnuuid.New("pitch|"+r.orgID+"|"+key).String(),
		Name:    name,
		NameKey: key,
	}
	if err := tx.SavePitch(ctx, &pitch); err != nil {
		return nil, err
	}
	r.pitches = append(r.pitches, pitch)
	return &pitch, nil
}

// AddPitchAlias records an alternate spelling for a pitch.
func AddPitchAlias(
	ctx context.Context, tx storage.Tx, orgID, alias, pitchID string,
) error {
	key := normalize.Key(alias)
	if key == "" {
		return nil
	}
	a := schema.PitchAlias{
		ID:       gnuuid.New("pitch-alias|" + orgID + "|" + key).String(),
		AliasKey: key,
		PitchID:  pitchID,
	}
	return tx.SavePitchAlias(ctx, &a)
}

func (r *resolver) teamByID(id string) *schema.Team {
	for i := range r.teams {
		if r.teams[i].ID == id {
			return &r.teams[i]
		}
	}
	return nil
}

func (r *resolver) pitchByID(id string) *schema.Pitch {
	for i := range r.pitches {
		if r.pitches[i].ID == id {
			return &r.pitches[i]
		}
	}
	return nil
}

func (r *resolver) noteNearMisses(kind, name string, misses []match.Scored) {
	for _, m := range misses {
		r.notes = append(r.notes, fmt.Sprintf(
			"%s %q kept separate from existing %q (similarity %.2f); "+
				"add an alias or rename to merge",
			kind, name, m.Candidate.Name, m.Score,
		))
	}
}
