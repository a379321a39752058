package iomem

import (
	"context"
	"sort"
	"time"

	"github.com/brucewayne1212/withdean-football-fixtures/pkg/schema"
)

// memTx is the organization-scoped transactional view. The store's
// mutex is held for the whole transaction, so methods touch maps
// directly.
type memTx struct {
	store *Store
	orgID string
}

func (tx *memTx) Teams(_ context.Context) ([]schema.Team, error) {
	var out []schema.Team
	for _, t := range tx.store.teams {
		if t.OrganizationID == tx.orgID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].NameKey < out[j].NameKey })
	return out, nil
}

func (tx *memTx) TeamByKey(_ context.Context, key string) (*schema.Team, error) {
	for _, t := range tx.store.teams {
		if t.OrganizationID == tx.orgID && t.NameKey == key {
			t := t
			return &t, nil
		}
	}
	return nil, nil
}

func (tx *memTx) SaveTeam(_ context.Context, t *schema.Team) error {
	t.OrganizationID = tx.orgID
	now := time.Now()
	if _, ok := tx.store.teams[t.ID]; !ok {
		t.CreatedAt = now
	}
	t.UpdatedAt = now
	tx.store.teams[t.ID] = *t
	return nil
}

func (tx *memTx) Pitches(_ context.Context) ([]schema.Pitch, error) {
	var out []schema.Pitch
	for _, p := range tx.store.pitches {
		if p.OrganizationID == tx.orgID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].NameKey < out[j].NameKey })
	return out, nil
}

func (tx *memTx) PitchByKey(_ context.Context, key string) (*schema.Pitch, error) {
	for _, p := range tx.store.pitches {
		if p.OrganizationID == tx.orgID && p.NameKey == key {
			p := p
			return &p, nil
		}
	}
	return nil, nil
}

func (tx *memTx) SavePitch(_ context.Context, p *schema.Pitch) error {
	p.OrganizationID = tx.orgID
	now := time.Now()
	if _, ok := tx.store.pitches[p.ID]; !ok {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	tx.store.pitches[p.ID] = *p
	return nil
}

func (tx *memTx) PitchAliases(_ context.Context) ([]schema.PitchAlias, error) {
	var out []schema.PitchAlias
	for _, a := range tx.store.aliases {
		if a.OrganizationID == tx.orgID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AliasKey < out[j].AliasKey })
	return out, nil
}

func (tx *memTx) SavePitchAlias(_ context.Context, a *schema.PitchAlias) error {
	a.OrganizationID = tx.orgID
	if _, ok := tx.store.aliases[a.ID]; !ok {
		a.CreatedAt = time.Now()
	}
	tx.store.aliases[a.ID] = *a
	return nil
}

func (tx *memTx) Fixtures(_ context.Context) ([]schema.Fixture, error) {
	var out []schema.Fixture
	for _, f := range tx.store.fixtures {
		if f.OrganizationID == tx.orgID {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (tx *memTx) SaveFixture(_ context.Context, f *schema.Fixture) error {
	f.OrganizationID = tx.orgID
	now := time.Now()
	if _, ok := tx.store.fixtures[f.ID]; !ok {
		f.CreatedAt = now
	}
	f.UpdatedAt = now
	tx.store.fixtures[f.ID] = *f
	return nil
}

func (tx *memTx) TasksByFixture(
	_ context.Context, fixtureID string,
) ([]schema.Task, error) {
	var out []schema.Task
	for _, t := range tx.store.tasks {
		if t.OrganizationID == tx.orgID && t.FixtureID == fixtureID {
			out = append(out, t)
		}
	}
	sortTasks(out)
	return out, nil
}

func (tx *memTx) SaveTask(_ context.Context, t *schema.Task) error {
	t.OrganizationID = tx.orgID
	saveTask(tx.store, t)
	return nil
}
