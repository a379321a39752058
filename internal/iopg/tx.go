package iopg

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/brucewayne1212/withdean-football-fixtures/pkg/schema"
)

// pgTx is the organization-scoped view inside one transaction.
type pgTx struct {
	db    *gorm.DB
	orgID string
}

func (tx *pgTx) Teams(ctx context.Context) ([]schema.Team, error) {
	var teams []schema.Team
	err := tx.db.WithContext(ctx).
		Where("organization_id = ?", tx.orgID).
		Order("name_key").Find(&teams).Error
	if err != nil {
		return nil, QueryError("list teams", err)
	}
	return teams, nil
}

func (tx *pgTx) TeamByKey(ctx context.Context, key string) (*schema.Team, error) {
	var t schema.Team
	err := tx.db.WithContext(ctx).
		Where("organization_id = ? AND name_key = ?", tx.orgID, key).
		First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, QueryError("load team", err)
	}
	return &t, nil
}

func (tx *pgTx) SaveTeam(ctx context.Context, t *schema.Team) error {
	t.OrganizationID = tx.orgID
	t.UpdatedAt = time.Now()
	if err := tx.db.WithContext(ctx).Save(t).Error; err != nil {
		return QueryError("save team", err)
	}
	return nil
}

func (tx *pgTx) Pitches(ctx context.Context) ([]schema.Pitch, error) {
	var pitches []schema.Pitch
	err := tx.db.WithContext(ctx).
		Where("organization_id = ?", tx.orgID).
		Order("name_key").Find(&pitches).Error
	if err != nil {
		return nil, QueryError("list pitches", err)
	}
	return pitches, nil
}

func (tx *pgTx) PitchByKey(ctx context.Context, key string) (*schema.Pitch, error) {
	var p schema.Pitch
	err := tx.db.WithContext(ctx).
		Where("organization_id = ? AND name_key = ?", tx.orgID, key).
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, QueryError("load pitch", err)
	}
	return &p, nil
}

func (tx *pgTx) SavePitch(ctx context.Context, p *schema.Pitch) error {
	p.OrganizationID = tx.orgID
	p.UpdatedAt = time.Now()
	if err := tx.db.WithContext(ctx).Save(p).Error; err != nil {
		return QueryError("save pitch", err)
	}
	return nil
}

func (tx *pgTx) PitchAliases(ctx context.Context) ([]schema.PitchAlias, error) {
	var aliases []schema.PitchAlias
	err := tx.db.WithContext(ctx).
		Where("organization_id = ?", tx.orgID).
		Order("alias_key").Find(&aliases).Error
	if err != nil {
		return nil, QueryError("list pitch aliases", err)
	}
	return aliases, nil
}

func (tx *pgTx) SavePitchAlias(ctx context.Context, a *schema.PitchAlias) error {
	a.OrganizationID = tx.orgID
	if err := tx.db.WithContext(ctx).Save(a).Error; err != nil {
		return QueryError("save pitch alias", err)
	}
	return nil
}

func (tx *pgTx) Fixtures(ctx context.Context) ([]schema.Fixture, error) {
	var fixtures []schema.Fixture
	err := tx.db.WithContext(ctx).
		Where("organization_id = ?", tx.orgID).
		Order("id").Find(&fixtures).Error
	if err != nil {
		return nil, QueryError("list fixtures", err)
	}
	return fixtures, nil
}

func (tx *pgTx) SaveFixture(ctx context.Context, f *schema.Fixture) error {
	f.OrganizationID = tx.orgID
	f.UpdatedAt = time.Now()
	if err := tx.db.WithContext(ctx).Save(f).Error; err != nil {
		return QueryError("save fixture", err)
	}
	return nil
}

func (tx *pgTx) TasksByFixture(
	ctx context.Context, fixtureID string,
) ([]schema.Task, error) {
	var tasks []schema.Task
	err := tx.db.WithContext(ctx).
		Where("organization_id = ? AND fixture_id = ?", tx.orgID, fixtureID).
		Order("created_at, id").Find(&tasks).Error
	if err != nil {
		return nil, QueryError("list fixture tasks", err)
	}
	return tasks, nil
}

func (tx *pgTx) SaveTask(ctx context.Context, t *schema.Task) error {
	t.OrganizationID = tx.orgID
	t.UpdatedAt = time.Now()
	if err := tx.db.WithContext(ctx).Save(t).Error; err != nil {
		return QueryError("save task", err)
	}
	return nil
}
