// Package iopg implements storage.Store on PostgreSQL. Imports run in
// serializable transactions holding a per-organization advisory lock,
// so two imports for the same club queue up instead of interleaving.
package iopg

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gnames/gnuuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/brucewayne1212/withdean-football-fixtures/pkg/db"
	"github.com/brucewayne1212/withdean-football-fixtures/pkg/normalize"
	"github.com/brucewayne1212/withdean-football-fixtures/pkg/schema"
	"github.com/brucewayne1212/withdean-football-fixtures/pkg/storage"
)

// serialization_failure, retried once per transaction.
const sqlstateSerializationFailure = "40001"

type pgStore struct {
	db *gorm.DB
}

var _ storage.Store = (*pgStore)(nil)

// New creates a storage.Store over a connected operator's pool.
func New(op db.Operator) (storage.Store, error) {
	pool := op.Pool()
	if pool == nil {
		return nil, NotConnectedError()
	}
	gormDB, err := gorm.Open(
		postgres.New(postgres.Config{Conn: stdlib.OpenDBFromPool(pool)}),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)},
	)
	if err != nil {
		return nil, GORMConnectionError(err)
	}
	return &pgStore{db: gormDB}, nil
}

// InTx runs fn in a serializable transaction scoped to one
// organization. A serialization failure is retried once; the advisory
// lock makes a second failure unlikely.
func (s *pgStore) InTx(
	ctx context.Context, orgID string, fn func(tx storage.Tx) error,
) error {
	run := func() error {
		return s.db.WithContext(ctx).Transaction(func(g *gorm.DB) error {
			if err := g.Exec(
				"SET TRANSACTION ISOLATION LEVEL SERIALIZABLE",
			).Error; err != nil {
				return QueryError("set isolation level", err)
			}
			if err := g.Exec(
				"SELECT pg_advisory_xact_lock(hashtext(?))", orgID,
			).Error; err != nil {
				return QueryError("acquire org lock", err)
			}
			return fn(&pgTx{db: g, orgID: orgID})
		})
	}

	err := run()
	if isSerializationFailure(err) {
		err = run()
		if isSerializationFailure(err) {
			return TxConflictError(err)
		}
	}
	return err
}

func isSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) &&
		pgErr.Code == sqlstateSerializationFailure
}

func (s *pgStore) EnsureOrganization(
	ctx context.Context, name string,
) (*schema.Organization, error) {
	slug := strings.ReplaceAll(normalize.Key(name), " ", "-")

	var org schema.Organization
	err := s.db.WithContext(ctx).
		Where("slug = ?", slug).First(&org).Error
	if err == nil {
		return &org, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, QueryError("load organization", err)
	}

	org = schema.Organization{
		ID:   gnuuid.New("org|" + slug).String(),
		Name: strings.TrimSpace(name),
		Slug: slug,
	}
	if err := s.db.WithContext(ctx).Create(&org).Error; err != nil {
		return nil, QueryError("create organization", err)
	}
	return &org, nil
}

func (s *pgStore) Task(ctx context.Context, id string) (*schema.Task, error) {
	var t schema.Task
	err := s.db.WithContext(ctx).First(&t, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, QueryError("load task", err)
	}
	return &t, nil
}

func (s *pgStore) Tasks(
	ctx context.Context, filter storage.TaskFilter,
) ([]schema.Task, error) {
	q := s.db.WithContext(ctx).Model(&schema.Task{})
	if filter.OrganizationID != "" {
		q = q.Where("organization_id = ?", filter.OrganizationID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Type != "" {
		q = q.Where("task_type = ?", filter.Type)
	}
	if !filter.IncludeArchived {
		q = q.Where("is_archived = ?", false)
	}

	var tasks []schema.Task
	if err := q.Order("created_at, id").Find(&tasks).Error; err != nil {
		return nil, QueryError("list tasks", err)
	}
	return tasks, nil
}

func (s *pgStore) SaveTask(ctx context.Context, t *schema.Task) error {
	t.UpdatedAt = time.Now()
	if err := s.db.WithContext(ctx).Save(t).Error; err != nil {
		return QueryError("save task", err)
	}
	return nil
}

func (s *pgStore) Fixture(ctx context.Context, id string) (*schema.Fixture, error) {
	var f schema.Fixture
	err := s.db.WithContext(ctx).First(&f, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, QueryError("load fixture", err)
	}
	return &f, nil
}

func (s *pgStore) Team(ctx context.Context, id string) (*schema.Team, error) {
	var t schema.Team
	err := s.db.WithContext(ctx).First(&t, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, QueryError("load team", err)
	}
	return &t, nil
}

func (s *pgStore) Pitch(ctx context.Context, id string) (*schema.Pitch, error) {
	var p schema.Pitch
	err := s.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, QueryError("load pitch", err)
	}
	return &p, nil
}

func (s *pgStore) TeamContactByName(
	ctx context.Context, orgID, teamName string,
) (*schema.TeamContact, error) {
	var contacts []schema.TeamContact
	err := s.db.WithContext(ctx).
		Where("organization_id = ?", orgID).Find(&contacts).Error
	if err != nil {
		return nil, QueryError("list contacts", err)
	}

	// Contact rows are entered by hand; match on normalized keys so
	// "Rovers FC" finds the row saved as "rovers fc".
	key := normalize.Key(teamName)
	for _, c := range contacts {
		if normalize.Key(c.TeamName) == key {
			c := c
			return &c, nil
		}
	}
	return nil, nil
}

func (s *pgStore) CoachesByTeam(
	ctx context.Context, teamID string,
) ([]schema.TeamCoach, error) {
	var coaches []schema.TeamCoach
	err := s.db.WithContext(ctx).
		Where("team_id = ?", teamID).
		Order("coach_name").Find(&coaches).Error
	if err != nil {
		return nil, QueryError("list coaches", err)
	}
	return coaches, nil
}

func (s *pgStore) Template(
	ctx context.Context, orgID, templateType string,
) (*schema.EmailTemplate, error) {
	var t schema.EmailTemplate
	err := s.db.WithContext(ctx).
		Where("organization_id = ? AND template_type = ?",
			orgID, templateType).
		First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, QueryError("load template", err)
	}
	return &t, nil
}
