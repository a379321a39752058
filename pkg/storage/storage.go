// Package storage defines the persistence contracts for the fixtures
// pipeline. Implementations live in internal/iopg (PostgreSQL) and
// internal/iomem (in-memory, for tests and dry runs).
//
// Lookup methods return (nil, nil) when no record matches; a non-nil
// error always means the lookup itself failed.
package storage

import (
	"context"

	"github.com/brucewayne1212/withdean-football-fixtures/pkg/schema"
)

// Tx is the unit-of-work view an import runs against. Everything
// written through a Tx commits or rolls back together.
type Tx interface {
	// Directory reads are scoped to the transaction's organization.
	Teams(ctx context.Context) ([]schema.Team, error)
	TeamByKey(ctx context.Context, key string) (*schema.Team, error)
	SaveTeam(ctx context.Context, t *schema.Team) error

	Pitches(ctx context.Context) ([]schema.Pitch, error)
	PitchByKey(ctx context.Context, key string) (*schema.Pitch, error)
	SavePitch(ctx context.Context, p *schema.Pitch) error
	PitchAliases(ctx context.Context) ([]schema.PitchAlias, error)
	SavePitchAlias(ctx context.Context, a *schema.PitchAlias) error

	Fixtures(ctx context.Context) ([]schema.Fixture, error)
	SaveFixture(ctx context.Context, f *schema.Fixture) error

	TasksByFixture(ctx context.Context, fixtureID string) ([]schema.Task, error)
	SaveTask(ctx context.Context, t *schema.Task) error
}

// TaskFilter narrows task listings. Zero values mean "any".
type TaskFilter struct {
	OrganizationID  string
	Status          schema.TaskStatus
	Type            schema.TaskType
	IncludeArchived bool
}

// Store is the full persistence surface. InTx is the only way to
// mutate directory, fixture and task state during an import; the flat
// methods serve the task workflow and email assembly paths.
type Store interface {
	// InTx runs fn atomically within the given organization's scope.
	// Implementations serialize concurrent imports for the same
	// organization; fn returning an error rolls everything back.
	InTx(ctx context.Context, orgID string, fn func(tx Tx) error) error

	// EnsureOrganization returns the organization with the given slug,
	// creating it when absent.
	EnsureOrganization(ctx context.Context, name string) (*schema.Organization, error)

	Task(ctx context.Context, id string) (*schema.Task, error)
	Tasks(ctx context.Context, filter TaskFilter) ([]schema.Task, error)
	SaveTask(ctx context.Context, t *schema.Task) error

	Fixture(ctx context.Context, id string) (*schema.Fixture, error)
	Team(ctx context.Context, id string) (*schema.Team, error)
	Pitch(ctx context.Context, id string) (*schema.Pitch, error)

	TeamContactByName(ctx context.Context, orgID, teamName string) (*schema.TeamContact, error)
	CoachesByTeam(ctx context.Context, teamID string) ([]schema.TeamCoach, error)
	Template(ctx context.Context, orgID, templateType string) (*schema.EmailTemplate, error)
}
