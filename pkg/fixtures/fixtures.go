// Package fixtures defines the public contracts of the fixture
// ingestion pipeline: importing fixture sources, managing the database
// schema, and assembling fixture emails. Implementations live under
// internal/io*.
package fixtures

import (
	"context"

	"github.com/brucewayne1212/withdean-football-fixtures/pkg/parse"
	"github.com/brucewayne1212/withdean-football-fixtures/pkg/schema"
)

// Version of the module, set at build time.
var Version = "v0.1.0+dev"

// UnresolvedRow records an input row the importer declined to turn
// into a fixture, with a human-readable reason.
type UnresolvedRow struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// ImportSummary reports what one import run did. Counters plus
// detailed per-row outcomes the operator can act on.
type ImportSummary struct {
	Created    int             `json:"created"`
	Updated    int             `json:"updated"`
	Skipped    int             `json:"skipped"`
	Unresolved []UnresolvedRow `json:"unresolved,omitempty"`

	// Notes carries advisory messages, e.g. near-miss name matches
	// left as new entities.
	Notes []string `json:"notes,omitempty"`
}

// Add folds another summary into this one, shifting nothing; row
// indices already refer to each source independently.
func (s *ImportSummary) Add(other ImportSummary) {
	s.Created += other.Created
	s.Updated += other.Updated
	s.Skipped += other.Skipped
	s.Unresolved = append(s.Unresolved, other.Unresolved...)
	s.Notes = append(s.Notes, other.Notes...)
}

// Importer runs fixture imports for one organization at a time.
type Importer interface {
	// Import parses data in the given format and applies it to the
	// organization's fixtures atomically. A non-nil error means
	// nothing was written.
	Import(ctx context.Context, orgName string, data []byte,
		format parse.Format) (ImportSummary, error)
}

// Fetcher downloads a league fixtures page and returns its visible
// text, ready for the free-form text parser.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// SchemaManager creates and migrates the database schema.
type SchemaManager interface {
	Create(ctx context.Context) error
	Migrate(ctx context.Context) error
}

// Email is one assembled fixture email ready to copy or send.
type Email struct {
	Subject string
	Body    string
}

// Assembler builds the outgoing email for a home_email task.
type Assembler interface {
	Assemble(ctx context.Context, taskID string) (Email, error)
}

// TaskService is the manual task workflow: listing, forward-only
// status changes, and the retention sweep.
type TaskService interface {
	List(ctx context.Context, orgName string, status schema.TaskStatus) ([]schema.Task, error)
	SetStatus(ctx context.Context, taskID string, status schema.TaskStatus) error

	// Sweep archives completed tasks older than the retention window
	// and returns how many it archived.
	Sweep(ctx context.Context, orgName string) (int, error)
}
