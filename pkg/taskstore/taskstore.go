// Package taskstore defines the minimal task persistence contract the
// dual-store synchronizer works over. The transactional database store
// and the legacy JSON-file store both satisfy it, which lets the
// synchronizer mirror writes and repair divergence without caring what
// sits behind either side.
package taskstore

import (
	"context"
	"time"

	"github.com/brucewayne1212/withdean-football-fixtures/pkg/schema"
)

// Record is the portable task shape shared by both stores.
type Record struct {
	ID             string            `json:"id"`
	OrganizationID string            `json:"organizationId"`
	FixtureID      string            `json:"fixtureId"`
	TaskType       schema.TaskType   `json:"taskType"`
	Status         schema.TaskStatus `json:"status"`
	Notes          string            `json:"notes,omitempty"`
	CompletedAt    *time.Time        `json:"completedAt,omitempty"`
	IsArchived     bool              `json:"isArchived,omitempty"`
	UpdatedAt      time.Time         `json:"updatedAt"`
}

// FromTask converts a database task to its portable form.
func FromTask(t *schema.Task) Record {
	return Record{
		ID:             t.ID,
		OrganizationID: t.OrganizationID,
		FixtureID:      t.FixtureID,
		TaskType:       t.TaskType,
		Status:         t.Status,
		Notes:          t.Notes,
		CompletedAt:    t.CompletedAt,
		IsArchived:     t.IsArchived,
		UpdatedAt:      t.UpdatedAt,
	}
}

// Task converts the record back to a database task.
func (r Record) Task() schema.Task {
	return schema.Task{
		ID:             r.ID,
		OrganizationID: r.OrganizationID,
		FixtureID:      r.FixtureID,
		TaskType:       r.TaskType,
		Status:         r.Status,
		Notes:          r.Notes,
		CompletedAt:    r.CompletedAt,
		IsArchived:     r.IsArchived,
		UpdatedAt:      r.UpdatedAt,
	}
}

// Store is one side of the dual-store pair.
type Store interface {
	Load(ctx context.Context, id string) (*Record, error)
	Save(ctx context.Context, rec Record) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, orgID string) ([]Record, error)
}
