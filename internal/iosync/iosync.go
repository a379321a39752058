// Package iosync keeps two task stores in step during the migration
// away from the file-based store. The database side is the source of
// truth: secondary write failures degrade to warnings, and reads repair
// a diverged secondary from the primary.
package iosync

import (
	"context"
	"log/slog"

	"github.com/brucewayne1212/withdean-football-fixtures/pkg/taskstore"
)

// Syncer is a taskstore.Store that mirrors every write to a secondary
// store and repairs the secondary on read.
type Syncer struct {
	primary   taskstore.Store
	secondary taskstore.Store
	log       *slog.Logger
}

var _ taskstore.Store = (*Syncer)(nil)

// New creates a Syncer. primary must not be nil; secondary may be.
func New(primary, secondary taskstore.Store, log *slog.Logger) *Syncer {
	return &Syncer{primary: primary, secondary: secondary, log: log}
}

// Load reads from the primary and repairs the secondary when it
// disagrees. A failed repair is logged and ignored.
func (s *Syncer) Load(
	ctx context.Context, id string,
) (*taskstore.Record, error) {
	rec, err := s.primary.Load(ctx, id)
	if err != nil || rec == nil {
		return rec, err
	}
	if s.secondary == nil {
		return rec, nil
	}

	sec, err := s.secondary.Load(ctx, id)
	if err != nil {
		s.log.Warn("secondary task store read failed",
			"task", id, "error", err)
		return rec, nil
	}
	if sec == nil || diverged(*rec, *sec) {
		if err := s.secondary.Save(ctx, *rec); err != nil {
			s.log.Warn("secondary task store repair failed",
				"task", id, "error", DivergenceError(id, err))
		} else {
			s.log.Info("repaired diverged task record", "task", id)
		}
	}
	return rec, nil
}

// Save writes to the primary, then mirrors to the secondary. Only the
// primary write can fail the call.
func (s *Syncer) Save(ctx context.Context, rec taskstore.Record) error {
	if err := s.primary.Save(ctx, rec); err != nil {
		return err
	}
	if s.secondary != nil {
		if err := s.secondary.Save(ctx, rec); err != nil {
			s.log.Warn("secondary task store write failed",
				"task", rec.ID, "error", SecondaryWriteError(rec.ID, err))
		}
	}
	return nil
}

// Delete removes from both stores; the secondary failure is a warning.
func (s *Syncer) Delete(ctx context.Context, id string) error {
	if err := s.primary.Delete(ctx, id); err != nil {
		return err
	}
	if s.secondary != nil {
		if err := s.secondary.Delete(ctx, id); err != nil {
			s.log.Warn("secondary task store delete failed",
				"task", id, "error", SecondaryWriteError(id, err))
		}
	}
	return nil
}

// List reads from the primary only.
func (s *Syncer) List(
	ctx context.Context, orgID string,
) ([]taskstore.Record, error) {
	return s.primary.List(ctx, orgID)
}

// diverged compares workflow-relevant fields; timestamps are allowed
// to drift.
func diverged(a, b taskstore.Record) bool {
	return a.Status != b.Status ||
		a.TaskType != b.TaskType ||
		a.IsArchived != b.IsArchived ||
		a.Notes != b.Notes
}
