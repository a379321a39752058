package ioimport

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gnames/gnuuid"

	"github.com/brucewayne1212/withdean-football-fixtures/pkg/config"
	"github.com/brucewayne1212/withdean-football-fixtures/pkg/fixtures"
	"github.com/brucewayne1212/withdean-football-fixtures/pkg/schema"
	"github.com/brucewayne1212/withdean-football-fixtures/pkg/storage"
	"github.com/brucewayne1212/withdean-football-fixtures/pkg/taskstore"
)

// reconcileTasks makes a fixture's tasks match its home/away flag:
// exactly one active task of the implied type. An existing task of the
// right type is never touched, so workflow status survives re-imports;
// a task of the other type means the flag flipped, and is archived.
func reconcileTasks(
	ctx context.Context, tx storage.Tx, f *schema.Fixture,
) error {
	want := schema.ForSide(f.HomeAway)

	tasks, err := tx.TasksByFixture(ctx, f.ID)
	if err != nil {
		return err
	}

	generation := 0
	haveWanted := false
	for i := range tasks {
		t := &tasks[i]
		if t.TaskType == want {
			generation++
		}
		if t.IsArchived {
			continue
		}
		if t.TaskType == want {
			haveWanted = true
			continue
		}
		t.IsArchived = true
		if err := tx.SaveTask(ctx, t); err != nil {
			return err
		}
	}
	if haveWanted {
		return nil
	}

	task := schema.Task{
		ID: gnuuid.New(fmt.Sprintf(
			"task|%s|%s|%d", f.ID, want, generation)).String(),
		FixtureID: f.ID,
		TaskType:  want,
		Status:    want.InitialStatus(),
	}
	return tx.SaveTask(ctx, &task)
}

// TaskService runs the manual task workflow. Writes go through the
// mirror so the legacy file store stays in step with the database.
type TaskService struct {
	store  storage.Store
	mirror taskstore.Store
	cfg    *config.Config
	log    *slog.Logger
}

var _ fixtures.TaskService = (*TaskService)(nil)

// NewTaskService creates the workflow service. mirror may be nil when
// the legacy store is disabled.
func NewTaskService(
	store storage.Store, mirror taskstore.Store,
	cfg *config.Config, log *slog.Logger,
) *TaskService {
	return &TaskService{store: store, mirror: mirror, cfg: cfg, log: log}
}

// List returns an organization's active tasks, optionally filtered by
// status.
func (s *TaskService) List(
	ctx context.Context, orgName string, status schema.TaskStatus,
) ([]schema.Task, error) {
	org, err := s.store.EnsureOrganization(ctx, orgName)
	if err != nil {
		return nil, err
	}
	return s.store.Tasks(ctx, storage.TaskFilter{
		OrganizationID: org.ID,
		Status:         status,
	})
}

// SetStatus applies a manual workflow transition. The workflow only
// moves forward; anything else is rejected.
func (s *TaskService) SetStatus(
	ctx context.Context, taskID string, status schema.TaskStatus,
) error {
	task, err := s.store.Task(ctx, taskID)
	if err != nil {
		return err
	}
	if task == nil {
		return TaskNotFoundError(taskID)
	}
	if !task.Status.CanTransition(status) {
		return TaskTransitionError(taskID, task.Status, status)
	}

	task.Status = status
	if status == schema.StatusCompleted {
		now := time.Now()
		task.CompletedAt = &now
	}
	return s.save(ctx, task)
}

// Sweep archives completed tasks older than the retention window.
func (s *TaskService) Sweep(
	ctx context.Context, orgName string,
) (int, error) {
	org, err := s.store.EnsureOrganization(ctx, orgName)
	if err != nil {
		return 0, err
	}

	tasks, err := s.store.Tasks(ctx, storage.TaskFilter{
		OrganizationID: org.ID,
		Status:         schema.StatusCompleted,
	})
	if err != nil {
		return 0, err
	}

	cutoff := time.Now().AddDate(0, 0, -s.cfg.Legacy.SweepAfterDays)
	archived := 0
	for i := range tasks {
		t := &tasks[i]
		done := t.UpdatedAt
		if t.CompletedAt != nil {
			done = *t.CompletedAt
		}
		if done.After(cutoff) {
			continue
		}
		t.IsArchived = true
		if err := s.save(ctx, t); err != nil {
			return archived, err
		}
		archived++
	}
	return archived, nil
}

func (s *TaskService) save(ctx context.Context, t *schema.Task) error {
	if err := s.store.SaveTask(ctx, t); err != nil {
		return err
	}
	if s.mirror != nil {
		if err := s.mirror.Save(ctx, taskstore.FromTask(t)); err != nil {
			// The database write stands; the mirror catches up on the
			// next read-repair.
			s.log.Warn("task mirror write failed",
				"task", t.ID, "error", err)
		}
	}
	return nil
}
