package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/brucewayne1212/withdean-football-fixtures/internal/ioimport"
	"github.com/brucewayne1212/withdean-football-fixtures/pkg/schema"
	"github.com/brucewayne1212/withdean-football-fixtures/pkg/storage"
)

var (
	tasksOrg    string
	tasksStatus string
)

func getTasksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "List and progress fixture email tasks",
		Long: `Work with the email tasks the importer derives from fixtures.

A home fixture carries a home_email task (starts pending), an away
fixture an away_email task (starts waiting for the opposition's email).
Tasks move forward only: pending -> waiting -> in_progress -> completed.`,
	}

	cmd.AddCommand(getTasksListCmd())
	cmd.AddCommand(getTasksSetStatusCmd())
	cmd.AddCommand(getTasksSweepCmd())
	return cmd
}

func getTasksListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List active tasks",
		Long: `List an organization's active (non-archived) tasks.

Examples:
  fixtures tasks list --org "Withdean Youth FC"
  fixtures tasks list --org "Withdean Youth FC" --status pending`,
		RunE: runTasksList,
	}

	cmd.Flags().StringVarP(&tasksOrg, "org", "o", "",
		"organization name (required)")
	cmd.Flags().StringVarP(&tasksStatus, "status", "s", "",
		"filter by status: pending, waiting, in_progress or completed")
	_ = cmd.MarkFlagRequired("org")
	return cmd
}

func getTasksSetStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-status <task-id> <status>",
		Short: "Move a task forward in the workflow",
		Long: `Set a task's workflow status. The workflow only moves forward;
moving a completed task back is rejected.

Examples:
  fixtures tasks set-status 3f1f... in_progress
  fixtures tasks set-status 3f1f... completed`,
		Args: cobra.ExactArgs(2),
		RunE: runTasksSetStatus,
	}
}

func getTasksSweepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Archive old completed tasks",
		Long: `Archive completed tasks older than the retention window
(legacy.sweep_after_days). Archived tasks drop out of listings but are
never deleted.

Examples:
  fixtures tasks sweep --org "Withdean Youth FC"`,
		RunE: runTasksSweep,
	}

	cmd.Flags().StringVarP(&tasksOrg, "org", "o", "",
		"organization name (required)")
	_ = cmd.MarkFlagRequired("org")
	return cmd
}

func taskService(store storage.Store) (*ioimport.TaskService, error) {
	mirror, err := taskMirror(store)
	if err != nil {
		return nil, err
	}
	return ioimport.NewTaskService(store, mirror, cfg, log), nil
}

func runTasksList(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	if tasksStatus != "" {
		if !validStatus(schema.TaskStatus(tasksStatus)) {
			return fail(fmt.Errorf("unknown status %q", tasksStatus))
		}
	}

	store, op, err := openStore(ctx)
	if err != nil {
		return fail(err)
	}
	defer op.Close()

	svc, err := taskService(store)
	if err != nil {
		return fail(err)
	}

	tasks, err := svc.List(ctx, tasksOrg, schema.TaskStatus(tasksStatus))
	if err != nil {
		return fail(err)
	}

	if len(tasks) == 0 {
		fmt.Println("No tasks found.")
		return nil
	}

	for _, task := range tasks {
		fmt.Printf("%s  %-11s %-12s %s\n",
			task.ID, task.TaskType, task.Status, describeFixture(ctx, store, task))
	}
	fmt.Printf("\n%d task(s)\n", len(tasks))
	return nil
}

func runTasksSetStatus(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	taskID, status := args[0], schema.TaskStatus(args[1])

	if !validStatus(status) {
		return fail(fmt.Errorf("unknown status %q", args[1]))
	}

	store, op, err := openStore(ctx)
	if err != nil {
		return fail(err)
	}
	defer op.Close()

	svc, err := taskService(store)
	if err != nil {
		return fail(err)
	}

	if err := svc.SetStatus(ctx, taskID, status); err != nil {
		return fail(err)
	}

	fmt.Printf("Task %s is now %s\n", taskID, status)
	return nil
}

func runTasksSweep(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	store, op, err := openStore(ctx)
	if err != nil {
		return fail(err)
	}
	defer op.Close()

	svc, err := taskService(store)
	if err != nil {
		return fail(err)
	}

	count, err := svc.Sweep(ctx, tasksOrg)
	if err != nil {
		return fail(err)
	}

	fmt.Printf("Archived %d completed task(s)\n", count)
	return nil
}

func validStatus(s schema.TaskStatus) bool {
	switch s {
	case schema.StatusPending, schema.StatusWaiting,
		schema.StatusInProgress, schema.StatusCompleted:
		return true
	}
	return false
}

// describeFixture renders a short fixture line for task listings.
// Lookup failures degrade to the fixture ID; the listing still works.
func describeFixture(
	ctx context.Context, store storage.Store, task schema.Task,
) string {
	fixture, err := store.Fixture(ctx, task.FixtureID)
	if err != nil || fixture == nil {
		return task.FixtureID
	}

	teamName := "?"
	if team, err := store.Team(ctx, fixture.TeamID); err == nil && team != nil {
		teamName = team.Name
	}

	opposition := fixture.OppositionName
	if opposition == "" && fixture.OppositionTeamID != "" {
		if opp, err := store.Team(ctx, fixture.OppositionTeamID); err == nil && opp != nil {
			opposition = opp.Name
		}
	}

	when := fixture.KickoffTimeText
	if fixture.KickoffAt != nil {
		when = fixture.KickoffAt.Format("Mon 2 Jan 15:04")
	}
	if when == "" {
		when = "TBD"
	}

	return fmt.Sprintf("%s vs %s (%s, %s)",
		teamName, opposition, fixture.HomeAway, when)
}
