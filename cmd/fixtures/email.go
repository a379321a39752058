package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/brucewayne1212/withdean-football-fixtures/internal/ioemail"
	"github.com/brucewayne1212/withdean-football-fixtures/internal/iomaps"
)

func getEmailCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "email <task-id>",
		Short: "Assemble the fixture email for a task",
		Long: `Assemble the fixture email for a task and print it, ready to copy
into a mail client. Home tasks address the opposition's listed contact;
away tasks address the team's own coach.

The email fills in kickoff, pitch directions, map links, kit colours and
contact details from the database. Anything unknown appears as
"[to be confirmed]" so a half-complete fixture still produces a sendable
draft.

Examples:
  fixtures email 3f1f...`,
		Args: cobra.ExactArgs(1),
		RunE: runEmail,
	}
}

func runEmail(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	cfg := getConfig()

	store, op, err := openStore(ctx)
	if err != nil {
		return fail(err)
	}
	defer op.Close()

	mirror, err := taskMirror(store)
	if err != nil {
		return fail(err)
	}

	asm := ioemail.New(store, mirror, iomaps.New(cfg.Maps), cfg)

	email, err := asm.Assemble(ctx, args[0])
	if err != nil {
		return fail(err)
	}

	fmt.Printf("Subject: %s\n\n%s\n", email.Subject, email.Body)
	return nil
}
