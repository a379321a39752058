package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/brucewayne1212/withdean-football-fixtures/internal/iodb"
	"github.com/brucewayne1212/withdean-football-fixtures/internal/ioschema"
)

var forceCreate bool

func getSchemaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Create or migrate the database schema",
	}

	cmd.AddCommand(getSchemaCreateCmd())
	cmd.AddCommand(getSchemaMigrateCmd())
	return cmd
}

func getSchemaCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create the database schema from scratch",
		Long: `Create the fixtures database schema from scratch.

This command:
  1. Connects to PostgreSQL using configuration settings
  2. Checks for existing tables and prompts for confirmation if found
  3. Creates all tables using GORM AutoMigrate

Use --force to skip confirmation and drop existing tables automatically.

Examples:
  fixtures schema create
  fixtures schema create --force
  fixtures schema create --config custom.yaml`,
		RunE: runSchemaCreate,
	}

	cmd.Flags().BoolVar(&forceCreate, "force", false,
		"drop existing tables before creating schema (destructive)")

	return cmd
}

func getSchemaMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Migrate an existing schema in place",
		Long: `Apply schema changes to an existing database without dropping data.

Examples:
  fixtures schema migrate`,
		RunE: runSchemaMigrate,
	}
}

func runSchemaCreate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	cfg := getConfig()

	op := iodb.NewPgxOperator()
	if err := op.Connect(ctx, &cfg.Database); err != nil {
		return fail(err)
	}
	defer op.Close()

	fmt.Printf("Connected to database: %s@%s:%d/%s\n",
		cfg.Database.User, cfg.Database.Host, cfg.Database.Port,
		cfg.Database.Database)

	hasTables, err := op.HasTables(ctx)
	if err != nil {
		return fail(err)
	}

	if hasTables && !forceCreate {
		fmt.Println("\nWarning: database contains existing tables.")
		fmt.Println("Creating the schema will drop ALL existing tables and data.")
		fmt.Print("\nDo you want to continue? (yes/no): ")

		reader := bufio.NewReader(os.Stdin)
		response, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read user input: %w", err)
		}

		response = strings.TrimSpace(strings.ToLower(response))
		if response != "yes" && response != "y" {
			fmt.Println("Aborted. No changes made to the database.")
			return nil
		}
	}

	sm := ioschema.NewManager(op)
	if err := sm.Create(ctx); err != nil {
		return fail(err)
	}

	fmt.Println("\nDatabase schema creation complete.")
	fmt.Println("\nNext steps:")
	fmt.Println("  - Run 'fixtures import' to load fixture sources")
	return nil
}

func runSchemaMigrate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	cfg := getConfig()

	op := iodb.NewPgxOperator()
	if err := op.Connect(ctx, &cfg.Database); err != nil {
		return fail(err)
	}
	defer op.Close()

	sm := ioschema.NewManager(op)
	if err := sm.Migrate(ctx); err != nil {
		return fail(err)
	}

	fmt.Println("Schema migration complete.")
	return nil
}
