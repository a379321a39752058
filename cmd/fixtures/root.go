package main

import (
	"fmt"
	"log/slog"

	"github.com/gnames/gn"
	"github.com/spf13/cobra"

	"github.com/brucewayne1212/withdean-football-fixtures/internal/ioconfig"
	"github.com/brucewayne1212/withdean-football-fixtures/pkg/config"
	"github.com/brucewayne1212/withdean-football-fixtures/pkg/fixtures"
	"github.com/brucewayne1212/withdean-football-fixtures/pkg/logger"
)

var (
	cfgFile string
	cfg     *config.Config
	log     *slog.Logger
)

func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "fixtures",
		Short: "fixtures manages a club's match fixture pipeline",
		Long: `fixtures ingests league fixture lists into a PostgreSQL database and
tracks the email workflow each fixture implies.

The tool covers four areas:
  - schema: create and migrate the database schema
  - import: load fixtures from XLSX/CSV files, pasted text, or league web pages
  - tasks:  list and progress the per-fixture email workflow
  - email:  assemble the outgoing fixture email for a home game

Configuration precedence (highest to lowest):
  1. CLI flags (--host, --port, etc.)
  2. Environment variables (WFF_*)
  3. Config file (fixtures.yaml)
  4. Built-in defaults

Environment Variables:
  Nested config fields use underscores (database.host -> WFF_DATABASE_HOST).

  Examples:
    WFF_DATABASE_HOST       PostgreSQL host
    WFF_DATABASE_PASSWORD   PostgreSQL password
    WFF_IMPORT_SEASON_YEAR  Year assumed for dates without one
    WFF_MAPS_STATIC_KEY     Google Static Maps API key
    WFF_LEGACY_DIR          Legacy file task store directory

  See 'go doc github.com/brucewayne1212/withdean-football-fixtures/pkg/config'
  for the complete list.`,
		Version:       fixtures.Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cfgFile == "" {
				exists, err := ioconfig.ConfigFileExists()
				if err != nil {
					return fmt.Errorf("failed to check config file: %w", err)
				}

				if !exists {
					generatedPath, err := ioconfig.GenerateDefaultConfig()
					if err != nil {
						// Only warn, defaults still work.
						fmt.Printf("Warning: could not generate config file: %v\n", err)
					} else {
						fmt.Printf("Generated default config at: %s\n", generatedPath)
					}
				}
			}

			result, err := ioconfig.Load(cfgFile)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			cfg = result.Config

			cfg, err = ioconfig.BindFlags(cmd, cfg)
			if err != nil {
				return err
			}

			log = logger.New(&cfg.Log)
			slog.SetDefault(log)

			if result.Source == "file" {
				slog.Debug("Configuration loaded", "config_file", result.SourcePath)
			}

			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: ~/.config/fixtures/fixtures.yaml)")

	pf := rootCmd.PersistentFlags()
	pf.String("host", "", "PostgreSQL host")
	pf.Int("port", 0, "PostgreSQL port")
	pf.String("user", "", "PostgreSQL user")
	pf.String("password", "", "PostgreSQL password")
	pf.String("database", "", "PostgreSQL database name")
	pf.String("ssl-mode", "", "PostgreSQL SSL mode")
	pf.Int("season-year", 0, "year assumed for fixture dates without one")
	pf.String("legacy-dir", "", "directory for the legacy file task store")

	rootCmd.Flags().BoolP("version", "V", false, "version for fixtures")
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	rootCmd.AddCommand(getSchemaCmd())
	rootCmd.AddCommand(getImportCmd())
	rootCmd.AddCommand(getTasksCmd())
	rootCmd.AddCommand(getEmailCmd())

	return rootCmd
}

// getConfig returns the loaded configuration (for use in subcommands).
func getConfig() *config.Config {
	return cfg
}

// fail prints a formatted error message and returns the error for
// cobra's exit code handling.
func fail(err error) error {
	gn.PrintErrorMessage(err)
	return err
}
