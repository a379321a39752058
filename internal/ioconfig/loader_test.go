package ioconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brucewayne1212/withdean-football-fixtures/pkg/config"
)

func TestLoad_Defaults(t *testing.T) {
	res, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "localhost", res.Config.Database.Host)
	assert.Equal(t, 5432, res.Config.Database.Port)
	assert.InDelta(t, 0.82, res.Config.Match.AcceptThreshold, 0.001)
	assert.Equal(t, "600x400", res.Config.Maps.ImageSize)
}

func TestLoad_FromFile(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "fixtures.yaml")
	configContent := `
database:
  host: db.example.org
  port: 5433
match:
  accept_threshold: 0.9
email:
  signature: "Cheers"
`
	err := os.WriteFile(configPath, []byte(configContent), 0644)
	require.NoError(t, err)

	res, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, "file", res.Source)
	assert.Equal(t, configPath, res.SourcePath)
	assert.Equal(t, "db.example.org", res.Config.Database.Host)
	assert.Equal(t, 5433, res.Config.Database.Port)
	assert.InDelta(t, 0.9, res.Config.Match.AcceptThreshold, 0.001)
	assert.Equal(t, "Cheers", res.Config.Email.Signature)

	// Unset fields come from defaults.
	assert.Equal(t, "postgres", res.Config.Database.User)
	assert.InDelta(t, 0.05, res.Config.Match.AmbiguityMargin, 0.001)
	assert.Equal(t, 30, res.Config.Legacy.SweepAfterDays)
}

func TestLoad_EnvVarOverride(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "fixtures.yaml")
	configContent := `
database:
  host: config-file-host
  port: 5432
`
	err := os.WriteFile(configPath, []byte(configContent), 0644)
	require.NoError(t, err)

	t.Setenv("WFF_DATABASE_HOST", "env-override-host")
	t.Setenv("WFF_IMPORT_SEASON_YEAR", "2025")

	res, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, "env-override-host", res.Config.Database.Host)
	assert.Equal(t, 2025, res.Config.Import.SeasonYear)
	assert.Equal(t, 5432, res.Config.Database.Port)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "no-such.yaml"))
	assert.Error(t, err)
}

func TestLoad_InvalidConfig(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "fixtures.yaml")
	configContent := `
database:
  ssl_mode: bogus
`
	err := os.WriteFile(configPath, []byte(configContent), 0644)
	require.NoError(t, err)

	_, err = Load(configPath)
	assert.Error(t, err)
}

func TestBindFlags(t *testing.T) {
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("host", "", "")
	cmd.Flags().Int("port", 0, "")
	cmd.Flags().Int("season-year", 0, "")
	cmd.Flags().String("legacy-dir", "", "")
	require.NoError(t, cmd.Flags().Set("host", "db.example.org"))
	require.NoError(t, cmd.Flags().Set("season-year", "2024"))
	require.NoError(t, cmd.Flags().Set("legacy-dir", t.TempDir()))

	cfg, err := BindFlags(cmd, config.Defaults())
	require.NoError(t, err)

	assert.Equal(t, "db.example.org", cfg.Database.Host)
	assert.Equal(t, 2024, cfg.Import.SeasonYear)
	assert.True(t, cfg.Legacy.Enabled)

	// Unset flags leave config values alone.
	assert.Equal(t, 5432, cfg.Database.Port)
}

func TestGenerateDefaultConfig(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)

	path, err := GenerateDefaultConfig()
	require.NoError(t, err)
	assert.Equal(t,
		filepath.Join(tempDir, ".config", "fixtures", "fixtures.yaml"), path)

	require.NoError(t, ValidateGeneratedConfig(path))

	// Second call must not overwrite.
	_, err = GenerateDefaultConfig()
	assert.Error(t, err)
}
