package ioconfig

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/brucewayne1212/withdean-football-fixtures/pkg/config"
	"gopkg.in/yaml.v3"
)

// GetConfigDir returns the configuration directory for the fixtures
// pipeline, ~/.config/fixtures/ on every platform.
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(homeDir, ".config", "fixtures"), nil
}

// GetDefaultConfigPath returns the full path to the default config file.
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "fixtures.yaml"), nil
}

// GenerateDefaultConfig creates a documented default config file.
// Returns the path where the config was created. Does NOT overwrite an
// existing config file.
func GenerateDefaultConfig() (string, error) {
	configPath, err := GetDefaultConfigPath()
	if err != nil {
		return "", err
	}

	if _, err := os.Stat(configPath); err == nil {
		return "", fmt.Errorf("config file already exists at %s", configPath)
	}

	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	d := config.Defaults()

	yamlContent := `# Fixtures pipeline configuration.
# This file was auto-generated. Edit as needed.
#
# Configuration precedence (highest to lowest):
#   1. CLI flags (--host, --port, etc.)
#   2. Environment variables (WFF_*)
#   3. This config file
#   4. Built-in defaults

database:
  host: ` + d.Database.Host + `
  port: ` + fmt.Sprintf("%d", d.Database.Port) + `
  user: ` + d.Database.User + `
  password: ` + d.Database.Password + `
  database: ` + d.Database.Database + `
  ssl_mode: ` + d.Database.SSLMode + `

import:
  # Year assumed for dates that arrive without one, 0 means current year.
  season_year: ` + fmt.Sprintf("%d", d.Import.SeasonYear) + `
  batch_size: ` + fmt.Sprintf("%d", d.Import.BatchSize) + `
  # fetch_timeout: ` + d.Import.FetchTimeout.String() + `

match:
  accept_threshold: ` + fmt.Sprintf("%.2f", d.Match.AcceptThreshold) + `
  ambiguity_margin: ` + fmt.Sprintf("%.2f", d.Match.AmbiguityMargin) + `

maps:
  # Google Static Maps API key. Empty disables map images.
  static_key: ""
  image_size: ` + d.Maps.ImageSize + `

legacy:
  # Dual-store bridge for the file-based task store.
  enabled: ` + fmt.Sprintf("%t", d.Legacy.Enabled) + `
  dir: ""
  sweep_after_days: ` + fmt.Sprintf("%d", d.Legacy.SweepAfterDays) + `

log:
  format: ` + d.Log.Format + `
  level: ` + d.Log.Level + `
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}

	return configPath, nil
}

// ConfigFileExists checks if a config file exists at the default location.
func ConfigFileExists() (bool, error) {
	configPath, err := GetDefaultConfigPath()
	if err != nil {
		return false, err
	}

	_, err = os.Stat(configPath)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// ValidateGeneratedConfig reads and validates a generated config file.
// Used for testing to ensure generated YAML is valid.
func ValidateGeneratedConfig(configPath string) error {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg config.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("invalid YAML: %w", err)
	}

	cfg.MergeWithDefaults()

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	return nil
}
