// Package ioconfig loads configuration from files, environment
// variables and flags. It is an impure package; the configuration
// types themselves live in pkg/config.
package ioconfig

import (
	"fmt"
	"os"
	"strings"

	"github.com/brucewayne1212/withdean-football-fixtures/pkg/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// LoadResult contains the loaded configuration and metadata about the source.
type LoadResult struct {
	Config     *config.Config
	SourcePath string // Path to config file used, or empty if using defaults
	Source     string // "file", "defaults", or "defaults+env"
}

// Load reads configuration from a YAML file and returns a validated
// Config with source info. If configPath is empty, it falls back to the
// default location (~/.config/fixtures/fixtures.yaml).
//
// Precedence: flags > WFF_* env vars > config file > defaults.
func Load(configPath string) (*LoadResult, error) {
	v := viper.New()

	v.SetConfigType("yaml")

	v.SetEnvPrefix("WFF")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Defaults go in before the file is read so AutomaticEnv knows
	// which keys to check.
	defaults := config.Defaults()
	v.SetDefault("database.host", defaults.Database.Host)
	v.SetDefault("database.port", defaults.Database.Port)
	v.SetDefault("database.user", defaults.Database.User)
	v.SetDefault("database.password", defaults.Database.Password)
	v.SetDefault("database.database", defaults.Database.Database)
	v.SetDefault("database.ssl_mode", defaults.Database.SSLMode)
	v.SetDefault("import.season_year", defaults.Import.SeasonYear)
	v.SetDefault("import.batch_size", defaults.Import.BatchSize)
	v.SetDefault("import.fetch_timeout", defaults.Import.FetchTimeout)
	v.SetDefault("match.accept_threshold", defaults.Match.AcceptThreshold)
	v.SetDefault("match.ambiguity_margin", defaults.Match.AmbiguityMargin)
	v.SetDefault("email.home_colours", defaults.Email.HomeColours)
	v.SetDefault("email.referee_note", defaults.Email.RefereeNote)
	v.SetDefault("email.signature", defaults.Email.Signature)
	v.SetDefault("maps.static_key", defaults.Maps.StaticKey)
	v.SetDefault("maps.image_size", defaults.Maps.ImageSize)
	v.SetDefault("legacy.enabled", defaults.Legacy.Enabled)
	v.SetDefault("legacy.dir", defaults.Legacy.Dir)
	v.SetDefault("legacy.sweep_after_days", defaults.Legacy.SweepAfterDays)
	v.SetDefault("log.format", defaults.Log.Format)
	v.SetDefault("log.level", defaults.Log.Level)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		defaultPath, err := GetDefaultConfigPath()
		if err == nil {
			if _, statErr := os.Stat(defaultPath); statErr == nil {
				v.SetConfigFile(defaultPath)
			}
		}
	}

	configFileRead := false
	usedConfigPath := ""

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if configPath != "" {
				return nil, fmt.Errorf("config file not found: %s", configPath)
			}
			// No config file in default location, use defaults + env.
		} else if configPath != "" || v.ConfigFileUsed() != "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		configFileRead = true
		usedConfigPath = v.ConfigFileUsed()
	}

	var cfg config.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.MergeWithDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	source := "defaults"
	if configFileRead {
		source = "file"
	} else if hasEnvVars() {
		source = "defaults+env"
	}

	return &LoadResult{
		Config:     &cfg,
		SourcePath: usedConfigPath,
		Source:     source,
	}, nil
}

// hasEnvVars checks if any WFF_* environment variables are set.
func hasEnvVars() bool {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "WFF_") {
			return true
		}
	}
	return false
}

// BindFlags overrides config values from cobra command flags.
// CLI flags take precedence over config file values.
func BindFlags(cmd *cobra.Command, cfg *config.Config) (*config.Config, error) {
	v := viper.New()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, fmt.Errorf("failed to bind flags: %w", err)
	}

	if v.IsSet("host") {
		cfg.Database.Host = v.GetString("host")
	}
	if v.IsSet("port") {
		cfg.Database.Port = v.GetInt("port")
	}
	if v.IsSet("user") {
		cfg.Database.User = v.GetString("user")
	}
	if v.IsSet("password") {
		cfg.Database.Password = v.GetString("password")
	}
	if v.IsSet("database") {
		cfg.Database.Database = v.GetString("database")
	}
	if v.IsSet("ssl-mode") {
		cfg.Database.SSLMode = v.GetString("ssl-mode")
	}
	if v.IsSet("season-year") {
		cfg.Import.SeasonYear = v.GetInt("season-year")
	}
	if v.IsSet("legacy-dir") {
		cfg.Legacy.Dir = v.GetString("legacy-dir")
		cfg.Legacy.Enabled = cfg.Legacy.Dir != ""
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration after flag binding: %w", err)
	}

	return cfg, nil
}
