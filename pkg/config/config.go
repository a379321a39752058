// Package config provides configuration management for the fixtures
// pipeline.
//
// This package has no I/O dependencies (no file operations, no network
// calls). Loading from files, environment and flags happens in
// internal/ioconfig.
//
// Precedence (highest to lowest): CLI flags > env vars (WFF_*) >
// fixtures.yaml > defaults.
package config

import "time"

// Config represents the complete pipeline configuration.
type Config struct {
	// Database contains PostgreSQL connection settings.
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`

	// Import contains settings for fixture imports.
	Import ImportConfig `mapstructure:"import" yaml:"import"`

	// Match contains the entity resolver tuning knobs.
	Match MatchConfig `mapstructure:"match" yaml:"match"`

	// Email contains defaults used by the email assembler.
	Email EmailConfig `mapstructure:"email" yaml:"email"`

	// Maps configures the static map reference builder.
	Maps MapsConfig `mapstructure:"maps" yaml:"maps"`

	// Legacy configures the file-based task store bridge.
	Legacy LegacyConfig `mapstructure:"legacy" yaml:"legacy"`

	Log LogConfig `mapstructure:"log" yaml:"log"`
}

// DatabaseConfig contains PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string `mapstructure:"host" yaml:"host"`
	Port     int    `mapstructure:"port" yaml:"port"`
	User     string `mapstructure:"user" yaml:"user"`
	Password string `mapstructure:"password" yaml:"password"`
	Database string `mapstructure:"database" yaml:"database"`

	// SSLMode specifies the SSL connection mode.
	// Valid values: "disable", "require", "verify-ca", "verify-full"
	SSLMode string `mapstructure:"ssl_mode" yaml:"ssl_mode"`
}

// ImportConfig contains settings specific to fixture imports.
type ImportConfig struct {
	// SeasonYear is the year assumed for dates that arrive without one
	// ("Sat 14 Sep"). Zero means the current year.
	SeasonYear int `mapstructure:"season_year" yaml:"season_year"`

	// BatchSize defines how many rows are written per database batch.
	BatchSize int `mapstructure:"batch_size" yaml:"batch_size"`

	// FetchTimeout bounds URL imports of league fixture pages.
	FetchTimeout time.Duration `mapstructure:"fetch_timeout" yaml:"fetch_timeout"`
}

// MatchConfig contains the fuzzy name matching policy. The resolver
// accepts the best candidate only when its score reaches AcceptThreshold
// and the runner-up trails by at least AmbiguityMargin; anything else
// creates a new entity instead of risking a wrong merge.
type MatchConfig struct {
	AcceptThreshold float64 `mapstructure:"accept_threshold" yaml:"accept_threshold"`
	AmbiguityMargin float64 `mapstructure:"ambiguity_margin" yaml:"ambiguity_margin"`
}

// EmailConfig provides club-wide defaults for generated emails.
type EmailConfig struct {
	// HomeColours describes the club kit when a team has no stored kit.
	HomeColours string `mapstructure:"home_colours" yaml:"home_colours"`

	// RefereeNote is the default referees line.
	RefereeNote string `mapstructure:"referee_note" yaml:"referee_note"`

	// Signature closes every generated email.
	Signature string `mapstructure:"signature" yaml:"signature"`
}

// MapsConfig configures static map image generation.
type MapsConfig struct {
	// StaticKey is the Google Static Maps API key. Empty disables map
	// images; emails degrade to plain map links.
	StaticKey string `mapstructure:"static_key" yaml:"static_key"`

	// ImageSize is the requested static map size, e.g. "600x400".
	ImageSize string `mapstructure:"image_size" yaml:"image_size"`
}

// LegacyConfig configures the file-based task store used during the
// storage migration.
type LegacyConfig struct {
	// Enabled turns the dual-store synchronizer on.
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`

	// Dir is the root directory of per-organization task files.
	Dir string `mapstructure:"dir" yaml:"dir"`

	// SweepAfterDays is the retention window for completed tasks before
	// the archive sweep flags them.
	SweepAfterDays int `mapstructure:"sweep_after_days" yaml:"sweep_after_days"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json' or 'text'.
	Format string `mapstructure:"format" yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'.
	Level string `mapstructure:"level" yaml:"level"`
}

// Defaults returns a Config with sensible default values. The returned
// config is always valid and ready to use.
func Defaults() *Config {
	return &Config{
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "postgres",
			Password: "postgres",
			Database: "fixtures",
			SSLMode:  "disable",
		},
		Import: ImportConfig{
			SeasonYear:   0,
			BatchSize:    500,
			FetchTimeout: 30 * time.Second,
		},
		Match: MatchConfig{
			AcceptThreshold: 0.82,
			AmbiguityMargin: 0.05,
		},
		Email: EmailConfig{
			HomeColours: "Withdean Youth FC play in Blue and Black Shirts, Black Shorts and Blue and Black Hooped Socks",
			RefereeNote: "Referees have been requested for all fixtures but are as yet unconfirmed",
			Signature:   "Many thanks\n\nWithdean Youth FC",
		},
		Maps: MapsConfig{
			ImageSize: "600x400",
		},
		Legacy: LegacyConfig{
			Enabled:        false,
			Dir:            "",
			SweepAfterDays: 30,
		},
		Log: LogConfig{
			Format: "text",
			Level:  "info",
		},
	}
}

// MergeWithDefaults fills zero-valued fields from Defaults. It lets a
// partially filled config (sparse yaml file) stay valid.
func (c *Config) MergeWithDefaults() {
	d := Defaults()
	if c.Database.Host == "" {
		c.Database.Host = d.Database.Host
	}
	if c.Database.Port == 0 {
		c.Database.Port = d.Database.Port
	}
	if c.Database.User == "" {
		c.Database.User = d.Database.User
	}
	if c.Database.Password == "" {
		c.Database.Password = d.Database.Password
	}
	if c.Database.Database == "" {
		c.Database.Database = d.Database.Database
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = d.Database.SSLMode
	}
	if c.Import.BatchSize == 0 {
		c.Import.BatchSize = d.Import.BatchSize
	}
	if c.Import.FetchTimeout == 0 {
		c.Import.FetchTimeout = d.Import.FetchTimeout
	}
	if c.Match.AcceptThreshold == 0 {
		c.Match.AcceptThreshold = d.Match.AcceptThreshold
	}
	if c.Match.AmbiguityMargin == 0 {
		c.Match.AmbiguityMargin = d.Match.AmbiguityMargin
	}
	if c.Email.HomeColours == "" {
		c.Email.HomeColours = d.Email.HomeColours
	}
	if c.Email.RefereeNote == "" {
		c.Email.RefereeNote = d.Email.RefereeNote
	}
	if c.Email.Signature == "" {
		c.Email.Signature = d.Email.Signature
	}
	if c.Maps.ImageSize == "" {
		c.Maps.ImageSize = d.Maps.ImageSize
	}
	if c.Legacy.SweepAfterDays == 0 {
		c.Legacy.SweepAfterDays = d.Legacy.SweepAfterDays
	}
	if c.Log.Format == "" {
		c.Log.Format = d.Log.Format
	}
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
}

// Validate checks the configuration for values the pipeline cannot work
// with. A config produced by Defaults always validates.
func (c *Config) Validate() error {
	if c.Database.Port <= 0 || c.Database.Port > 65535 {
		return invalidPortError(c.Database.Port)
	}
	switch c.Database.SSLMode {
	case "disable", "require", "verify-ca", "verify-full":
	default:
		return invalidSSLModeError(c.Database.SSLMode)
	}
	if c.Match.AcceptThreshold <= 0 || c.Match.AcceptThreshold > 1 {
		return invalidThresholdError("match.accept_threshold",
			c.Match.AcceptThreshold)
	}
	if c.Match.AmbiguityMargin < 0 || c.Match.AmbiguityMargin >= 1 {
		return invalidThresholdError("match.ambiguity_margin",
			c.Match.AmbiguityMargin)
	}
	if c.Legacy.Enabled && c.Legacy.Dir == "" {
		return legacyDirMissingError()
	}
	return nil
}

// SeasonYearOrNow resolves the configured season year, falling back to
// the supplied current year.
func (c *ImportConfig) SeasonYearOrNow(now time.Time) int {
	if c.SeasonYear > 0 {
		return c.SeasonYear
	}
	return now.Year()
}
