// Package config loads the goalplan configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Source kinds
const (
	SourceFile   = "file"
	SourceSQLite = "sqlite"
	SourceRemote = "remote"
)

// Config holds all goalplan configuration.
type Config struct {
	Engine EngineConfig `toml:"engine"`
	Source SourceConfig `toml:"source"`
	Retry  RetryConfig  `toml:"retry"`
	Sentry SentryConfig `toml:"sentry"`
	Output OutputConfig `toml:"output"`
}

// EngineConfig holds evaluation preferences.
type EngineConfig struct {
	AlwaysGenerateScenarios bool `toml:"always_generate_scenarios"`
	MaxAlternatives         int  `toml:"max_alternatives"`
}

// SourceConfig selects where goals and records are read from.
type SourceConfig struct {
	Kind    string `toml:"kind"`
	Path    string `toml:"path,omitempty"`
	BaseURL string `toml:"base_url,omitempty"`
	Token   string `toml:"token,omitempty"`
}

// RetryConfig holds retry settings for the record API.
type RetryConfig struct {
	MaxRetries int      `toml:"max_retries"`
	RetryWait  Duration `toml:"retry_wait"`
	MaxWait    Duration `toml:"max_wait"`
}

// SentryConfig holds error tracking settings.
type SentryConfig struct {
	DSN         string `toml:"dsn,omitempty"`
	Environment string `toml:"environment,omitempty"`
}

// OutputConfig holds report output settings.
type OutputConfig struct {
	Format string `toml:"format"`
	Dir    string `toml:"dir,omitempty"`
}

// Duration is a time.Duration written as a string such as "500ms".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Engine: EngineConfig{
			MaxAlternatives: 3,
		},
		Source: SourceConfig{
			Kind: SourceSQLite,
		},
		Retry: RetryConfig{
			MaxRetries: 3,
			RetryWait:  Duration{time.Second},
			MaxWait:    Duration{30 * time.Second},
		},
		Sentry: SentryConfig{
			Environment: "production",
		},
		Output: OutputConfig{
			Format: "table",
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "goalplan")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "goalplan")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// DataDir returns the XDG-compliant data directory.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "goalplan")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "goalplan")
}

// DatabasePath returns the SQLite path, from config or the data directory.
func DatabasePath(cfg Config) string {
	if cfg.Source.Kind == SourceSQLite && cfg.Source.Path != "" {
		return cfg.Source.Path
	}
	return filepath.Join(DataDir(), "goalplan.db")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	return LoadFrom(ConfigPath())
}

// LoadFrom reads the config file at path, returning defaults if it doesn't exist.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail later at use.
func (c Config) Validate() error {
	switch c.Source.Kind {
	case SourceFile, SourceSQLite, SourceRemote:
	default:
		return fmt.Errorf("invalid source kind %q: want file, sqlite or remote", c.Source.Kind)
	}
	if c.Source.Kind == SourceFile && c.Source.Path == "" {
		return fmt.Errorf("source kind file needs a path")
	}
	if c.Retry.MaxRetries < 0 {
		return fmt.Errorf("retry.max_retries must not be negative")
	}
	switch c.Output.Format {
	case "table", "json":
	default:
		return fmt.Errorf("invalid output format %q: want table or json", c.Output.Format)
	}
	return nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	return SaveTo(ConfigPath(), cfg)
}

// SaveTo writes the config to path.
func SaveTo(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// GetToken returns the record API token from env var or config, in that order.
func GetToken(cfg Config) string {
	if token := os.Getenv("GOALPLAN_TOKEN"); token != "" {
		return token
	}
	return cfg.Source.Token
}

// GetSentryDSN returns the Sentry DSN from env var or config, in that order.
func GetSentryDSN(cfg Config) string {
	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		return dsn
	}
	return cfg.Sentry.DSN
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}
