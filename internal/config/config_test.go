package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.False(t, Exists())
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	cfg := DefaultConfig()
	cfg.Engine.AlwaysGenerateScenarios = true
	cfg.Source = SourceConfig{Kind: SourceRemote, BaseURL: "https://records.example.com/api/v1", Token: "abc"}
	cfg.Retry.RetryWait = Duration{250 * time.Millisecond}

	require.NoError(t, Save(cfg))
	assert.True(t, Exists())
	assert.Equal(t, filepath.Join(dir, "goalplan", "config.toml"), ConfigPath())

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadFrom_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[source]
kind = "file"
path = "plan.yaml"

[retry]
retry_wait = "2s"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, SourceFile, cfg.Source.Kind)
	assert.Equal(t, "plan.yaml", cfg.Source.Path)
	assert.Equal(t, 2*time.Second, cfg.Retry.RetryWait.Duration)
	assert.Equal(t, 3, cfg.Retry.MaxRetries)
	assert.Equal(t, 3, cfg.Engine.MaxAlternatives)
	assert.Equal(t, "table", cfg.Output.Format)
}

func TestLoadFrom_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"syntax", "[source\nkind=", "parsing config"},
		{"bad kind", "[source]\nkind = \"ftp\"", "invalid source kind"},
		{"file without path", "[source]\nkind = \"file\"", "needs a path"},
		{"bad duration", "[retry]\nretry_wait = \"soon\"", "parsing config"},
		{"bad format", "[output]\nformat = \"xml\"", "invalid output format"},
		{"negative retries", "[retry]\nmax_retries = -1", "max_retries"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o600))

			_, err := LoadFrom(path)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestEnvOverrides(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Source.Token = "from-config"
	cfg.Sentry.DSN = "https://config@sentry.example.com/1"

	t.Setenv("GOALPLAN_TOKEN", "")
	t.Setenv("SENTRY_DSN", "")
	assert.Equal(t, "from-config", GetToken(cfg))
	assert.Equal(t, "https://config@sentry.example.com/1", GetSentryDSN(cfg))

	t.Setenv("GOALPLAN_TOKEN", "from-env")
	t.Setenv("SENTRY_DSN", "https://env@sentry.example.com/2")
	assert.Equal(t, "from-env", GetToken(cfg))
	assert.Equal(t, "https://env@sentry.example.com/2", GetSentryDSN(cfg))
}

func TestDatabasePath(t *testing.T) {
	data := t.TempDir()
	t.Setenv("XDG_DATA_HOME", data)

	cfg := DefaultConfig()
	assert.Equal(t, filepath.Join(data, "goalplan", "goalplan.db"), DatabasePath(cfg))

	cfg.Source.Path = "/tmp/custom.db"
	assert.Equal(t, "/tmp/custom.db", DatabasePath(cfg))

	cfg.Source.Kind = SourceFile
	assert.Equal(t, filepath.Join(data, "goalplan", "goalplan.db"), DatabasePath(cfg))
}
