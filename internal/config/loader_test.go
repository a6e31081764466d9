package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Empty(t, cfg.API.URL)
	assert.False(t, cfg.Demo)
	assert.Equal(t, "table", cfg.Output)
	assert.Equal(t, "@every 30s", cfg.Exporter.Schedule)
	assert.Equal(t, slog.LevelInfo, cfg.Log.SlogLevel())
	assert.NotEmpty(t, cfg.State.Path)
}

func TestLoadFileEnvAndFlags(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "trackerctl.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`
api:
  url: http://tracker.example:8080
  token: from-file
  rate_limit: 60
log:
  level: debug
`), 0o600))

	t.Setenv("TRACKERCTL_API_TOKEN", "from-env")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Bool("demo", false, "")
	flags.String("output", "table", "")
	require.NoError(t, flags.Parse([]string{"--demo", "--output", "yaml"}))

	cfg, err := Load(file, flags)
	require.NoError(t, err)

	assert.Equal(t, "http://tracker.example:8080", cfg.API.URL)
	assert.Equal(t, "from-env", cfg.API.Token)
	assert.Equal(t, 60, cfg.API.RateLimit)
	assert.True(t, cfg.Demo)
	assert.Equal(t, "yaml", cfg.Output)
	assert.Equal(t, slog.LevelDebug, cfg.Log.SlogLevel())
}

func TestLoadRejectsBrokenFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(file, []byte("api: [unterminated"), 0o600))

	_, err := Load(file, nil)
	require.Error(t, err)
}
