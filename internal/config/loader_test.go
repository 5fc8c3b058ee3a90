package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIsolatedLoader() *Loader {
	return NewLoaderWithViper(viper.New())
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "shelfscan.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoader_DefaultsWithoutFile(t *testing.T) {
	loader := newIsolatedLoader()
	// Point the search at an empty directory so no real config is picked up.
	loader.GetViper().AddConfigPath(t.TempDir())

	cfg, err := loader.Load()
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 3, cfg.Pipeline.Classifier.TopK)
}

func TestLoader_LoadWithFile(t *testing.T) {
	path := writeConfigFile(t, `
log_level: debug
models_dir: /srv/models
pipeline:
  classifier:
    top_k: 5
server:
  port: 9191
  rate_limit:
    requests_per_minute: 10
`)

	cfg, err := newIsolatedLoader().LoadWithFile(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "/srv/models", cfg.ModelsDir)
	assert.Equal(t, 5, cfg.Pipeline.Classifier.TopK)
	assert.Equal(t, 9191, cfg.Server.Port)
	assert.Equal(t, 10, cfg.Server.RateLimit.RequestsPerMinute)

	// Untouched keys keep their defaults.
	assert.Equal(t, "json", cfg.Output.Format)
	assert.Equal(t, int64(50), cfg.Server.MaxUploadMB)
}

func TestLoader_LoadWithFile_Missing(t *testing.T) {
	_, err := newIsolatedLoader().LoadWithFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")
}

func TestLoader_LoadWithFile_InvalidValues(t *testing.T) {
	path := writeConfigFile(t, "log_level: loud\n")

	_, err := newIsolatedLoader().LoadWithFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestLoader_EnvironmentOverride(t *testing.T) {
	t.Setenv("SHELFSCAN_LOG_LEVEL", "warn")

	loader := newIsolatedLoader()
	loader.GetViper().AddConfigPath(t.TempDir())

	cfg, err := loader.Load()
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestGenerateDefaultConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "generated.yaml")
	require.NoError(t, GenerateDefaultConfigFile(path))

	cfg, err := newIsolatedLoader().LoadWithFile(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Server.Port, cfg.Server.Port)
}

func TestGetConfigSearchPaths(t *testing.T) {
	paths := GetConfigSearchPaths()
	require.NotEmpty(t, paths)
	assert.Equal(t, ".", paths[0])
	assert.Contains(t, paths, "/etc/shelfscan")
}
