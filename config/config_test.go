package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/warp/settlement-engine/config"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 60*time.Second, cfg.Server.IdleTimeout)
	assert.NotEmpty(t, cfg.Server.AllowedOrigins)
	assert.Equal(t, "data", cfg.Data.Dir)
	assert.Empty(t, cfg.Data.Database)
	assert.Zero(t, cfg.Data.ReloadInterval)
	assert.Equal(t, "dataset_ripte.csv", cfg.Data.Files.RIPTE)
	assert.Equal(t, "Dataset_JUS.csv", cfg.Data.Files.JUS)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoad_MissingFile_UsesDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Address)
}

func TestLoad_YAMLFile(t *testing.T) {
	// GIVEN: A file overriding a few keys
	path := writeFile(t, "settlement.yaml", `
server:
  address: ":9090"
  readTimeout: 5s
  allowedOrigins:
    - https://estudio.example
data:
  dir: /srv/data
  database: /srv/settlement.db
  reloadInterval: 6h
  files:
    jus: jus.csv
logging:
  level: debug
  format: console
`)

	// WHEN: Loading
	cfg, err := config.Load(path)
	require.NoError(t, err)

	// THEN: Overrides apply, other keys keep defaults
	assert.Equal(t, ":9090", cfg.Server.Address)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 15*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, []string{"https://estudio.example"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "/srv/data", cfg.Data.Dir)
	assert.Equal(t, "/srv/settlement.db", cfg.Data.Database)
	assert.Equal(t, 6*time.Hour, cfg.Data.ReloadInterval)
	assert.Equal(t, "jus.csv", cfg.Data.Files.JUS)
	assert.Equal(t, "dataset_ipc.csv", cfg.Data.Files.IPC)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("SETTLEMENT_SERVER_ADDRESS", ":7000")
	t.Setenv("SETTLEMENT_DATA_DIR", "/tmp/ref")
	t.Setenv("SETTLEMENT_LOGGING_LEVEL", "warn")

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, ":7000", cfg.Server.Address)
	assert.Equal(t, "/tmp/ref", cfg.Data.Dir)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoad_InvalidValues(t *testing.T) {
	path := writeFile(t, "bad.yaml", "logging:\n  level: loud\n")

	_, err := config.Load(path)

	assert.ErrorContains(t, err, "invalid log level")
}

func TestNewLogger(t *testing.T) {
	logger, err := config.NewLogger(config.LoggingConfig{Level: "debug", Format: "console"}, "")
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))

	logger, err = config.NewLogger(config.LoggingConfig{Level: "debug"}, "error")
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.WarnLevel))

	_, err = config.NewLogger(config.LoggingConfig{Format: "xml"}, "")
	assert.Error(t, err)
}

func TestNewLogger_OutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "settlement.log")

	logger, err := config.NewLogger(config.LoggingConfig{OutputFile: path}, "")
	require.NoError(t, err)
	logger.Info("reference tables loaded")
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "reference tables loaded")
}
