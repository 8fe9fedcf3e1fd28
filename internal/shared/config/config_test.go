package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "server.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadServerConfig_Defaults(t *testing.T) {
	path := writeConfig(t, `
auth:
  jwt_secret: "test-secret"
`)

	cfg, err := LoadServerConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":3000", cfg.App.Listen)
	assert.Equal(t, "release", cfg.App.Mode)
	assert.Equal(t, Duration(7*24*time.Hour), cfg.Auth.TokenExpiry)
	assert.Equal(t, "data/tracker-data.json", cfg.Data.TrackerFile)
	assert.False(t, cfg.Cleanup.Enabled)
	assert.Equal(t, 30, cfg.Cleanup.RetentionDays)
}

func TestLoadServerConfig_Overrides(t *testing.T) {
	path := writeConfig(t, `
app:
  listen: ":8080"
  mode: "debug"
auth:
  jwt_secret: "test-secret"
  token_expiry: 24h
cleanup:
  enabled: true
  retention_days: 14
`)

	cfg, err := LoadServerConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.App.Listen)
	assert.Equal(t, "debug", cfg.App.Mode)
	assert.Equal(t, Duration(24*time.Hour), cfg.Auth.TokenExpiry)
	assert.True(t, cfg.Cleanup.Enabled)
	assert.Equal(t, 14, cfg.Cleanup.RetentionDays)
}

func TestLoadServerConfig_EnvOverridesSecret(t *testing.T) {
	path := writeConfig(t, `
auth:
  jwt_secret: "file-secret"
`)

	t.Setenv("JWT_SECRET", "env-secret")

	cfg, err := LoadServerConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "env-secret", cfg.Auth.JWTSecret)
}

func TestLoadServerConfig_MissingSecret(t *testing.T) {
	path := writeConfig(t, `
app:
  listen: ":8080"
`)

	t.Setenv("JWT_SECRET", "")

	_, err := LoadServerConfig(path)
	assert.Error(t, err)
}

func TestLoadServerConfig_MissingFile(t *testing.T) {
	_, err := LoadServerConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
