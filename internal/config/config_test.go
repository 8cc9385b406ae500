package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "http://localhost:8000", cfg.UserAPIURL)
	assert.Equal(t, "default", cfg.SessionScope)
	assert.NotEmpty(t, cfg.StateDir)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `user_api_url: https://api.example.com
ai_api_url: https://ai.example.com
session_scope: workbench
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.com", cfg.UserAPIURL)
	assert.Equal(t, "https://ai.example.com", cfg.AIAPIURL)
	assert.Equal(t, "workbench", cfg.SessionScope)
	// Unset keys keep their defaults.
	assert.Equal(t, "http://localhost:8001", cfg.DoctorAPIURL)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file not found")
}

func TestLoadFileInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("user_api_url: [broken"), 0o600))

	_, err := LoadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "IO-004")
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("user_api_url: https://file.example.com\n"), 0o600))

	t.Setenv(EnvUserAPIURL, "https://env.example.com")
	t.Setenv(EnvSessionScope, "tab-2")

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "https://env.example.com", cfg.UserAPIURL)
	assert.Equal(t, "tab-2", cfg.SessionScope)
}

func TestSessionFilePaths(t *testing.T) {
	cfg := Default()
	cfg.StateDir = "/tmp/state"
	cfg.SessionScope = "tab-1"

	assert.Equal(t, filepath.Join("/tmp/state", "sessions", "tab-1.json"), cfg.SessionFile())
	assert.Equal(t, filepath.Join("/tmp/state", "seal.key"), cfg.SealKeyFile())
}
