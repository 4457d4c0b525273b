package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWhenNothingSet(t *testing.T) {
	t.Setenv("GANTTFORM_CONFIG", filepath.Join(t.TempDir(), "nope.toml"))
	t.Setenv("GANTTFORM_DB", "")
	t.Setenv("GANTTFORM_COLOR", "")
	t.Setenv("GANTTFORM_LOG_USE_CASES", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Contains(t, cfg.DBPath, ".ganttform")
	assert.True(t, cfg.Color)
	assert.False(t, cfg.LogUseCases)
}

func TestLoad_ReadsTOMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(
		"db_path = \"/tmp/custom.db\"\ncolor = false\nlog_use_cases = true\n",
	), 0o600))
	t.Setenv("GANTTFORM_CONFIG", path)
	t.Setenv("GANTTFORM_DB", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/custom.db", cfg.DBPath)
	assert.False(t, cfg.Color)
	assert.True(t, cfg.LogUseCases)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("db_path = \"/tmp/file.db\"\n"), 0o600))
	t.Setenv("GANTTFORM_CONFIG", path)
	t.Setenv("GANTTFORM_DB", "/tmp/env.db")
	t.Setenv("GANTTFORM_COLOR", "false")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/env.db", cfg.DBPath)
	assert.False(t, cfg.Color)
}

func TestLoad_BadTOMLIsAnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("db_path = [unclosed"), 0o600))
	t.Setenv("GANTTFORM_CONFIG", path)

	_, err := Load()
	assert.Error(t, err)
}
