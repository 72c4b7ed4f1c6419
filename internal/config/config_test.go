package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigSaveLoad(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.yaml")

	original := Config{
		DataDir:          "/test/data",
		DefaultFramework: "vue",
		Version:          "1.0",
	}

	require.NoError(t, original.SaveTo(configPath))

	loaded, err := LoadFrom(configPath)
	require.NoError(t, err)

	assert.Equal(t, original.DataDir, loaded.DataDir)
	assert.Equal(t, original.DefaultFramework, loaded.DefaultFramework)
	assert.Equal(t, original.Version, loaded.Version)
	assert.NotZero(t, loaded.InitTime, "first save should stamp init time")
}

func TestConfigSaveTo_CreatesDirectory(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "nested", "dir", "config.yaml")

	cfg := DefaultConfig()
	require.NoError(t, cfg.SaveTo(configPath))

	loaded, err := LoadFrom(configPath)
	require.NoError(t, err)
	assert.Equal(t, "react", loaded.DefaultFramework)
}

func TestLoadFrom_MissingFile(t *testing.T) {
	_, err := LoadFrom(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "react", cfg.DefaultFramework)
	assert.Empty(t, cfg.DataDir)
	assert.Zero(t, cfg.InitTime)
}
