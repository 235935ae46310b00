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
	assert.Equal(t, "For", cfg.GalaxyFilter)
	assert.Equal(t, "Eu", cfg.TracerElement)
	assert.Equal(t, 30.0, cfg.MissingSentinel)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("galaxyFilter: Scl\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Scl", cfg.GalaxyFilter)
	assert.Equal(t, "Eu", cfg.TracerElement)
	assert.Equal(t, 30.0, cfg.MissingSentinel)
}

func TestLoadRejectsBlankFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tracerElement: \"  \"\n"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
