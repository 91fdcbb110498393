package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg := Load(filepath.Join(t.TempDir(), "forge.yaml"))
	assert.Contains(t, cfg.Detect.ServerIndicators, "express")
	assert.Empty(t, cfg.PackageManager)
}

func TestLoadOverridesTables(t *testing.T) {
	path := filepath.Join(t.TempDir(), "forge.yaml")
	content := `
detect:
  server_indicators:
    - myframework
  extra_exclusions:
    - generated
package_manager: brew
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg := Load(path)
	assert.Equal(t, []string{"myframework"}, cfg.Detect.ServerIndicators)
	assert.Equal(t, []string{"generated"}, cfg.Detect.ExtraExclusions)
	assert.Equal(t, "brew", cfg.PackageManager)
}

func TestLoadMalformedFileFallsBackToDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "forge.yaml")
	require.NoError(t, os.WriteFile(path, []byte("detect: [not: a: map"), 0644))

	cfg := Load(path)
	assert.Contains(t, cfg.Detect.ServerIndicators, "express")
}
