package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmptyPathUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "usa", cfg.Defaults.Country)
	assert.Equal(t, 15, cfg.Defaults.ResultsWanted)
	assert.Equal(t, "markdown", cfg.Defaults.DescriptionFormat)
	assert.Equal(t, 700000.0, cfg.Salary.UpperAnnual)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobscout.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
defaults:
  country: germany
  results_wanted: 40
rate:
  per_host_rps: 1
salary:
  hourly_threshold: 200
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "germany", cfg.Defaults.Country)
	assert.Equal(t, 40, cfg.Defaults.ResultsWanted)
	assert.Equal(t, 1, cfg.Rate.PerHostRPS)
	assert.Equal(t, 200.0, cfg.Salary.HourlyThreshold)
	// untouched keys keep their defaults
	assert.Equal(t, "markdown", cfg.Defaults.DescriptionFormat)
	assert.Equal(t, 1000.0, cfg.Salary.LowerAnnual)
}

func TestLoadMissingFileErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadMalformedYAMLErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("defaults: [not a map"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}
