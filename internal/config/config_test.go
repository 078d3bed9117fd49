package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func write(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv(EnvConfig, "")
	t.Setenv(EnvLogLevel, "")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv(EnvConfig, "")
	t.Setenv(EnvLogLevel, "")
	write(t, filepath.Join(dir, DefaultPath), `
tools:
  drag: false
  num_objects: 3
  snap_tolerance: 2.5
  empty_value: "n/a"
  default_vertex: [1, 2]
fields:
  x: lon
  y: lat
log:
  level: debug
  format: json
`)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.False(t, cfg.Tools.Drag)
	assert.Equal(t, 3, cfg.Tools.NumObjects)
	assert.Equal(t, 2.5, cfg.Tools.SnapTolerance)
	assert.Equal(t, "n/a", cfg.Tools.EmptyValue)
	assert.Equal(t, []float64{1, 2}, cfg.Tools.DefaultVertex)
	assert.Equal(t, Fields{X: "lon", Y: "lat"}, cfg.Fields)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "file", cfg.Log.Output, "unset keys keep their defaults")
}

func TestLoadEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv(EnvConfig, "")
	t.Setenv(EnvLogLevel, "")
	write(t, filepath.Join(dir, "custom.yaml"), "fields:\n  x: a\n  y: b\n")
	write(t, filepath.Join(dir, ".env"), EnvConfig+"=custom.yaml\n"+EnvLogLevel+"=warn\n")
	// godotenv never overrides variables that are already set
	require.NoError(t, os.Unsetenv(EnvConfig))
	require.NoError(t, os.Unsetenv(EnvLogLevel))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Fields{X: "a", Y: "b"}, cfg.Fields)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv(EnvConfig, "")
	t.Setenv(EnvLogLevel, "")

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err, "an explicit path must exist")

	bad := filepath.Join(dir, "bad.yaml")
	write(t, bad, "tools: [")
	_, err = Load(bad)
	assert.Error(t, err)

	tests := []struct {
		name string
		body string
	}{
		{"no fields", "fields:\n  x: \"\"\n  y: \"\"\n"},
		{"negative cap", "tools:\n  num_objects: -1\n"},
		{"negative tolerance", "tools:\n  snap_tolerance: -2\n"},
		{"short default vertex", "tools:\n  default_vertex: [1]\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := filepath.Join(dir, "case.yaml")
			write(t, p, tt.body)
			_, err := Load(p)
			assert.Error(t, err)
		})
	}
}
