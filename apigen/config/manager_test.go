package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewManager_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	m := NewManager()
	require.NoError(t, m.Load())

	cfg, err := m.GetConfig()
	require.NoError(t, err)
	assert.Equal(t, "generated", cfg.Package)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestManager_LoadsConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "apigen.yaml")
	require.NoError(t, os.WriteFile(path, []byte("package: widgets\nlog_level: debug\ninput: widgets.yaml\n"), 0o644))

	m := NewManagerWithOptions(WithConfigFile(path))
	require.NoError(t, m.Load())

	cfg, err := m.GetConfig()
	require.NoError(t, err)
	assert.Equal(t, "widgets", cfg.Package)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "widgets.yaml", cfg.Input)
}

func TestManager_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "apigen.yaml")
	require.NoError(t, os.WriteFile(path, []byte("package: widgets\n"), 0o644))

	t.Setenv("APIGEN_PACKAGE", "sprockets")

	m := NewManagerWithOptions(WithConfigFile(path))
	require.NoError(t, m.Load())

	assert.Equal(t, "sprockets", m.Get("package"))
}

func TestManager_Set(t *testing.T) {
	t.Chdir(t.TempDir())

	m := NewManager()
	require.NoError(t, m.Load())

	m.Set("output", "out.go")
	assert.Equal(t, "out.go", m.Get("output"))
}
