package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, []string{"Tyler", "Hanna"}, cfg.Score.DefaultPlayers)
	assert.Empty(t, cfg.Store.Path)
}

func TestValidate(t *testing.T) {
	cases := map[string]func(c *Config){
		"level":   func(c *Config) { c.Log.Level = "loud" },
		"format":  func(c *Config) { c.Log.Format = "xml" },
		"players": func(c *Config) { c.Score.DefaultPlayers = []string{"Ann", " "} },
		"export":  func(c *Config) { c.Pantry.ExportDir = "" },
	}
	for name, mutate := range cases {
		cfg := DefaultConfig()
		mutate(cfg)
		assert.Error(t, cfg.Validate(), name)
	}
}

func TestMergeKeepsZeroFields(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Merge(&Config{Log: LogConfig{Level: "debug"}, Pantry: PantryConfig{ExportDir: "/tmp/out"}})
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "auto", cfg.Log.Format)
	assert.Equal(t, "/tmp/out", cfg.Pantry.ExportDir)
	assert.Equal(t, []string{"Tyler", "Hanna"}, cfg.Score.DefaultPlayers)

	cfg.Merge(nil)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestSaveAndLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultConfig()
	cfg.Store.Path = "/data/hearth.db"
	require.NoError(t, cfg.SaveToFile(path))

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)

	_, err = LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoaderLayering(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("HEARTH_DB", "")

	writeFile(t, filepath.Join(home, UserConfigDir, UserConfigFile), `
log:
  level: info
score:
  default_players: [Ann, Bo, Cy]
`)
	explicit := filepath.Join(t.TempDir(), "override.yaml")
	writeFile(t, explicit, `
log:
  level: debug
store:
  path: /from/file.db
`)

	cfg, err := NewLoader(nil).Load(explicit)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "auto", cfg.Log.Format)
	assert.Equal(t, []string{"Ann", "Bo", "Cy"}, cfg.Score.DefaultPlayers)
	assert.Equal(t, "/from/file.db", cfg.Store.Path)

	t.Setenv("HEARTH_DB", "/from/env.db")
	cfg, err = NewLoader(nil).Load(explicit)
	require.NoError(t, err)
	assert.Equal(t, "/from/env.db", cfg.Store.Path)
}

func TestLoaderErrors(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("HEARTH_DB", "")

	_, err := NewLoader(nil).Load(filepath.Join(home, "nope.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(home, "bad.yaml")
	writeFile(t, bad, "log:\n  format: xml\n")
	_, err = NewLoader(nil).Load(bad)
	assert.ErrorContains(t, err, "log.format")

	// no user file at all is fine
	cfg, err := NewLoader(nil).Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestEnsureUserConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path, created, err := NewLoader(nil).EnsureUserConfig()
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, filepath.Join(home, UserConfigDir, UserConfigFile), path)

	_, created, err = NewLoader(nil).EnsureUserConfig()
	require.NoError(t, err)
	assert.False(t, created)
}
