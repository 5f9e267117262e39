package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	ws := t.TempDir()
	t.Chdir(t.TempDir())

	cfg, err := Load(filepath.Join(ws, "configs", "settings.toml"), false, ws)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(ws, "models"), cfg.ModelDir)
	assert.Equal(t, filepath.Join(ws, "catalog.db"), cfg.CatalogPath)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
}

func TestLoadFileAndEnv(t *testing.T) {
	ws := t.TempDir()
	t.Chdir(t.TempDir())
	path := filepath.Join(ws, "settings.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
model_dir = "/srv/models"

[logging]
level = "DEBUG"
format = "json"

[api]
bind = ":9000"
`), 0o644))
	t.Setenv("STYLOMETER_API_BIND", "127.0.0.1:9100")
	t.Setenv("STYLOMETER_API_MAX_TEXT_BYTES", "1024")

	cfg, err := Load(path, true, ws)
	require.NoError(t, err)
	assert.Equal(t, "/srv/models", cfg.ModelDir)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "127.0.0.1:9100", cfg.API.Bind)
	assert.Equal(t, int64(1024), cfg.API.MaxTextBytes)
}

func TestLoadDotEnv(t *testing.T) {
	ws := t.TempDir()
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("STYLOMETER_CATALOG=history.db\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("STYLOMETER_CATALOG") })

	cfg, err := Load("", false, ws)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(ws, "history.db"), cfg.CatalogPath)
}

func TestLoadExplicitMissingFile(t *testing.T) {
	t.Chdir(t.TempDir())
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"), true, t.TempDir())
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Default("")
	cfg.Logging.Format = "xml"
	cfg.ModelDir = ""
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model_dir")
	assert.Contains(t, err.Error(), `"xml"`)
}
