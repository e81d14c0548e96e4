package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"

	"github.com/nikbrunner/mbm/internal/config"
)

func TestLoad_CreatesFileWithDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	cfg, err := config.Load(path)
	assert.NilError(t, err)

	assert.Equal(t, cfg.DataDir, dir)
	assert.Equal(t, cfg.Storage, "sqlite")
	assert.Equal(t, cfg.SnackbarSeconds, 4)
	assert.Equal(t, cfg.Check.Concurrency, 10)
	assert.DeepEqual(t, cfg.Check.ExcludeDomains, []string{"github.com", "gitlab.com"})

	_, err = os.Stat(path)
	assert.NilError(t, err)
}

func TestLoad_ReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
storage: json
snackbar_seconds: 9
logging:
  level: debug
check:
  exclude_domains: [example.com]
`
	assert.NilError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := config.Load(path)
	assert.NilError(t, err)

	assert.Equal(t, cfg.Storage, "json")
	assert.Equal(t, cfg.SnackbarSeconds, 9)
	assert.Equal(t, cfg.Logging.Level, "debug")
	assert.Equal(t, cfg.Logging.Format, "json")
	assert.DeepEqual(t, cfg.Check.ExcludeDomains, []string{"example.com"})
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	assert.NilError(t, os.WriteFile(path, []byte("storage: json\n"), 0644))
	t.Setenv("MBM_STORAGE", "sqlite")
	t.Setenv("MBM_LOGGING_LEVEL", "error")

	cfg, err := config.Load(path)
	assert.NilError(t, err)

	assert.Equal(t, cfg.Storage, "sqlite")
	assert.Equal(t, cfg.Logging.Level, "error")
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	assert.NilError(t, os.WriteFile(path, []byte("storage: [unclosed\n"), 0644))

	_, err := config.Load(path)
	assert.ErrorContains(t, err, "read config")
}

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := config.Default("/tmp/mbm")
	cfg.SnackbarSeconds = 2

	assert.NilError(t, config.Save(path, &cfg))

	loaded, err := config.Load(path)
	assert.NilError(t, err)
	assert.Equal(t, loaded.SnackbarSeconds, 2)
	assert.Equal(t, loaded.DataDir, "/tmp/mbm")
	assert.Check(t, is.Len(loaded.Check.ExcludeDomains, 2))
}
