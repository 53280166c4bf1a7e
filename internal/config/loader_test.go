package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/analyst-desk/analyst/internal/constants"
)

func newTestLoader(t *testing.T) *Loader {
	t.Helper()
	return &Loader{homeDir: t.TempDir()}
}

func TestLoader_Load_Defaults(t *testing.T) {
	loader := newTestLoader(t)

	cfg, err := loader.Load()
	require.NoError(t, err)

	assert.Equal(t, constants.DefaultEndpoint, cfg.Endpoint)
	assert.Equal(t, 300*time.Millisecond, cfg.AnimationInterval)
	assert.Equal(t, time.Duration(0), cfg.RequestTimeout)
	assert.Equal(t, 30, cfg.UI.LeftPanelPercent)
	assert.Equal(t, constants.DefaultStubAddr, cfg.Stub.Addr)
}

func TestLoader_SaveAndLoad(t *testing.T) {
	loader := newTestLoader(t)

	cfg := Default()
	cfg.Endpoint = "https://analyst.example.com/analyst_chat"
	cfg.AnimationInterval = 150 * time.Millisecond
	cfg.Stub.Delay = 2 * time.Second

	require.NoError(t, loader.Save(cfg))
	assert.FileExists(t, loader.ConfigPath())

	loaded, err := loader.Load()
	require.NoError(t, err)
	assert.Equal(t, cfg.Endpoint, loaded.Endpoint)
	assert.Equal(t, cfg.AnimationInterval, loaded.AnimationInterval)
	assert.Equal(t, cfg.Stub.Delay, loaded.Stub.Delay)
}

func TestLoader_Load_FileThenDotenvThenEnv(t *testing.T) {
	loader := newTestLoader(t)

	require.NoError(t, os.MkdirAll(loader.Dir(), 0o755))
	yamlData := []byte(`
endpoint: http://file.example.com/analyst_chat
animation_interval: 500ms
log:
  level: warn
stub:
  addr: 127.0.0.1:9000
`)
	require.NoError(t, os.WriteFile(loader.ConfigPath(), yamlData, 0o600))

	dotenv := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(dotenv, []byte("ANALYST_ENDPOINT=http://dotenv.example.com/analyst_chat\nANALYST_LOG_LEVEL=debug\n"), 0o600))
	loader.WithDotenv(dotenv)

	t.Setenv("ANALYST_LOG_LEVEL", "error")

	cfg, err := loader.Load()
	require.NoError(t, err)

	// File beats defaults.
	assert.Equal(t, 500*time.Millisecond, cfg.AnimationInterval)
	assert.Equal(t, "127.0.0.1:9000", cfg.Stub.Addr)
	// Dotenv beats file.
	assert.Equal(t, "http://dotenv.example.com/analyst_chat", cfg.Endpoint)
	// Process env beats dotenv.
	assert.Equal(t, "error", cfg.Log.Level)
}

func TestLoader_Load_ExplicitPathMissing(t *testing.T) {
	loader := newTestLoader(t).WithConfigPath(filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := loader.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestLoader_Load_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("endpoint: [unclosed"), 0o600))

	_, err := newTestLoader(t).WithConfigPath(path).Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config")
}

func TestLoader_Load_InvalidEnvValue(t *testing.T) {
	t.Setenv("ANALYST_ANIMATION_INTERVAL", "fast")

	_, err := newTestLoader(t).Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ANALYST_ANIMATION_INTERVAL")
}

func TestNewLoader_ConfigEnvOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("ANALYST_CONFIG", dir)

	loader := NewLoader()
	assert.Equal(t, filepath.Join(dir, constants.DefaultDir, constants.ConfigFile), loader.ConfigPath())
}
