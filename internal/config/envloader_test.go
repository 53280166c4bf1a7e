package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromEnv_AllKinds(t *testing.T) {
	t.Setenv("ANALYST_ENDPOINT", "http://example.com/analyst_chat")
	t.Setenv("ANALYST_REQUEST_TIMEOUT", "45s")
	t.Setenv("ANALYST_UI_LEFT_PERCENT", "40")
	t.Setenv("ANALYST_UI_ALT_SCREEN", "false")
	t.Setenv("ANALYST_STUB_RATE_LIMIT", "2.5")
	t.Setenv("ANALYST_STUB_SEED", "7")

	cfg := Default()
	require.NoError(t, LoadFromEnv(cfg))

	assert.Equal(t, "http://example.com/analyst_chat", cfg.Endpoint)
	assert.Equal(t, 45*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 40, cfg.UI.LeftPanelPercent)
	assert.False(t, cfg.UI.AltScreen)
	assert.InDelta(t, 2.5, cfg.Stub.RateLimit, 0.0001)
	assert.Equal(t, int64(7), cfg.Stub.Seed)
}

func TestLoadFromEnv_InvalidValues(t *testing.T) {
	tests := []struct {
		env   string
		value string
	}{
		{"ANALYST_REQUEST_TIMEOUT", "soon"},
		{"ANALYST_UI_LEFT_PERCENT", "wide"},
		{"ANALYST_UI_ALT_SCREEN", "maybe"},
		{"ANALYST_STUB_RATE_LIMIT", "lots"},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			t.Setenv(tt.env, tt.value)

			err := LoadFromEnv(Default())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.env)
		})
	}
}

func TestLoadFromEnv_EmptyValueIgnored(t *testing.T) {
	t.Setenv("ANALYST_ENDPOINT", "")

	cfg := Default()
	require.NoError(t, LoadFromEnv(cfg))
	assert.Equal(t, Default().Endpoint, cfg.Endpoint)
}

func TestEnvLookup(t *testing.T) {
	dotenv := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(dotenv, []byte("ANALYST_ONLY_DOTENV=a\nANALYST_BOTH=dotenv\n"), 0o600))
	t.Setenv("ANALYST_BOTH", "process")

	lookup, err := EnvLookup(dotenv)
	require.NoError(t, err)

	v, ok := lookup("ANALYST_ONLY_DOTENV")
	assert.True(t, ok)
	assert.Equal(t, "a", v)

	v, ok = lookup("ANALYST_BOTH")
	assert.True(t, ok)
	assert.Equal(t, "process", v)

	_, ok = lookup("ANALYST_MISSING")
	assert.False(t, ok)
}

func TestEnvLookup_MissingFile(t *testing.T) {
	lookup, err := EnvLookup(filepath.Join(t.TempDir(), "absent.env"))
	require.NoError(t, err)
	require.NotNil(t, lookup)
}
