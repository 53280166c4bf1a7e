package config

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(c *Config)
		wantField string
	}{
		{
			name:   "defaults are valid",
			mutate: func(c *Config) {},
		},
		{
			name:      "empty endpoint",
			mutate:    func(c *Config) { c.Endpoint = "" },
			wantField: "endpoint",
		},
		{
			name:      "relative endpoint",
			mutate:    func(c *Config) { c.Endpoint = "/analyst_chat" },
			wantField: "endpoint",
		},
		{
			name:      "unsupported scheme",
			mutate:    func(c *Config) { c.Endpoint = "ftp://localhost/analyst_chat" },
			wantField: "endpoint",
		},
		{
			name:      "negative timeout",
			mutate:    func(c *Config) { c.RequestTimeout = -time.Second },
			wantField: "request_timeout",
		},
		{
			name:      "zero animation interval",
			mutate:    func(c *Config) { c.AnimationInterval = 0 },
			wantField: "animation_interval",
		},
		{
			name:      "unknown log level",
			mutate:    func(c *Config) { c.Log.Level = "verbose" },
			wantField: "log.level",
		},
		{
			name:      "panel split out of range",
			mutate:    func(c *Config) { c.UI.LeftPanelPercent = 95 },
			wantField: "ui.left_panel_percent",
		},
		{
			name:      "stub address without port",
			mutate:    func(c *Config) { c.Stub.Addr = "localhost" },
			wantField: "stub.addr",
		},
		{
			name:      "negative rate limit",
			mutate:    func(c *Config) { c.Stub.RateLimit = -1 },
			wantField: "stub.rate_limit",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantField == "" {
				require.NoError(t, err)
				return
			}

			var multi *MultiValidationError
			require.True(t, errors.As(err, &multi), "expected MultiValidationError, got %v", err)
			require.Len(t, multi.Errors, 1)
			assert.Equal(t, tt.wantField, multi.Errors[0].Field)
		})
	}
}

func TestMultiValidationError_Error(t *testing.T) {
	cfg := Default()
	cfg.Endpoint = ""
	cfg.AnimationInterval = 0

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed with 2 errors")
	assert.Contains(t, err.Error(), "endpoint")
	assert.Contains(t, err.Error(), "animation_interval")
}
