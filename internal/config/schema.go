// Package config provides configuration loading and management.
package config

import (
	"time"

	"github.com/analyst-desk/analyst/internal/constants"
)

// Config is the analyst client configuration stored at ~/.analyst/config.yaml.
type Config struct {
	// Endpoint is the full URL of the analyst chat endpoint.
	Endpoint string `yaml:"endpoint" env:"ANALYST_ENDPOINT"`

	// RequestTimeout bounds one exchange. Zero leaves it to the transport.
	RequestTimeout time.Duration `yaml:"request_timeout,omitempty" env:"ANALYST_REQUEST_TIMEOUT"`

	// AnimationInterval is the period of the pending-reply animation.
	AnimationInterval time.Duration `yaml:"animation_interval" env:"ANALYST_ANIMATION_INTERVAL"`

	Log  LogConfig  `yaml:"log"`
	UI   UIConfig   `yaml:"ui"`
	Stub StubConfig `yaml:"stub"`
}

// LogConfig controls where the client writes its own diagnostics.
type LogConfig struct {
	Level string `yaml:"level" env:"ANALYST_LOG_LEVEL"`
	// File receives logs of the interactive UI. Empty disables them.
	File   string `yaml:"file,omitempty" env:"ANALYST_LOG_FILE"`
	Pretty bool   `yaml:"pretty" env:"ANALYST_LOG_PRETTY"`
}

// UIConfig tunes the interactive chat.
type UIConfig struct {
	// LeftPanelPercent is the share of the terminal width used by the conversation.
	LeftPanelPercent int `yaml:"left_panel_percent" env:"ANALYST_UI_LEFT_PERCENT"`
	// AltScreen runs the chat in the terminal's alternate screen.
	AltScreen bool `yaml:"alt_screen" env:"ANALYST_UI_ALT_SCREEN"`
}

// StubConfig configures the development backend served by `analyst stub`.
type StubConfig struct {
	Addr      string        `yaml:"addr" env:"ANALYST_STUB_ADDR"`
	Delay     time.Duration `yaml:"delay" env:"ANALYST_STUB_DELAY"`
	ChartsDir string        `yaml:"charts_dir,omitempty" env:"ANALYST_STUB_CHARTS_DIR"`
	// RateLimit is requests per second; zero disables limiting.
	RateLimit float64 `yaml:"rate_limit,omitempty" env:"ANALYST_STUB_RATE_LIMIT"`
	// Seed fixes the variant choice; zero means time-seeded.
	Seed int64 `yaml:"seed,omitempty" env:"ANALYST_STUB_SEED"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Endpoint:          constants.DefaultEndpoint,
		RequestTimeout:    constants.DefaultRequestTimeout,
		AnimationInterval: constants.DefaultAnimationInterval,
		Log: LogConfig{
			Level:  "info",
			Pretty: false,
		},
		UI: UIConfig{
			LeftPanelPercent: 30,
			AltScreen:        true,
		},
		Stub: StubConfig{
			Addr:  constants.DefaultStubAddr,
			Delay: constants.DefaultStubDelay,
		},
	}
}
