package helpers

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/analyst-desk/analyst/internal/config"
	"github.com/analyst-desk/analyst/internal/logging"
)

// LoadConfig loads the layered configuration and applies flag overrides on
// top. Flags win over every other source.
func LoadConfig(flags *GlobalFlags) (*config.Loader, *config.Config, error) {
	loader := config.NewLoader()
	if flags.ConfigPath != "" {
		loader = loader.WithConfigPath(flags.ConfigPath)
	}

	cfg, err := loader.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	overridden := false
	if flags.Endpoint != "" {
		cfg.Endpoint = flags.Endpoint
		overridden = true
	}
	if flags.LogLevel != "" {
		cfg.Log.Level = flags.LogLevel
		overridden = true
	}
	if flags.LogFile != "" {
		cfg.Log.File = flags.LogFile
	}

	if overridden {
		if err := cfg.Validate(); err != nil {
			return nil, nil, fmt.Errorf("invalid flags: %w", err)
		}
	}

	return loader, cfg, nil
}

// NewLogger builds a logger for a command. When the config names a log file,
// logs go there and the returned closer must be closed. Otherwise they go to
// fallback, and a nil fallback discards them.
func NewLogger(cfg *config.Config, fallback io.Writer) (zerolog.Logger, io.Closer, error) {
	if cfg.Log.File != "" {
		f, err := logging.OpenFile(cfg.Log.File)
		if err != nil {
			return zerolog.Nop(), nil, err
		}
		return logging.New(logging.Config{
			Level:  cfg.Log.Level,
			Pretty: false,
			Output: f,
		}), f, nil
	}

	if fallback == nil {
		return zerolog.Nop(), nil, nil
	}

	pretty := cfg.Log.Pretty
	if f, ok := fallback.(*os.File); ok && f == os.Stderr {
		pretty = true
	}
	return logging.New(logging.Config{
		Level:  cfg.Log.Level,
		Pretty: pretty,
		Output: fallback,
	}), nil, nil
}
