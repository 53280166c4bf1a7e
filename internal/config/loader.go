package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/analyst-desk/analyst/internal/constants"
	"github.com/analyst-desk/analyst/internal/safe"
)

// Loader handles loading and saving the configuration file.
type Loader struct {
	homeDir    string
	configPath string
	dotenvPath string
}

// NewLoader creates a new config loader.
// The base directory is resolved in this order:
//  1. ANALYST_CONFIG environment variable.
//  2. User home directory (~/).
//  3. The OS temp directory, for environments without a home directory.
func NewLoader() *Loader {
	l := &Loader{dotenvPath: constants.EnvFile}

	if baseDir := os.Getenv("ANALYST_CONFIG"); baseDir != "" {
		l.homeDir = baseDir
		return l
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = filepath.Join(os.TempDir(), "analyst-fallback")
	}
	l.homeDir = homeDir
	return l
}

// WithConfigPath makes the loader read an explicit file instead of the default.
func (l *Loader) WithConfigPath(path string) *Loader {
	l.configPath = path
	return l
}

// WithDotenv sets the dotenv file consulted for overrides. Empty disables it.
func (l *Loader) WithDotenv(path string) *Loader {
	l.dotenvPath = path
	return l
}

// Dir returns ~/.analyst (or its override).
func (l *Loader) Dir() string {
	return filepath.Join(l.homeDir, constants.DefaultDir)
}

// ConfigPath returns the path of the config file in use.
func (l *Loader) ConfigPath() string {
	if l.configPath != "" {
		return l.configPath
	}
	return filepath.Join(l.Dir(), constants.ConfigFile)
}

// Load builds the effective configuration: defaults, then the YAML file if
// present, then the dotenv file, then the process environment. The result is
// validated.
func (l *Loader) Load() (*Config, error) {
	cfg := Default()

	path := l.ConfigPath()
	data, err := safe.ReadFile(path, &safe.ReadOptions{AllowSymlinks: true})
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case os.IsNotExist(err):
		if l.configPath != "" {
			return nil, fmt.Errorf("config file %s not found", path)
		}
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	lookup, err := EnvLookup(l.dotenvPath)
	if err != nil {
		return nil, err
	}
	if err := LoadFromLookup(cfg, lookup); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes cfg to the config path.
func (l *Loader) Save(cfg *Config) error {
	path := l.ConfigPath()

	//nolint:gosec // G301: Directory needs standard permissions for traversal
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
