// Package config implements the 'analyst config' command family.
package config

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/analyst-desk/analyst/internal/cli/helpers"
	"github.com/analyst-desk/analyst/internal/config"
)

// NewConfigCmd creates the config command and its subcommands.
func NewConfigCmd(flags *helpers.GlobalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect analyst configuration",
		Long: `Inspect and initialise analyst configuration.

Configuration Priority (highest first):
  1. Command-line flags (--endpoint, --log-level, ...)
  2. Environment variables (ANALYST_ENDPOINT, ANALYST_LOG_LEVEL, ...)
  3. .env file in the current directory
  4. Config file (~/.analyst/config.yaml)
  5. Built-in defaults

Environment Variables:
  ANALYST_CONFIG  Override the base directory (default: ~)`,
	}

	cmd.AddCommand(newViewCmd(flags))
	cmd.AddCommand(newPathCmd(flags))
	cmd.AddCommand(newValidateCmd(flags))
	cmd.AddCommand(newInitCmd(flags))

	return cmd
}

var viewFormats = []helpers.OutputFormat{helpers.FormatYAML, helpers.FormatJSON}

// newViewCmd creates the 'config view' command.
func newViewCmd(flags *helpers.GlobalFlags) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "view",
		Short: "Show the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := helpers.ValidateFormat(format, viewFormats); err != nil {
				return err
			}
			_, cfg, err := helpers.LoadConfig(flags)
			if err != nil {
				return err
			}
			return writeConfig(cmd.OutOrStdout(), cfg, helpers.OutputFormat(format))
		},
	}

	helpers.AddFormatFlag(cmd, &format, helpers.FormatYAML, viewFormats)

	return cmd
}

// writeConfig prints cfg. JSON output goes through the YAML form so that
// durations stay human readable.
func writeConfig(w io.Writer, cfg *config.Config, format helpers.OutputFormat) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if format == helpers.FormatYAML {
		_, err := w.Write(data)
		return err
	}

	var generic map[string]any
	if err := yaml.Unmarshal(data, &generic); err != nil {
		return fmt.Errorf("failed to convert config: %w", err)
	}

	formatter, err := helpers.NewFormatter(format)
	if err != nil {
		return err
	}
	return formatter.Format(generic, w)
}

// newPathCmd creates the 'config path' command.
func newPathCmd(flags *helpers.GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Println(loaderFor(flags).ConfigPath())
		},
	}
}

// newValidateCmd creates the 'config validate' command.
func newValidateCmd(flags *helpers.GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the configuration for errors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			loader, _, err := helpers.LoadConfig(flags)
			if err != nil {
				return err
			}
			cmd.Printf("✓ Configuration is valid (%s)\n", describeSource(loader.ConfigPath()))
			return nil
		},
	}
}

// newInitCmd creates the 'config init' command.
func newInitCmd(flags *helpers.GlobalFlags) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with default values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			loader := loaderFor(flags)
			path := loader.ConfigPath()

			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("config file %s already exists (use --force to overwrite)", path)
			}

			if err := loader.Save(config.Default()); err != nil {
				return err
			}
			cmd.Printf("Wrote default configuration to %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")

	return cmd
}

func loaderFor(flags *helpers.GlobalFlags) *config.Loader {
	loader := config.NewLoader()
	if flags.ConfigPath != "" {
		loader = loader.WithConfigPath(flags.ConfigPath)
	}
	return loader
}

func describeSource(path string) string {
	if _, err := os.Stat(path); err != nil {
		return "defaults, no config file"
	}
	return path
}
