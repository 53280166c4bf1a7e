// Package stub provides the command that serves the development backend.
package stub

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/analyst-desk/analyst/internal/cli/helpers"
	"github.com/analyst-desk/analyst/internal/config"
	"github.com/analyst-desk/analyst/internal/constants"
	"github.com/analyst-desk/analyst/internal/errors"
	"github.com/analyst-desk/analyst/internal/stub"
)

// NewStubCmd creates the stub command.
func NewStubCmd(flags *helpers.GlobalFlags) *cobra.Command {
	var (
		addr      string
		delay     time.Duration
		chartsDir string
		rateLimit float64
		seed      int64
	)

	cmd := &cobra.Command{
		Use:   "stub",
		Short: "Run a local analyst backend for development",
		Long: `Serve POST /analyst_chat with canned replies.

Each reply answers "dummy response to: <message>" after a short delay and
randomly carries long generated text, a sample chart, or both. Chart samples
are read from debug_chart*.json files in --charts-dir, or built-in ones.

Also serves GET /health and GET /metrics (Prometheus).

Examples:
  analyst stub
  analyst stub --addr 127.0.0.1:9000 --delay 0
  analyst stub --charts-dir ./charts --rate-limit 2`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, cfg, err := helpers.LoadConfig(flags)
			if err != nil {
				return err
			}

			applyOverrides(cmd.Flags(), &cfg.Stub, overrides{
				addr:      addr,
				delay:     delay,
				chartsDir: chartsDir,
				rateLimit: rateLimit,
				seed:      seed,
			})
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid stub settings: %w", err)
			}

			logger, closer, err := helpers.NewLogger(cfg, os.Stderr)
			if err != nil {
				return err
			}
			if closer != nil {
				defer errors.DeferClose(logger, closer, "failed to close log file")
			}

			srv, err := stub.New(stub.Config{
				Addr:      cfg.Stub.Addr,
				Delay:     cfg.Stub.Delay,
				ChartsDir: cfg.Stub.ChartsDir,
				RateLimit: cfg.Stub.RateLimit,
				Seed:      cfg.Stub.Seed,
				Logger:    logger,
			})
			if err != nil {
				return err
			}

			if err := srv.Start(); err != nil {
				return err
			}
			defer errors.DeferShutdown(logger, srv, constants.DefaultStubShutdownTimeout, "failed to stop stub backend")

			cmd.Printf("Analyst stub listening on %s\n", srv.ChatURL())
			cmd.Println("Press Ctrl+C to stop")

			// Wait for interrupt signal
			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
			defer signal.Stop(sigChan)

			select {
			case <-sigChan:
			case <-cmd.Context().Done():
			}

			cmd.Println("\nShutting down stub...")
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", constants.DefaultStubAddr, "Listen address")
	cmd.Flags().DurationVar(&delay, "delay", constants.DefaultStubDelay, "Delay before each reply")
	cmd.Flags().StringVar(&chartsDir, "charts-dir", "", "Directory with debug_chart*.json samples")
	cmd.Flags().Float64Var(&rateLimit, "rate-limit", 0, "Requests per second (0 disables)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Seed for reply selection (0 uses the clock)")

	return cmd
}

type overrides struct {
	addr      string
	delay     time.Duration
	chartsDir string
	rateLimit float64
	seed      int64
}

// applyOverrides copies explicitly set flags over the configured values, so
// an unset flag never masks the config file or environment.
func applyOverrides(fs *pflag.FlagSet, cfg *config.StubConfig, o overrides) {
	if fs.Changed("addr") {
		cfg.Addr = o.addr
	}
	if fs.Changed("delay") {
		cfg.Delay = o.delay
	}
	if fs.Changed("charts-dir") {
		cfg.ChartsDir = o.chartsDir
	}
	if fs.Changed("rate-limit") {
		cfg.RateLimit = o.rateLimit
	}
	if fs.Changed("seed") {
		cfg.Seed = o.seed
	}
}
