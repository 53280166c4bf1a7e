// Package chat provides the interactive two-panel chat command.
package chat

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/analyst-desk/analyst/internal/cli/chat/ui"
	"github.com/analyst-desk/analyst/internal/cli/helpers"
	"github.com/analyst-desk/analyst/internal/config"
	"github.com/analyst-desk/analyst/internal/errors"
	"github.com/analyst-desk/analyst/internal/exchange"
	"github.com/analyst-desk/analyst/internal/session"
)

// NewChatCmd creates the chat command.
func NewChatCmd(flags *helpers.GlobalFlags) *cobra.Command {
	var noAltScreen bool

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Chat with the analyst interactively",
		Long: `Open the interactive analyst chat.

The left panel holds the conversation and the input row. The right panel
shows the latest generated text and chart details returned by the analyst.

Logs are written to the file given by --log-file (or log.file in the
config) because the terminal belongs to the UI.

Examples:
  analyst chat
  analyst chat --endpoint http://localhost:8000/analyst_chat
  analyst chat --log-file ~/.analyst/analyst.log --log-level debug`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, cfg, err := helpers.LoadConfig(flags)
			if err != nil {
				return err
			}
			if noAltScreen {
				cfg.UI.AltScreen = false
			}
			return runInteractive(cmd.Context(), cfg)
		},
	}

	cmd.Flags().BoolVar(&noAltScreen, "no-alt-screen", false, "Render inline instead of in the alternate screen")

	return cmd
}

// runInteractive starts the Bubbletea session and tears the chat session
// down when the program exits.
func runInteractive(ctx context.Context, cfg *config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}

	logger, closer, err := helpers.NewLogger(cfg, nil)
	if err != nil {
		return err
	}
	if closer != nil {
		defer errors.DeferClose(logger, closer, "failed to close log file")
	}

	client, err := exchange.NewClient(exchange.Config{
		Endpoint: cfg.Endpoint,
		Timeout:  cfg.RequestTimeout,
		Logger:   logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create exchange client: %w", err)
	}

	sess := session.New(session.Config{
		Exchanger: client,
		Interval:  cfg.AnimationInterval,
		Logger:    logger,
	})
	defer sess.Close()

	logger.Info().
		Str("endpoint", client.Endpoint()).
		Msg("Interactive chat started")

	model, err := ui.NewModel(ctx, sess, ui.Options{
		LeftPercent: cfg.UI.LeftPanelPercent,
		Mouse:       cfg.UI.AltScreen,
	})
	if err != nil {
		return fmt.Errorf("failed to create UI model: %w", err)
	}

	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if cfg.UI.AltScreen {
		// Inline rendering has no fixed screen rows to hit-test.
		opts = append(opts, tea.WithAltScreen(), tea.WithMouseCellMotion())
	}

	p := tea.NewProgram(model, opts...)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("interactive session failed: %w", err)
	}

	logger.Info().Msg("Interactive chat ended")
	return nil
}
