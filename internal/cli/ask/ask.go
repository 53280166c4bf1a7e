// Package ask provides the one-shot analyst query command.
package ask

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/analyst-desk/analyst/internal/animator"
	"github.com/analyst-desk/analyst/internal/cli/helpers"
	"github.com/analyst-desk/analyst/internal/constants"
	"github.com/analyst-desk/analyst/internal/errors"
	"github.com/analyst-desk/analyst/internal/exchange"
	"github.com/analyst-desk/analyst/internal/render"
)

// NewAskCmd creates the ask command.
func NewAskCmd(flags *helpers.GlobalFlags) *cobra.Command {
	var (
		format string
		check  bool
	)

	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Send one question to the analyst",
		Long: `Send a single question to the analyst endpoint and print the reply.

The answer is printed first, followed by any generated text and chart
details. While waiting, a dot indicator is drawn on stderr when it is a
terminal.

Examples:
  analyst ask "Show me revenue by quarter"
  analyst ask -o json "Top customers this month"
  analyst ask --check`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := helpers.ValidateFormat(format, supportedFormats); err != nil {
				return err
			}

			_, cfg, err := helpers.LoadConfig(flags)
			if err != nil {
				return err
			}

			logger, closer, err := helpers.NewLogger(cfg, os.Stderr)
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
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			if check {
				return runCheck(ctx, cmd.OutOrStdout(), client)
			}

			if len(args) == 0 {
				return fmt.Errorf("a question is required (or use --check)")
			}

			return runAsk(ctx, client, strings.Join(args, " "), options{
				format:   helpers.OutputFormat(format),
				out:      cmd.OutOrStdout(),
				status:   statusWriter(cmd.ErrOrStderr()),
				interval: cfg.AnimationInterval,
				width:    terminalWidth(),
			})
		},
	}

	helpers.AddFormatFlag(cmd, &format, helpers.FormatText, supportedFormats)
	cmd.Flags().BoolVar(&check, "check", false, "Only check that the analyst backend is reachable")

	return cmd
}

var supportedFormats = []helpers.OutputFormat{
	helpers.FormatText,
	helpers.FormatJSON,
	helpers.FormatYAML,
}

// Sender is the exchange the command drives.
type Sender interface {
	Send(ctx context.Context, text string) (*exchange.Reply, error)
}

type options struct {
	format helpers.OutputFormat
	out    io.Writer
	// status receives the pending indicator. Nil disables it.
	status   io.Writer
	interval time.Duration
	width    int
}

// output is the structured form of a reply.
type output struct {
	Question      string  `json:"question" yaml:"question"`
	Answer        string  `json:"answer" yaml:"answer"`
	GeneratedText *string `json:"generated_text" yaml:"generated_text"`
	ChartDetails  any     `json:"chart_details" yaml:"chart_details"`
	Status        int     `json:"status" yaml:"status"`
	DurationMs    int64   `json:"duration_ms" yaml:"duration_ms"`
}

func runAsk(ctx context.Context, client Sender, question string, opts options) error {
	question = strings.TrimSpace(question)
	if question == "" {
		return fmt.Errorf("question must not be empty")
	}

	stop := startIndicator(ctx, opts.status, opts.interval)
	reply, err := client.Send(ctx, question)
	stop()

	if err != nil {
		if opts.format == helpers.FormatText {
			_, _ = fmt.Fprintln(opts.out, constants.ErrorMarker)
		}
		return fmt.Errorf("analyst request failed: %w", err)
	}

	if opts.format != helpers.FormatText {
		formatter, err := helpers.NewFormatter(opts.format)
		if err != nil {
			return err
		}
		return formatter.Format(toOutput(question, reply), opts.out)
	}

	_, _ = fmt.Fprintln(opts.out, reply.Answer)

	res := reply.Result()
	if res.Empty() {
		return nil
	}

	r, err := render.New(render.Options{Width: opts.width})
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(opts.out)
	_, _ = fmt.Fprint(opts.out, r.Result(res))
	return nil
}

func runCheck(ctx context.Context, out io.Writer, client *exchange.Client) error {
	if err := client.Health(ctx); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, "Analyst backend for %s is healthy\n", client.Endpoint())
	return nil
}

func toOutput(question string, reply *exchange.Reply) output {
	out := output{
		Question:      question,
		Answer:        reply.Answer,
		GeneratedText: reply.GeneratedText,
		Status:        reply.Status,
		DurationMs:    reply.Duration.Milliseconds(),
	}
	if len(reply.ChartDetails) > 0 {
		var chart any
		if err := json.Unmarshal(reply.ChartDetails, &chart); err == nil {
			out.ChartDetails = chart
		}
	}
	return out
}

// startIndicator draws the placeholder and its animation on w until the
// returned func is called, which also erases it.
func startIndicator(ctx context.Context, w io.Writer, interval time.Duration) func() {
	if w == nil {
		return func() {}
	}

	width := len(animator.Frame(constants.MaxAnimationDots))
	draw := func(frame string) {
		_, _ = fmt.Fprintf(w, "\r%-*s", width, frame)
	}

	draw(constants.PlaceholderText)
	anim := animator.Start(ctx, interval, draw)

	return func() {
		anim.Stop()
		_, _ = fmt.Fprintf(w, "\r%*s\r", width, "")
	}
}

// statusWriter returns w only when it is a terminal.
func statusWriter(w io.Writer) io.Writer {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return nil
	}
	return w
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}
