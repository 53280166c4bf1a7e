package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/analyst-desk/analyst/internal/cli/ask"
	"github.com/analyst-desk/analyst/internal/cli/chat"
	configcmd "github.com/analyst-desk/analyst/internal/cli/config"
	"github.com/analyst-desk/analyst/internal/cli/helpers"
	"github.com/analyst-desk/analyst/internal/cli/stub"
	"github.com/analyst-desk/analyst/pkg/version"
)

// NewRootCmd builds the analyst command tree.
func NewRootCmd() *cobra.Command {
	flags := &helpers.GlobalFlags{}

	rootCmd := &cobra.Command{
		Use:   "analyst",
		Short: "Analyst - chat with your data analyst from the terminal",
		Long: `Chat with the analyst assistant.

Each message is sent to the analyst endpoint as one JSON request. The reply's
answer appears in the conversation, and its generated text and chart details
are shown next to it.

Commands:
- chat:   Interactive two-panel chat
- ask:    One question, answer on stdout
- stub:   Local development backend
- config: Inspect configuration`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	helpers.AddGlobalFlags(rootCmd, flags)

	rootCmd.AddCommand(chat.NewChatCmd(flags))
	rootCmd.AddCommand(ask.NewAskCmd(flags))
	rootCmd.AddCommand(stub.NewStubCmd(flags))
	rootCmd.AddCommand(configcmd.NewConfigCmd(flags))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("Analyst version %s\n", version.Version)
			cmd.Printf("Git commit: %s\n", version.GitCommit)
			cmd.Printf("Build date: %s\n", version.BuildDate)
			cmd.Printf("Go version: %s\n", version.GoVersion)
		},
	}
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().ExecuteContext(context.Background())
}
