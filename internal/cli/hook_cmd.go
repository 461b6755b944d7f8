package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Cyclone1070/bashgate/internal/advisory"
	"github.com/Cyclone1070/bashgate/internal/config"
	"github.com/Cyclone1070/bashgate/internal/executor"
	"github.com/Cyclone1070/bashgate/internal/hook"
)

func newHookCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hook",
		Short: "Read a PreToolUse event from stdin and write the decision to stdout",
		Long: `Read one PreToolUse JSON event from stdin, evaluate the Bash command
it carries and write the permission decision to stdout. Events for
other tools, or Bash events without a command, produce no output.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewLoader().Load()
			if err != nil {
				slog.Warn("falling back to default config", "error", err)
				cfg = config.DefaultConfig()
			}

			exec := executor.NewOSCommandExecutor()
			advisor := advisory.FromConfig(cmd.Context(), cfg.Advisory, exec)
			runner := hook.NewRunner(cfg, exec, advisor)
			return runner.Run(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}
