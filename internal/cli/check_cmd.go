package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Cyclone1070/bashgate/internal/analyzer"
	"github.com/Cyclone1070/bashgate/internal/config"
	"github.com/Cyclone1070/bashgate/internal/engine"
	"github.com/Cyclone1070/bashgate/internal/executor"
	"github.com/Cyclone1070/bashgate/internal/policy"
	"github.com/Cyclone1070/bashgate/internal/safepath"
	"github.com/Cyclone1070/bashgate/internal/wrapper"
)

func newCheckCmd() *cobra.Command {
	var workDir string

	cmd := &cobra.Command{
		Use:   "check <command line>",
		Short: "Evaluate a command line and print the verdict",
		Long: `Evaluate a command line against the policy and print the verdict.
This is a debugging aid; the exit code is 0 for allow, 1 for ask and
2 for deny, so it can also gate scripts.

Examples:
  bashgate check "ls -la"
  bashgate check "sudo rm -rf /tmp/build"
  bashgate check --cwd /home/user/project "rm -rf ./build"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewLoader().Load()
			if err != nil {
				slog.Warn("falling back to default config", "error", err)
				cfg = config.DefaultConfig()
			}
			if workDir == "" {
				workDir, _ = os.Getwd()
			}

			exec := executor.NewOSCommandExecutor()
			canon := safepath.NewRealpathCanonicalizer(exec)
			checkers := []safepath.Checker{
				safepath.NewDeleteChecker(canon, cfg.Engine.TempDir, workDir),
				safepath.NewWriteChecker(canon, cfg.Engine.TempDir),
			}
			store := policy.NewStore(&cfg.Policy)
			eng := engine.New(store, checkers, cfg.Engine.MaxDepth)

			line := strings.Join(args, " ")
			traceUnwrap(line)
			result := eng.Decide(line)

			fmt.Fprintln(cmd.OutOrStdout(), result.Permission)
			fmt.Fprintln(cmd.OutOrStdout(), engine.FormatReason(line, result))

			os.Exit(int(result.Permission))
			return nil
		},
	}

	cmd.Flags().StringVar(&workDir, "cwd", "", "working directory for safe-path checks (defaults to the current directory)")

	return cmd
}

// traceUnwrap logs how the line tokenizes and unwraps, one level deep
// per command. Visible with -v.
func traceUnwrap(line string) {
	commands, err := analyzer.Analyze(line)
	if err != nil {
		slog.Debug("tokenize failed", "error", err)
		return
	}
	for _, c := range commands {
		if unwrapped := wrapper.Resolve(c); unwrapped != nil {
			slog.Debug("wrapper",
				"command", c.Text,
				"wrapper", unwrapped.Wrapper,
				"inner", unwrapped.Inner,
				"host", unwrapped.Host,
			)
			continue
		}
		slog.Debug("command", "name", c.Name, "args", c.Args)
	}
}
