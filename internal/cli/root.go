// Package cli wires the cobra command tree. The hook protocol speaks
// JSON on stdout, so all logging goes to stderr.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "bashgate",
	Short: "Pre-execution permission gate for agent-issued shell commands",
	Long: `bashgate decides whether a shell command an agent wants to run should
be allowed, asked about, or denied. It understands wrapper commands
(sudo, ssh, env, kubectl exec, sh -c, ...) and unwraps them so the
policy applies to the command that will actually run.

Run as a PreToolUse hook it reads one JSON event from stdin and writes
the decision to stdout:

  bashgate hook < event.json

For debugging, evaluate a command line directly:

  bashgate check "sudo rm -rf /tmp/build"`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
		slog.SetDefault(slog.New(handler))
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging to stderr")
	rootCmd.AddCommand(newHookCmd())
	rootCmd.AddCommand(newCheckCmd())
}

// Execute runs the command tree.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}
