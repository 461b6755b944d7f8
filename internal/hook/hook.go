// Package hook implements the PreToolUse stdin/stdout protocol. The
// hook reads one JSON event, evaluates the command line it carries and
// writes back a permission decision. Events for other tools, or events
// without a command, produce no output at all.
package hook

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/Cyclone1070/bashgate/internal/advisory"
	"github.com/Cyclone1070/bashgate/internal/config"
	"github.com/Cyclone1070/bashgate/internal/engine"
	"github.com/Cyclone1070/bashgate/internal/executor"
	"github.com/Cyclone1070/bashgate/internal/policy"
	"github.com/Cyclone1070/bashgate/internal/safepath"
	"github.com/mitchellh/mapstructure"
)

// Input is the event the agent harness writes to the hook's stdin.
type Input struct {
	SessionID  string         `json:"session_id"`
	ToolName   string         `json:"tool_name"`
	ToolInput  map[string]any `json:"tool_input"`
	WorkingDir string         `json:"cwd"`
}

// bashToolInput is the shape of ToolInput for the Bash tool. Unknown
// fields are ignored so harness additions never break the hook.
type bashToolInput struct {
	Command string `mapstructure:"command"`
}

// Output is the decision envelope written to stdout.
type Output struct {
	HookSpecificOutput HookSpecificOutput `json:"hookSpecificOutput"`
}

// HookSpecificOutput carries the actual verdict.
type HookSpecificOutput struct {
	HookEventName            string `json:"hookEventName"`
	PermissionDecision       string `json:"permissionDecision"`
	PermissionDecisionReason string `json:"permissionDecisionReason"`
}

// Runner evaluates hook events against the configured policy.
type Runner struct {
	cfg     *config.Config
	exec    executor.CommandExecutor
	advisor advisory.Advisor
}

// NewRunner creates a Runner. advisor may be nil to disable advice.
func NewRunner(cfg *config.Config, exec executor.CommandExecutor, advisor advisory.Advisor) *Runner {
	return &Runner{cfg: cfg, exec: exec, advisor: advisor}
}

// Run processes one event from in and, when the event targets the Bash
// tool with a command, writes the decision to out.
func (r *Runner) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	payload, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("failed to read hook input: %w", err)
	}

	var input Input
	if err := json.Unmarshal(payload, &input); err != nil {
		return fmt.Errorf("failed to parse hook input: %w", err)
	}

	if input.ToolName != "Bash" {
		slog.Debug("ignoring non-Bash tool", "tool", input.ToolName)
		return nil
	}

	var toolInput bashToolInput
	if err := mapstructure.Decode(input.ToolInput, &toolInput); err != nil {
		return fmt.Errorf("failed to decode tool input: %w", err)
	}
	if toolInput.Command == "" {
		slog.Debug("ignoring Bash event with no command")
		return nil
	}

	eng := r.buildEngine(input.WorkingDir)
	result := eng.Decide(toolInput.Command)
	reason := engine.FormatReason(toolInput.Command, result)

	timeout := time.Duration(r.cfg.Advisory.TimeoutSeconds) * time.Second
	if advice := advisory.Get(ctx, r.advisor, timeout, toolInput.Command, result.Reason, result.Permission); advice != "" {
		reason += "\n" + advice
	}

	slog.Debug("decision",
		"session", input.SessionID,
		"command", toolInput.Command,
		"permission", result.Permission,
	)

	output := Output{
		HookSpecificOutput: HookSpecificOutput{
			HookEventName:            "PreToolUse",
			PermissionDecision:       result.Permission.String(),
			PermissionDecisionReason: reason,
		},
	}
	encoder := json.NewEncoder(out)
	if err := encoder.Encode(output); err != nil {
		return fmt.Errorf("failed to write hook output: %w", err)
	}
	return nil
}

// buildEngine assembles the evaluation pipeline for one event. The
// working directory comes from the event, so the engine is rebuilt per
// call rather than shared.
func (r *Runner) buildEngine(workDir string) *engine.Engine {
	canon := safepath.NewRealpathCanonicalizer(r.exec)
	checkers := []safepath.Checker{
		safepath.NewDeleteChecker(canon, r.cfg.Engine.TempDir, workDir),
		safepath.NewWriteChecker(canon, r.cfg.Engine.TempDir),
	}
	store := policy.NewStore(&r.cfg.Policy)
	return engine.New(store, checkers, r.cfg.Engine.MaxDepth)
}
