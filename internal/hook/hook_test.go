package hook

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Cyclone1070/bashgate/internal/config"
	"github.com/Cyclone1070/bashgate/internal/decision"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// lexicalExecutor answers realpath invocations with a purely lexical
// resolution so tests never touch the filesystem.
type lexicalExecutor struct{}

func (lexicalExecutor) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	path := args[len(args)-1]
	return []byte(filepath.Clean(path) + "\n"), nil
}

type fakeAdvisor struct {
	advice string
}

func (f *fakeAdvisor) Advise(ctx context.Context, command, reason string, perm decision.Permission) (string, error) {
	return f.advice, nil
}

func event(tool, command, cwd string) string {
	input := Input{
		SessionID:  "test-session",
		ToolName:   tool,
		WorkingDir: cwd,
	}
	if command != "" {
		input.ToolInput = map[string]any{"command": command, "description": "test"}
	} else {
		input.ToolInput = map[string]any{}
	}
	payload, _ := json.Marshal(input)
	return string(payload)
}

func runHook(t *testing.T, runner *Runner, in string) (Output, string) {
	t.Helper()
	var out bytes.Buffer
	err := runner.Run(context.Background(), strings.NewReader(in), &out)
	require.NoError(t, err)
	if out.Len() == 0 {
		return Output{}, ""
	}
	var output Output
	require.NoError(t, json.Unmarshal(out.Bytes(), &output))
	return output, out.String()
}

func newTestRunner(advisor *fakeAdvisor) *Runner {
	cfg := config.DefaultConfig()
	if advisor != nil {
		return NewRunner(cfg, lexicalExecutor{}, advisor)
	}
	return NewRunner(cfg, lexicalExecutor{}, nil)
}

func TestRunAllowsSafeCommand(t *testing.T) {
	output, raw := runHook(t, newTestRunner(nil), event("Bash", "ls -la", "/home/user/project"))

	assert.Equal(t, "PreToolUse", output.HookSpecificOutput.HookEventName)
	assert.Equal(t, "allow", output.HookSpecificOutput.PermissionDecision)
	assert.NotEmpty(t, raw)
}

func TestRunDeniesDangerousCommand(t *testing.T) {
	output, _ := runHook(t, newTestRunner(nil), event("Bash", "rm -rf /", "/home/user/project"))

	assert.Equal(t, "deny", output.HookSpecificOutput.PermissionDecision)
	assert.Contains(t, output.HookSpecificOutput.PermissionDecisionReason, "rm -rf /")
}

func TestRunIgnoresOtherTools(t *testing.T) {
	_, raw := runHook(t, newTestRunner(nil), event("Read", "", "/home/user/project"))

	assert.Empty(t, raw)
}

func TestRunIgnoresMissingCommand(t *testing.T) {
	_, raw := runHook(t, newTestRunner(nil), event("Bash", "", "/home/user/project"))

	assert.Empty(t, raw)
}

func TestRunRejectsMalformedJSON(t *testing.T) {
	var out bytes.Buffer
	err := newTestRunner(nil).Run(context.Background(), strings.NewReader("{not json"), &out)

	assert.Error(t, err)
	assert.Empty(t, out.String())
}

func TestRunUsesWorkingDirForDeletes(t *testing.T) {
	output, _ := runHook(t, newTestRunner(nil), event("Bash", "rm -rf /home/user/project/build", "/home/user/project"))

	assert.Equal(t, "allow", output.HookSpecificOutput.PermissionDecision)
	assert.Contains(t, output.HookSpecificOutput.PermissionDecisionReason, "rm in /tmp or project dir")
}

func TestRunAppendsAdvice(t *testing.T) {
	advisor := &fakeAdvisor{advice: "Deny: wipes the filesystem"}
	output, _ := runHook(t, newTestRunner(advisor), event("Bash", "rm -rf /", "/home/user/project"))

	assert.Equal(t, "deny", output.HookSpecificOutput.PermissionDecision)
	assert.Contains(t, output.HookSpecificOutput.PermissionDecisionReason, "AI advice: Deny: wipes the filesystem")
}

func TestRunNoAdviceOnAllow(t *testing.T) {
	advisor := &fakeAdvisor{advice: "Allow: fine"}
	output, _ := runHook(t, newTestRunner(advisor), event("Bash", "ls", "/home/user/project"))

	assert.Equal(t, "allow", output.HookSpecificOutput.PermissionDecision)
	assert.NotContains(t, output.HookSpecificOutput.PermissionDecisionReason, "AI advice")
}

func TestRunOutputFieldNames(t *testing.T) {
	_, raw := runHook(t, newTestRunner(nil), event("Bash", "ls", "/home/user/project"))

	assert.Contains(t, raw, `"hookSpecificOutput"`)
	assert.Contains(t, raw, `"hookEventName"`)
	assert.Contains(t, raw, `"permissionDecision"`)
	assert.Contains(t, raw, `"permissionDecisionReason"`)
}
