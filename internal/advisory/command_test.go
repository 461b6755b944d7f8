package advisory

import (
	"context"
	"errors"
	"testing"

	"github.com/Cyclone1070/bashgate/internal/config"
	"github.com/Cyclone1070/bashgate/internal/decision"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExecutor struct {
	output  []byte
	err     error
	gotName string
	gotArgs []string
}

func (f *fakeExecutor) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	f.gotName = name
	f.gotArgs = args
	return f.output, f.err
}

func TestCommandAdvisorAdvise(t *testing.T) {
	exec := &fakeExecutor{output: []byte("Allow: read-only query\n")}
	advisor := NewCommandAdvisor(exec, "claude-safe")

	got, err := advisor.Advise(context.Background(), "git status", "unknown command", decision.Ask)

	require.NoError(t, err)
	assert.Equal(t, "Allow: read-only query\n", got)
	assert.Equal(t, "claude-safe", exec.gotName)
	require.Len(t, exec.gotArgs, 2)
	assert.Equal(t, "-p", exec.gotArgs[0])
	assert.Contains(t, exec.gotArgs[1], "git status")
}

func TestCommandAdvisorError(t *testing.T) {
	exec := &fakeExecutor{err: errors.New("exit status 1")}
	advisor := NewCommandAdvisor(exec, "claude-safe")

	_, err := advisor.Advise(context.Background(), "rm -rf /", "recursive delete", decision.Deny)

	assert.Error(t, err)
}

func TestFromConfigOff(t *testing.T) {
	advisor := FromConfig(context.Background(), config.AdvisoryConfig{Backend: "off"}, &fakeExecutor{})

	assert.Nil(t, advisor)
}

func TestFromConfigCommand(t *testing.T) {
	advisor := FromConfig(context.Background(), config.AdvisoryConfig{Backend: "command", Command: "claude-safe"}, &fakeExecutor{})

	require.NotNil(t, advisor)
	assert.IsType(t, &CommandAdvisor{}, advisor)
}

func TestFromConfigGeminiWithoutKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")

	advisor := FromConfig(context.Background(), config.AdvisoryConfig{Backend: "gemini", Model: "gemini-2.0-flash-lite"}, &fakeExecutor{})

	assert.Nil(t, advisor)
}
