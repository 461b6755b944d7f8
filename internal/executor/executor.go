// Package executor abstracts external command execution so that the
// canonicalization and advisory callers can substitute fakes in tests.
package executor

import (
	"bytes"
	"context"
	"os/exec"
)

// CommandExecutor runs an external command and returns its stdout.
// Implementations must honor context cancellation by killing the process.
type CommandExecutor interface {
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
}

// OSCommandExecutor executes commands with os/exec.
type OSCommandExecutor struct{}

// NewOSCommandExecutor returns a production CommandExecutor.
func NewOSCommandExecutor() *OSCommandExecutor {
	return &OSCommandExecutor{}
}

// Output runs the command and returns stdout. A non-zero exit, a missing
// binary or a context deadline all surface as a CommandError.
func (e *OSCommandExecutor) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, &CommandError{Cmd: name, Cause: err, Stderr: stderr.String()}
	}
	return stdout.Bytes(), nil
}
