package executor

import "fmt"

// CommandError represents an external command failure (start, run, exit).
type CommandError struct {
	Cmd    string
	Cause  error
	Stderr string
}

func (e *CommandError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("command %s failed: %v: %s", e.Cmd, e.Cause, e.Stderr)
	}
	return fmt.Sprintf("command %s failed: %v", e.Cmd, e.Cause)
}

func (e *CommandError) Unwrap() error { return e.Cause }
