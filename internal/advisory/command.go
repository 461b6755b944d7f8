package advisory

import (
	"context"
	"os"

	"github.com/Cyclone1070/bashgate/internal/config"
	"github.com/Cyclone1070/bashgate/internal/decision"
	"github.com/Cyclone1070/bashgate/internal/executor"
	"google.golang.org/genai"
)

// CommandAdvisor shells out to an external advisor binary. The context
// deadline kills the process, so a hung advisor cannot delay the hook
// beyond the configured timeout.
type CommandAdvisor struct {
	exec    executor.CommandExecutor
	command string
}

// NewCommandAdvisor creates a CommandAdvisor running the given binary.
func NewCommandAdvisor(exec executor.CommandExecutor, command string) *CommandAdvisor {
	return &CommandAdvisor{exec: exec, command: command}
}

// Advise implements Advisor.
func (a *CommandAdvisor) Advise(ctx context.Context, command, reason string, perm decision.Permission) (string, error) {
	out, err := a.exec.Output(ctx, a.command, "-p", buildPrompt(command, reason, perm))
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// FromConfig builds the configured Advisor, or nil when advice is
// disabled or the backend cannot be constructed. A nil Advisor is a
// valid "no advice" collaborator, never an error.
func FromConfig(ctx context.Context, cfg config.AdvisoryConfig, exec executor.CommandExecutor) Advisor {
	switch cfg.Backend {
	case "gemini":
		apiKey := os.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			return nil
		}
		client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
		if err != nil {
			return nil
		}
		return NewGeminiAdvisor(NewRealContentGenerator(client), cfg.Model)
	case "command":
		return NewCommandAdvisor(exec, cfg.Command)
	default:
		return nil
	}
}
