// Package advisory enriches Ask/Deny verdicts with a short second
// opinion. Advice is strictly cosmetic: it is appended to the
// human-facing reason and never changes the verdict, and every failure
// mode (timeout, missing backend, empty reply) degrades to no advice.
package advisory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Cyclone1070/bashgate/internal/decision"
)

// Advisor produces a short advice string for a tentative verdict.
type Advisor interface {
	Advise(ctx context.Context, command, reason string, perm decision.Permission) (string, error)
}

// Get runs advisor under the given wall-clock timeout and returns the
// formatted advice line, or "" when no advice is available. Allow
// verdicts never consult the advisor.
func Get(ctx context.Context, advisor Advisor, timeout time.Duration, command, reason string, perm decision.Permission) string {
	if advisor == nil || perm == decision.Allow {
		return ""
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	advice, err := advisor.Advise(ctx, command, reason, perm)
	if err != nil {
		return ""
	}
	advice = strings.TrimSpace(advice)
	if advice == "" {
		return ""
	}
	return "AI advice: " + advice
}

// buildPrompt renders the question put to either backend.
func buildPrompt(command, reason string, perm decision.Permission) string {
	return fmt.Sprintf(
		"A CLI permission hook is asking whether to allow this bash command.\n"+
			"Command: %s\n"+
			"Current decision: %s because: %s\n\n"+
			"Should this command be allowed? Reply with ONLY:\n"+
			"- \"Allow: <reason>\" if the command is safe\n"+
			"- \"Deny: <reason>\" if risky\n"+
			"Keep under 30 words.",
		command, perm, reason)
}
