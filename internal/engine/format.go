package engine

import "github.com/Cyclone1070/bashgate/internal/decision"

const maxDisplayLen = 60

// FormatReason assembles the human-facing reason for the outermost
// verdict: the raw command verbatim when there is no reason, otherwise a
// length-capped rendering of the command followed by the reason, with
// any suggestion on its own line.
func FormatReason(command string, result decision.Result) string {
	reason := command
	if result.Reason != "" {
		reason = shortenCommand(command) + ": " + result.Reason
	}
	if result.Suggestion != "" {
		reason += "\n" + result.Suggestion
	}
	return reason
}

func shortenCommand(command string) string {
	if len(command) > maxDisplayLen {
		return command[:maxDisplayLen]
	}
	return command
}
