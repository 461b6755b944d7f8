// Package engine combines tokenization, safe-path classification,
// wrapper unwrapping and policy lookups into one verdict per command
// line. Combining is most-restrictive: the final permission is the
// maximum rank over every simple command in the line.
package engine

import (
	"github.com/Cyclone1070/bashgate/internal/analyzer"
	"github.com/Cyclone1070/bashgate/internal/decision"
	"github.com/Cyclone1070/bashgate/internal/safepath"
	"github.com/Cyclone1070/bashgate/internal/wrapper"
)

// PolicyStore is the rule database consulted for commands the safe-path
// classifiers had no opinion on. Both lookups are total.
type PolicyStore interface {
	Check(name string, args []string) decision.Result
	CheckWithHost(name string, args []string, host string) decision.Result
}

// Engine evaluates raw command lines. It holds no state across calls.
type Engine struct {
	policy   PolicyStore
	checkers []safepath.Checker
	maxDepth int
}

// New creates an Engine. checkers are tried in order before the wrapper
// resolver and the policy store; maxDepth bounds wrapper recursion.
func New(policy PolicyStore, checkers []safepath.Checker, maxDepth int) *Engine {
	return &Engine{policy: policy, checkers: checkers, maxDepth: maxDepth}
}

// Decide returns the most restrictive verdict across every simple
// command in raw. Uncertainty resolves toward Ask, never silent Allow.
func (e *Engine) Decide(raw string) decision.Result {
	return e.decide(raw, 0)
}

func (e *Engine) decide(raw string, depth int) decision.Result {
	if depth > e.maxDepth {
		return decision.Result{
			Permission: decision.Ask,
			Reason:     "wrapper nesting exceeds depth limit",
		}
	}

	commands, err := analyzer.Analyze(raw)
	if err != nil {
		// Malformed input goes to human review, never through.
		return decision.Result{Permission: decision.Ask, Reason: err.Error()}
	}

	if len(commands) == 0 {
		return decision.Result{Permission: decision.Allow, Reason: "No commands found"}
	}

	most := decision.Result{Permission: decision.Allow}
	for _, cmd := range commands {
		most = most.MoreRestrictive(e.checkCommand(cmd, depth))
	}
	return most
}

// checkCommand evaluates one simple command: safe-path classifiers
// first, then wrapper unwrapping, then the policy store.
func (e *Engine) checkCommand(cmd analyzer.Command, depth int) decision.Result {
	for _, checker := range e.checkers {
		if result := checker.Classify(cmd); result != nil {
			return *result
		}
	}

	if unwrapped := wrapper.Resolve(cmd); unwrapped != nil {
		switch {
		case unwrapped.Inner != "" && unwrapped.Host != "":
			// Both the remote host and the command it will run must be
			// acceptable; keep whichever verdict is more restrictive.
			innerResult := e.decide(unwrapped.Inner, depth+1)
			hostResult := e.policy.CheckWithHost(cmd.Name, cmd.Args, unwrapped.Host)
			if hostResult.Permission > innerResult.Permission {
				return hostResult
			}
			return innerResult

		case unwrapped.Inner != "":
			return e.decide(unwrapped.Inner, depth+1)

		case unwrapped.Host != "":
			return e.policy.CheckWithHost(cmd.Name, cmd.Args, unwrapped.Host)

		default:
			// Recognized wrapper with nothing extracted; fall back to a
			// plain lookup on the original command.
			return e.policy.Check(cmd.Name, cmd.Args)
		}
	}

	return e.policy.Check(cmd.Name, cmd.Args)
}
