package wrapper

import (
	"strings"

	"github.com/Cyclone1070/bashgate/internal/analyzer"
)

// resolveShell handles sh/bash/zsh -c invocations. The token following -c
// is the inner command; exactly one layer of matching surrounding quotes
// is stripped so the engine can re-tokenize what the shell would run.
func resolveShell(cmd analyzer.Command) *UnwrapResult {
	if len(cmd.Args) < 2 {
		return nil
	}

	cPos := -1
	for i, arg := range cmd.Args {
		if arg == "-c" {
			cPos = i
			break
		}
	}
	if cPos < 0 || cPos+1 >= len(cmd.Args) {
		return nil
	}

	return &UnwrapResult{
		Wrapper: cmd.Name,
		Inner:   stripQuotes(cmd.Args[cPos+1]),
	}
}

// stripQuotes removes one layer of matching surrounding single or double
// quotes, if present.
func stripQuotes(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if first == last && (first == '\'' || first == '"') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
