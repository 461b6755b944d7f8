// Package analyzer splits a raw bash command line into the sequence of
// simple commands it executes, in order. It is a tokenizer only: no
// expansion, no execution.
package analyzer

import (
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

// Command is one simple command from a parsed line.
// Args hold the verbatim source tokens, including any quoting, so that
// downstream unwrapping can reproduce the original text exactly.
type Command struct {
	Name string
	Args []string
	Text string
}

// Analyze parses raw as bash and returns every simple command in source
// order, including commands nested in pipelines, lists and substitutions.
// A syntax error is returned as-is; callers decide how to degrade.
func Analyze(raw string) ([]Command, error) {
	parser := syntax.NewParser(syntax.KeepComments(false), syntax.Variant(syntax.LangBash))
	file, err := parser.Parse(strings.NewReader(raw), "")
	if err != nil {
		return nil, err
	}

	var commands []Command
	syntax.Walk(file, func(node syntax.Node) bool {
		call, ok := node.(*syntax.CallExpr)
		if !ok || len(call.Args) == 0 {
			// Bare assignments (VAR=1) have no command word; skip them.
			return true
		}
		commands = append(commands, newCommand(raw, call))
		return true
	})
	return commands, nil
}

func newCommand(src string, call *syntax.CallExpr) Command {
	name := wordText(src, call.Args[0])
	if lit := call.Args[0].Lit(); lit != "" {
		name = lit
	}

	args := make([]string, 0, len(call.Args)-1)
	for _, w := range call.Args[1:] {
		args = append(args, wordText(src, w))
	}

	return Command{
		Name: name,
		Args: args,
		Text: sliceSource(src, call.Pos().Offset(), call.End().Offset()),
	}
}

// wordText returns the raw source text of a word, quotes and all.
func wordText(src string, w *syntax.Word) string {
	return sliceSource(src, w.Pos().Offset(), w.End().Offset())
}

func sliceSource(src string, start, end uint) string {
	if start > end || end > uint(len(src)) {
		return ""
	}
	return src[start:end]
}
