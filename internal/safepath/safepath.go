package safepath

import (
	"path/filepath"
	"strings"

	"github.com/Cyclone1070/bashgate/internal/analyzer"
	"github.com/Cyclone1070/bashgate/internal/decision"
)

// Checker classifies a single command. A nil result means no opinion and
// the caller falls through to the generic policy store.
type Checker interface {
	Classify(cmd analyzer.Command) *decision.Result
}

// DeleteChecker auto-allows rm when every path argument is confined to
// the temp root or the session working directory.
type DeleteChecker struct {
	canon    Canonicalizer
	tempRoot string
	workDir  string // "" when the session has no trusted project root
}

// NewDeleteChecker builds the rm classifier. workDir may be empty.
func NewDeleteChecker(canon Canonicalizer, tempRoot, workDir string) *DeleteChecker {
	return &DeleteChecker{canon: canon, tempRoot: tempRoot, workDir: workDir}
}

// Classify implements Checker.
func (c *DeleteChecker) Classify(cmd analyzer.Command) *decision.Result {
	if cmd.Name != "rm" {
		return nil
	}

	paths := pathArgs(cmd.Args)
	if len(paths) == 0 {
		// rm with no paths is left to normal handling.
		return nil
	}

	roots := []string{c.tempRoot}
	if c.workDir != "" {
		roots = append(roots, c.workDir)
	}

	// Every path must independently prove safe; one failure defers the
	// whole command.
	for _, path := range paths {
		if !c.safe(path, roots) {
			return nil
		}
	}

	return &decision.Result{
		Permission: decision.Allow,
		Reason:     "rm in /tmp or project dir",
	}
}

func (c *DeleteChecker) safe(path string, roots []string) bool {
	resolved, ok := resolveOrParent(c.canon, path)
	if !ok {
		return false
	}
	for _, root := range roots {
		if confined(resolved, root) {
			return true
		}
	}
	return false
}

// WriteChecker auto-allows tee when every output file is confined to the
// temp root. tee with no file arguments only copies stdin to stdout and
// is allowed unconditionally.
type WriteChecker struct {
	canon    Canonicalizer
	tempRoot string
}

// NewWriteChecker builds the tee classifier.
func NewWriteChecker(canon Canonicalizer, tempRoot string) *WriteChecker {
	return &WriteChecker{canon: canon, tempRoot: tempRoot}
}

// Classify implements Checker.
func (c *WriteChecker) Classify(cmd analyzer.Command) *decision.Result {
	if cmd.Name != "tee" {
		return nil
	}

	paths := pathArgs(cmd.Args)
	if len(paths) == 0 {
		return &decision.Result{
			Permission: decision.Allow,
			Reason:     "tee with no output file",
		}
	}

	for _, path := range paths {
		resolved, ok := resolveOrParent(c.canon, path)
		if !ok || !confined(resolved, c.tempRoot) {
			return nil
		}
	}

	return &decision.Result{
		Permission: decision.Allow,
		Reason:     "tee to /tmp",
	}
}

// pathArgs returns the non-flag arguments.
func pathArgs(args []string) []string {
	var paths []string
	for _, arg := range args {
		if !strings.HasPrefix(arg, "-") {
			paths = append(paths, arg)
		}
	}
	return paths
}

// resolveOrParent canonicalizes path, falling back to the parent
// directory when resolution fails. A path containing a null byte or a
// newline, or an empty path, never resolves.
func resolveOrParent(canon Canonicalizer, path string) (string, bool) {
	if path == "" || strings.ContainsAny(path, "\x00\n") {
		return "", false
	}

	if resolved, ok := canon.Canonicalize(path); ok {
		return resolved, true
	}

	parent := filepath.Dir(path)
	if parent == "" || parent == path {
		return "", false
	}
	return canon.Canonicalize(parent)
}

// confined reports whether resolved is strictly inside root: it must be
// root plus a separator plus a nonempty suffix. The root itself, or the
// root with only trailing separators, does not count.
func confined(resolved, root string) bool {
	root = strings.TrimRight(root, "/")
	if root == "" {
		return false
	}

	prefix := root + "/"
	if !strings.HasPrefix(resolved, prefix) {
		return false
	}

	suffix := strings.Trim(resolved[len(prefix):], "/")
	return suffix != ""
}
