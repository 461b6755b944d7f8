// Package safepath auto-allows specific destructive commands (rm, tee)
// once every path argument is proven confined to a trusted root. The
// classifiers never deny: their only outputs are "proven safe" or
// "no opinion".
package safepath

import (
	"context"
	"strings"
	"time"

	"github.com/Cyclone1070/bashgate/internal/executor"
)

// Canonicalizer resolves a path to its canonical absolute form without
// requiring the path to exist. ok is false when resolution failed, which
// callers must treat as "cannot prove safety", never as an error.
type Canonicalizer interface {
	Canonicalize(path string) (resolved string, ok bool)
}

const realpathTimeout = 5 * time.Second

// RealpathCanonicalizer resolves paths with realpath -m.
type RealpathCanonicalizer struct {
	exec executor.CommandExecutor
}

// NewRealpathCanonicalizer returns a Canonicalizer backed by the given
// command executor.
func NewRealpathCanonicalizer(exec executor.CommandExecutor) *RealpathCanonicalizer {
	return &RealpathCanonicalizer{exec: exec}
}

// Canonicalize runs realpath -m -- <path>. -m resolves paths that do not
// exist yet. Any failure (missing binary, non-zero exit, timeout) reports
// ok=false.
func (c *RealpathCanonicalizer) Canonicalize(path string) (string, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), realpathTimeout)
	defer cancel()

	out, err := c.exec.Output(ctx, "realpath", "-m", "--", path)
	if err != nil {
		return "", false
	}
	resolved := strings.TrimSpace(string(out))
	if resolved == "" {
		return "", false
	}
	return resolved, true
}
