// Package policy maps a bare command name and arguments to a default
// verdict. Lookups are total: an unmatched command resolves to the
// configured default permission, never to an error.
package policy

import (
	"fmt"
	"path/filepath"
	"slices"

	"github.com/Cyclone1070/bashgate/internal/config"
	"github.com/Cyclone1070/bashgate/internal/decision"
)

// Store evaluates commands against the configured rule database.
type Store struct {
	cfg *config.PolicyConfig
}

// NewStore creates a Store over the given policy configuration.
func NewStore(cfg *config.PolicyConfig) *Store {
	return &Store{cfg: cfg}
}

// Check returns the verdict for a command by name and arguments.
// Argument rules are consulted first, then the name lists, then the
// configured default.
func (s *Store) Check(name string, args []string) decision.Result {
	root := commandRoot(name)
	if root == "" {
		return decision.Result{Permission: decision.Ask, Reason: "empty command name"}
	}

	for _, rule := range s.cfg.Rules[root] {
		if !ruleMatches(rule, args) {
			continue
		}
		perm, err := decision.ParsePermission(rule.Permission)
		if err != nil {
			// Validation rejects these at load time; fall back to Ask
			// rather than silently allowing.
			perm = decision.Ask
		}
		return decision.Result{Permission: perm, Reason: rule.Reason, Suggestion: rule.Suggestion}
	}

	if slices.Contains(s.cfg.Allow, root) {
		return decision.Result{Permission: decision.Allow}
	}
	if slices.Contains(s.cfg.Ask, root) {
		return decision.Result{Permission: decision.Ask}
	}
	if slices.Contains(s.cfg.Deny, root) {
		return decision.Result{
			Permission: decision.Deny,
			Reason:     fmt.Sprintf("command '%s' is on the deny list", root),
		}
	}

	perm, err := decision.ParsePermission(s.cfg.Default)
	if err != nil {
		perm = decision.Ask
	}
	return decision.Result{Permission: perm}
}

// CheckWithHost returns the verdict for a command that targets a remote
// host. An empty host falls back to the plain lookup.
func (s *Store) CheckWithHost(name string, args []string, host string) decision.Result {
	if host == "" {
		return s.Check(name, args)
	}

	if slices.Contains(s.cfg.Hosts.Deny, host) {
		return decision.Result{
			Permission: decision.Deny,
			Reason:     fmt.Sprintf("remote host '%s' is on the deny list", host),
		}
	}
	if slices.Contains(s.cfg.Hosts.Allow, host) {
		return decision.Result{Permission: decision.Allow}
	}
	return decision.Result{
		Permission: decision.Ask,
		Reason:     fmt.Sprintf("remote host '%s' is not in the trusted hosts list", host),
	}
}

// ruleMatches reports whether every rule token appears verbatim among
// the command's arguments.
func ruleMatches(rule config.Rule, args []string) bool {
	for _, want := range rule.Args {
		if !slices.Contains(args, want) {
			return false
		}
	}
	return true
}

// commandRoot reduces a command name to its basename, so /usr/bin/rm
// and rm hit the same rules.
func commandRoot(name string) string {
	if name == "" {
		return ""
	}
	return filepath.Base(name)
}
