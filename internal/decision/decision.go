// Package decision defines the permission verdict types shared by the
// policy store, the safe-path classifiers and the decision engine.
package decision

import "fmt"

// Permission is a ranked verdict. Higher values are more restrictive,
// so combining verdicts means taking the maximum.
type Permission int

const (
	Allow Permission = iota
	Ask
	Deny
)

// String returns the wire representation used by the hook protocol.
func (p Permission) String() string {
	switch p {
	case Allow:
		return "allow"
	case Ask:
		return "ask"
	case Deny:
		return "deny"
	default:
		return fmt.Sprintf("permission(%d)", int(p))
	}
}

// ParsePermission converts a config string into a Permission.
func ParsePermission(s string) (Permission, error) {
	switch s {
	case "allow":
		return Allow, nil
	case "ask":
		return Ask, nil
	case "deny":
		return Deny, nil
	default:
		return Ask, fmt.Errorf("unknown permission %q", s)
	}
}

// Result is a verdict with its human-facing explanation.
// Reason may be empty; Suggestion is optional follow-up advice.
type Result struct {
	Permission Permission
	Reason     string
	Suggestion string
}

// MoreRestrictive returns the result with the higher permission rank.
// Ties keep the receiver, so the earliest verdict wins.
func (r Result) MoreRestrictive(other Result) Result {
	if other.Permission > r.Permission {
		return other
	}
	return r
}
