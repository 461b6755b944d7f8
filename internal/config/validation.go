package config

import (
	"fmt"

	"github.com/Cyclone1070/bashgate/internal/decision"
)

// Validate checks config values for correctness.
// Returns an error listing every invalid value.
func (c *Config) Validate() error {
	var errs []string

	if _, err := decision.ParsePermission(c.Policy.Default); err != nil {
		errs = append(errs, fmt.Sprintf("policy.default: %v", err))
	}

	for name, rules := range c.Policy.Rules {
		for i, rule := range rules {
			if _, err := decision.ParsePermission(rule.Permission); err != nil {
				errs = append(errs, fmt.Sprintf("policy.rules.%s[%d]: %v", name, i, err))
			}
		}
	}

	switch c.Advisory.Backend {
	case "off", "gemini", "command":
	default:
		errs = append(errs, fmt.Sprintf("advisory.backend must be off, gemini or command, got %q", c.Advisory.Backend))
	}
	if c.Advisory.TimeoutSeconds < 1 {
		errs = append(errs, "advisory.timeout_seconds must be >= 1")
	}
	if c.Advisory.Backend == "command" && c.Advisory.Command == "" {
		errs = append(errs, "advisory.command is required for the command backend")
	}

	if c.Engine.MaxDepth < 1 {
		errs = append(errs, "engine.max_depth must be >= 1")
	}
	if c.Engine.TempDir == "" {
		errs = append(errs, "engine.temp_dir must not be empty")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %v", errs)
	}

	return nil
}
