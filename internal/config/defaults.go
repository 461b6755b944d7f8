package config

// Config holds all application configuration values.
// Defaults are set in DefaultConfig() and can be overridden via dotfile.
// NOTE: Values in the config file override defaults, including explicit
// zero values. Missing keys are left at their default values.
type Config struct {
	Policy   PolicyConfig   `json:"policy"`
	Advisory AdvisoryConfig `json:"advisory"`
	Engine   EngineConfig   `json:"engine"`
}

// PolicyConfig is the rule database consulted for commands that the
// safe-path classifiers and wrapper resolvers had no opinion on.
type PolicyConfig struct {
	// Default applies to commands matched by nothing below.
	Default string `json:"default"`

	// Name lists, matched against the command basename.
	Allow []string `json:"allow"`
	Ask   []string `json:"ask"`
	Deny  []string `json:"deny"`

	// Rules are consulted before the name lists; first match wins.
	Rules map[string][]Rule `json:"rules"`

	Hosts HostsConfig `json:"hosts"`
}

// Rule matches a command by its arguments: every token in Args must
// appear verbatim among the command's arguments. An empty Args matches
// any invocation.
type Rule struct {
	Args       []string `json:"args,omitempty"`
	Permission string   `json:"permission"`
	Reason     string   `json:"reason,omitempty"`
	Suggestion string   `json:"suggestion,omitempty"`
}

// HostsConfig classifies remote hosts extracted from ssh/scp/rsync.
type HostsConfig struct {
	Allow []string `json:"allow"`
	Deny  []string `json:"deny"`
}

// AdvisoryConfig selects the advice backend appended to Ask/Deny reasons.
type AdvisoryConfig struct {
	Backend        string `json:"backend"` // "off", "gemini" or "command"
	Model          string `json:"model"`   // gemini backend
	Command        string `json:"command"` // command backend executable
	TimeoutSeconds int    `json:"timeout_seconds"`
}

// EngineConfig bounds the decision engine.
type EngineConfig struct {
	MaxDepth int    `json:"max_depth"` // wrapper-nesting recursion cap
	TempDir  string `json:"temp_dir"`  // trusted temp root for safe-path checks
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Policy: PolicyConfig{
			Default: "ask",
			Allow: []string{
				"ls", "pwd", "echo", "cat", "head", "tail", "wc", "grep",
				"rg", "find", "file", "stat", "du", "df", "sort", "uniq",
				"cut", "tr", "diff", "which", "whoami", "id", "uname",
				"hostname", "uptime", "date", "ps", "env", "printenv",
				"true", "false", "mkdir", "touch", "git", "kubectl",
				"go", "make", "sed", "awk", "xargs", "basename", "dirname",
				"readlink", "realpath", "sleep", "printf", "test",
			},
			Ask: []string{
				"curl", "wget", "chmod", "chown", "dd", "mv", "cp", "ln",
				"kill", "pkill", "docker", "npm", "pip", "apt", "apt-get",
				"brew", "systemctl", "crontab", "mount", "umount",
			},
			Deny: []string{
				"shutdown", "reboot", "halt", "poweroff", "mkfs", "fdisk",
			},
			Rules: map[string][]Rule{
				"rm": {
					{Args: []string{"-rf"}, Permission: "deny", Reason: "recursive forced delete outside trusted paths"},
					{Args: []string{"-fr"}, Permission: "deny", Reason: "recursive forced delete outside trusted paths"},
					{Args: []string{"-Rf"}, Permission: "deny", Reason: "recursive forced delete outside trusted paths"},
					{Args: []string{"-fR"}, Permission: "deny", Reason: "recursive forced delete outside trusted paths"},
					{Args: []string{"-r"}, Permission: "deny", Reason: "recursive delete outside trusted paths"},
					{Args: []string{"-R"}, Permission: "deny", Reason: "recursive delete outside trusted paths"},
					{Permission: "ask", Reason: "deletes files"},
				},
				"git": {
					{Args: []string{"checkout"}, Permission: "ask",
						Reason:     "checkout rewrites the working tree",
						Suggestion: "Prefer 'git switch' or 'git restore' to make the intent explicit."},
					{Args: []string{"push", "--force"}, Permission: "ask",
						Reason: "force push rewrites remote history"},
					{Args: []string{"clean", "-fd"}, Permission: "ask",
						Reason: "removes untracked files"},
				},
				"kubectl": {
					{Args: []string{"delete"}, Permission: "ask", Reason: "deletes cluster resources"},
				},
				"chmod": {
					{Args: []string{"777"}, Permission: "ask", Reason: "world-writable permissions"},
				},
			},
			Hosts: HostsConfig{},
		},
		Advisory: AdvisoryConfig{
			Backend:        "off",
			Model:          "gemini-2.0-flash-lite",
			Command:        "claude-safe",
			TimeoutSeconds: 10,
		},
		Engine: EngineConfig{
			MaxDepth: 16,
			TempDir:  "/tmp",
		},
	}
}
