// Package wrapper recognizes commands whose role is to launch, elevate or
// delegate to another command (sudo, ssh, env, kubectl exec, ...) and
// extracts the command actually being executed, and/or the remote host.
//
// Resolution is pure classification: a match never carries a verdict, it
// only redirects what the engine evaluates next.
package wrapper

import (
	"strings"

	"github.com/Cyclone1070/bashgate/internal/analyzer"
)

// UnwrapResult describes one unwrapping step.
// Inner is the extracted inner command line ("" when absent); Host is the
// extracted remote host ("" when absent).
type UnwrapResult struct {
	Wrapper string
	Inner   string
	Host    string
}

type resolveFunc func(analyzer.Command) *UnwrapResult

// resolvers maps a wrapper command name to its variant.
var resolvers = map[string]resolveFunc{
	"sudo":    resolveSudo,
	"ssh":     resolveSSH,
	"scp":     resolveRemoteCopy,
	"rsync":   resolveRemoteCopy,
	"env":     resolveEnv,
	"kubectl": resolveKubectl,
	"nice":    resolvePassthrough,
	"nohup":   resolvePassthrough,
	"time":    resolvePassthrough,
	"strace":  resolvePassthrough,
	"ltrace":  resolvePassthrough,
	"sh":      resolveShell,
	"bash":    resolveShell,
	"zsh":     resolveShell,
}

// Resolve returns the unwrapping of cmd, or nil when cmd is not a
// recognized wrapper. nil is a normal outcome, not an error.
func Resolve(cmd analyzer.Command) *UnwrapResult {
	resolve, ok := resolvers[cmd.Name]
	if !ok {
		return nil
	}
	return resolve(cmd)
}

// resolveSudo skips sudo's options and returns everything from the first
// non-option token on as the inner command.
func resolveSudo(cmd analyzer.Command) *UnwrapResult {
	var inner []string
	skipNext := false
	found := false

	for _, arg := range cmd.Args {
		if skipNext {
			skipNext = false
			continue
		}
		if found {
			inner = append(inner, arg)
			continue
		}
		if sudoValueOpts[arg] {
			skipNext = true
			continue
		}
		if strings.HasPrefix(arg, "-") {
			// Combined cluster like -Au: the trailing option may consume
			// the next word.
			if len(arg) > 2 && !strings.HasPrefix(arg, "--") &&
				sudoClusterValueChars[arg[len(arg)-1]] {
				skipNext = true
			}
			continue
		}
		found = true
		inner = append(inner, arg)
	}

	if len(inner) == 0 {
		return nil
	}
	return &UnwrapResult{Wrapper: "sudo", Inner: strings.Join(inner, " ")}
}

// resolveSSH extracts the target host (user@ prefix stripped) and treats
// everything after it as the remote command.
func resolveSSH(cmd analyzer.Command) *UnwrapResult {
	var host string
	var inner []string
	skipNext := false
	foundHost := false

	for _, arg := range cmd.Args {
		if skipNext {
			skipNext = false
			continue
		}
		if foundHost {
			inner = append(inner, arg)
			continue
		}
		if strings.HasPrefix(arg, "-") {
			opt := arg
			if len(arg) > 2 {
				opt = arg[:2]
			}
			// -p22 carries its value inline; bare -p consumes the next word.
			if sshValueOpts[opt] && len(arg) == 2 {
				skipNext = true
			}
			continue
		}
		foundHost = true
		host = stripUserPrefix(arg)
	}

	return &UnwrapResult{
		Wrapper: "ssh",
		Inner:   strings.Join(inner, " "),
		Host:    host,
	}
}

// resolveRemoteCopy scans scp/rsync arguments for a host:path token whose
// prefix does not look like a local path. There is no inner command.
func resolveRemoteCopy(cmd analyzer.Command) *UnwrapResult {
	result := &UnwrapResult{Wrapper: cmd.Name}

	for _, arg := range cmd.Args {
		if strings.HasPrefix(arg, "-") {
			continue
		}
		colon := strings.Index(arg, ":")
		if colon < 0 {
			continue
		}
		before := arg[:colon]
		if strings.HasPrefix(before, "/") || strings.HasPrefix(before, ".") {
			continue
		}
		result.Host = stripUserPrefix(before)
		break
	}

	return result
}

// resolveEnv skips env's options and NAME=VALUE assignments; the first
// remaining token starts the inner command.
func resolveEnv(cmd analyzer.Command) *UnwrapResult {
	var inner []string
	skipNext := false
	found := false

	for _, arg := range cmd.Args {
		if skipNext {
			skipNext = false
			continue
		}
		if found {
			inner = append(inner, arg)
			continue
		}
		if envValueOpts[arg] {
			skipNext = true
			continue
		}
		if strings.HasPrefix(arg, "-") {
			continue
		}
		if strings.Contains(arg, "=") && !strings.HasPrefix(arg, "=") {
			continue
		}
		found = true
		inner = append(inner, arg)
	}

	if len(inner) == 0 {
		return nil
	}
	return &UnwrapResult{Wrapper: "env", Inner: strings.Join(inner, " ")}
}

// resolveKubectl only unwraps the exec subcommand; other kubectl
// subcommands fall through to the policy store unexamined. The inner
// command is everything after the literal -- separator.
func resolveKubectl(cmd analyzer.Command) *UnwrapResult {
	if len(cmd.Args) == 0 || cmd.Args[0] != "exec" {
		return nil
	}

	result := &UnwrapResult{Wrapper: "kubectl exec"}
	for i, arg := range cmd.Args {
		if arg == "--" {
			result.Inner = strings.Join(cmd.Args[i+1:], " ")
			break
		}
	}
	return result
}

// resolvePassthrough handles nice, nohup, time, strace and ltrace, each
// with its own small value-taking option set.
func resolvePassthrough(cmd analyzer.Command) *UnwrapResult {
	valueOpts := passthroughValueOpts[cmd.Name]
	var inner []string
	skipNext := false
	found := false

	for _, arg := range cmd.Args {
		if skipNext {
			skipNext = false
			continue
		}
		if found {
			inner = append(inner, arg)
			continue
		}
		if strings.HasPrefix(arg, "-") {
			opt := arg
			if i := strings.Index(arg, "="); i >= 0 {
				opt = arg[:i]
			}
			if valueOpts[opt] && !strings.Contains(arg, "=") {
				skipNext = true
			}
			continue
		}
		found = true
		inner = append(inner, arg)
	}

	if len(inner) == 0 {
		return nil
	}
	return &UnwrapResult{Wrapper: cmd.Name, Inner: strings.Join(inner, " ")}
}

func stripUserPrefix(s string) string {
	if at := strings.Index(s, "@"); at >= 0 {
		return s[at+1:]
	}
	return s
}
