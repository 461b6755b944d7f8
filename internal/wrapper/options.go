package wrapper

// Value-taking option tables, one per wrapper family. These are kept as
// data rather than inline conditionals: miscounting an option's argument
// either swallows a real command token or mistakes an option value for
// the start of the inner command, so the tables must stay auditable.

// sudoValueOpts take a separate argument word.
// sudo [-AbEHnPS] [-g group] [-p prompt] [-r role] [-t type] [-u user] ...
var sudoValueOpts = map[string]bool{
	"-g": true, "-p": true, "-r": true, "-t": true, "-u": true,
	"-T": true, "-C": true, "-h": true, "-U": true,
	"--group": true, "--prompt": true, "--role": true, "--type": true,
	"--user": true, "--other-user": true, "--timeout": true,
	"--close-from": true, "--host": true,
}

// sudoClusterValueChars are the short options that consume the next word
// when they appear last in a combined cluster like -Au. Only the last
// character of a cluster is checked; an argument-consuming flag elsewhere
// in the cluster is not detected (known under-restriction, kept as-is).
var sudoClusterValueChars = map[byte]bool{
	'g': true, 'p': true, 'r': true, 't': true, 'u': true,
	'T': true, 'C': true, 'h': true, 'U': true,
}

// sshValueOpts are ssh's two-character options that take an argument.
// With an inline suffix (-p22) the value is attached; bare, they consume
// the next word.
var sshValueOpts = map[string]bool{
	"-b": true, "-c": true, "-D": true, "-E": true, "-e": true,
	"-F": true, "-I": true, "-i": true, "-J": true, "-L": true,
	"-l": true, "-m": true, "-O": true, "-o": true, "-p": true,
	"-Q": true, "-R": true, "-S": true, "-W": true, "-w": true,
}

// envValueOpts take a separate argument word.
// env [OPTION]... [-] [NAME=VALUE]... [COMMAND [ARG]...]
var envValueOpts = map[string]bool{
	"-u": true, "--unset": true,
	"-C": true, "--chdir": true,
	"-S": true, "--split-string": true,
}

// passthroughValueOpts lists the value-taking options of each simple
// pass-through wrapper. nohup has none.
var passthroughValueOpts = map[string]map[string]bool{
	"nice": {"-n": true, "--adjustment": true},
	"time": {"-o": true, "-f": true, "--output": true, "--format": true},
	"strace": {
		"-e": true, "-o": true, "-p": true, "-s": true, "-u": true, "-E": true,
	},
	"ltrace": {
		"-e": true, "-o": true, "-p": true, "-s": true, "-u": true, "-n": true,
	},
	"nohup": {},
}
