package git

import (
	"path/filepath"
	"strconv"
	"strings"
)

// gitBinary is the program every command vector starts with
const gitBinary = "git"

// Command is a fully built git invocation: an argument vector, with Args[0] always "git",
// and the directory the process runs in. Every token is a separate element; nothing is
// ever joined into a string for a shell to split.
type Command struct {
	Args []string
	Dir  string
}

// Name returns the program name
func (c Command) Name() string {
	if len(c.Args) == 0 {
		return ""
	}
	return c.Args[0]
}

// GitArgs returns the arguments after the program name
func (c Command) GitArgs() []string {
	if len(c.Args) < 2 {
		return nil
	}
	return c.Args[1:]
}

// String renders the command for logs and error messages only
func (c Command) String() string {
	return strings.Join(c.Args, " ")
}

// argv accumulates tokens for one git subcommand
type argv []string

func newArgv(subcommand string, extra ...string) argv {
	return append(argv{gitBinary, subcommand}, extra...)
}

// flag appends a bare flag when set is true
func (a argv) flag(name string, set bool) argv {
	if set {
		return append(a, name)
	}
	return a
}

// value appends the pair [name, value] when value is non-empty
func (a argv) value(name, value string) argv {
	if value != "" {
		return append(a, name, value)
	}
	return a
}

// positional appends value as its own token when non-empty
func (a argv) positional(value string) argv {
	if value != "" {
		return append(a, value)
	}
	return a
}

// BuildClone builds `git clone [--branch b] [--depth n] [--single-branch] [--recursive] <repository> <destination>`.
// The destination is made absolute and the command runs in its parent directory.
func BuildClone(repository, destination string, opts CloneOptions) Command {
	dest := destination
	if abs, err := filepath.Abs(destination); err == nil {
		dest = abs
	}

	a := newArgv("clone").
		value("--branch", opts.Branch)
	if opts.Depth > 0 {
		a = a.value("--depth", strconv.Itoa(opts.Depth))
	}
	a = a.flag("--single-branch", opts.SingleBranch).
		flag("--recursive", opts.Recursive)
	a = append(a, repository, dest)

	return Command{Args: a, Dir: filepath.Dir(dest)}
}

// BuildFetch builds `git fetch [remote] [branch] [--prune] [--all]`
func BuildFetch(path string, opts FetchOptions) Command {
	a := newArgv("fetch").
		positional(opts.Remote).
		positional(opts.Branch).
		flag("--prune", opts.Prune).
		flag("--all", opts.All)
	return Command{Args: a, Dir: path}
}

// BuildPull builds `git pull [remote] [branch] [--rebase] [--no-commit] [--ff-only]`
func BuildPull(path string, opts PullOptions) Command {
	a := newArgv("pull").
		positional(opts.Remote).
		positional(opts.Branch).
		flag("--rebase", opts.Rebase).
		flag("--no-commit", opts.NoCommit).
		flag("--ff-only", opts.FFOnly)
	return Command{Args: a, Dir: path}
}

// BuildCommit builds `git commit [--all] [--amend] [--no-verify] [--author a] -m <message>`
func BuildCommit(path, message string, opts CommitOptions) Command {
	a := newArgv("commit").
		flag("--all", opts.All).
		flag("--amend", opts.Amend).
		flag("--no-verify", opts.NoVerify).
		value("--author", opts.Author)
	a = append(a, "-m", message)
	return Command{Args: a, Dir: path}
}

// BuildPush builds `git push [remote] [branch] [--force] [--tags]`
func BuildPush(path string, opts PushOptions) Command {
	a := newArgv("push").
		positional(opts.Remote).
		positional(opts.Branch).
		flag("--force", opts.Force).
		flag("--tags", opts.Tags)
	return Command{Args: a, Dir: path}
}

// BuildStatus builds `git status --porcelain`
func BuildStatus(path string) Command {
	return Command{Args: newArgv("status", "--porcelain"), Dir: path}
}

// BuildVersion builds `git --version`
func BuildVersion() Command {
	return Command{Args: []string{gitBinary, "--version"}}
}

// BuildRevParseGitDir builds the `git rev-parse --git-dir` probe used to detect a repository
func BuildRevParseGitDir(path string) Command {
	return Command{Args: newArgv("rev-parse", "--git-dir"), Dir: path}
}

// Build dispatches on op using a dynamic option set. args carries the positional
// arguments: [repository, destination] for clone, [path, message] for commit and
// [path] for the rest. Missing positionals are left empty; the Service validates them.
func Build(op Operation, args []string, set OptionSet) Command {
	arg := func(i int) string {
		if i < len(args) {
			return args[i]
		}
		return ""
	}

	switch op {
	case OpClone:
		return BuildClone(arg(0), arg(1), CloneOptionsFrom(set))
	case OpFetch:
		return BuildFetch(arg(0), FetchOptionsFrom(set))
	case OpPull:
		return BuildPull(arg(0), PullOptionsFrom(set))
	case OpCommit:
		return BuildCommit(arg(0), arg(1), CommitOptionsFrom(set))
	case OpPush:
		return BuildPush(arg(0), PushOptionsFrom(set))
	default:
		return BuildStatus(arg(0))
	}
}
