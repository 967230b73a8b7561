package git

import (
	"context"
	"os"
	"time"
)

// RepositoryValidator decides whether a path is a usable git working tree
type RepositoryValidator struct {
	Runner  Runner
	Timeout time.Duration
}

// IsRepository returns true when path is an existing directory in which
// `git rev-parse --git-dir` succeeds. Asking git, rather than looking for a .git
// directory, also accepts linked worktrees and submodules whose .git is a file.
// It never spawns a process for a path that does not exist or is not a directory.
func (v RepositoryValidator) IsRepository(ctx context.Context, path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return false
	}

	runner := v.Runner
	if runner == nil {
		runner = NewExecRunner(nil)
	}
	out := runner.Run(ctx, BuildRevParseGitDir(path), v.Timeout)
	return out.Launched && out.ExitCode == 0
}

// IsRepository checks path with a default ExecRunner and timeout
func IsRepository(ctx context.Context, path string) bool {
	return RepositoryValidator{Timeout: DefaultCommandTimeout}.IsRepository(ctx, path)
}
