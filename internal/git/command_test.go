package git_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"stackit.dev/gitkit/internal/git"
)

func TestBuildClone(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "checkout")

	t.Run("emits flags in fixed order before positionals", func(t *testing.T) {
		cmd := git.BuildClone("https://example.com/repo.git", dest, git.CloneOptions{
			Branch:       "main",
			Depth:        1,
			SingleBranch: true,
		})

		require.Equal(t, []string{
			"git", "clone",
			"--branch", "main",
			"--depth", "1",
			"--single-branch",
			"https://example.com/repo.git", dest,
		}, cmd.Args)
		require.Equal(t, filepath.Dir(dest), cmd.Dir)
	})

	t.Run("no options means no flags", func(t *testing.T) {
		cmd := git.BuildClone("https://example.com/repo.git", dest, git.CloneOptions{})
		require.Equal(t, []string{"git", "clone", "https://example.com/repo.git", dest}, cmd.Args)
	})

	t.Run("recursive is last flag", func(t *testing.T) {
		cmd := git.BuildClone("r", dest, git.CloneOptions{Recursive: true, SingleBranch: true})
		require.Equal(t, []string{"git", "clone", "--single-branch", "--recursive", "r", dest}, cmd.Args)
	})

	t.Run("relative destination is made absolute", func(t *testing.T) {
		cmd := git.BuildClone("r", "relative/dest", git.CloneOptions{})
		got := cmd.Args[len(cmd.Args)-1]
		require.True(t, filepath.IsAbs(got), "destination %q should be absolute", got)
		require.Equal(t, filepath.Dir(got), cmd.Dir)
	})

	t.Run("shell metacharacters stay inside one token", func(t *testing.T) {
		repo := "https://example.com/r.git; rm -rf / $(whoami) `id`"
		cmd := git.BuildClone(repo, dest, git.CloneOptions{Branch: "feat && echo pwned"})
		require.Equal(t, []string{"git", "clone", "--branch", "feat && echo pwned", repo, dest}, cmd.Args)
	})
}

func TestBuildOperations(t *testing.T) {
	const path = "/repo"

	tests := []struct {
		name string
		cmd  git.Command
		want []string
	}{
		{
			name: "fetch without options",
			cmd:  git.BuildFetch(path, git.FetchOptions{}),
			want: []string{"git", "fetch"},
		},
		{
			name: "fetch with everything",
			cmd:  git.BuildFetch(path, git.FetchOptions{Remote: "origin", Branch: "main", Prune: true, All: true}),
			want: []string{"git", "fetch", "origin", "main", "--prune", "--all"},
		},
		{
			name: "pull with everything",
			cmd: git.BuildPull(path, git.PullOptions{
				Remote: "upstream", Branch: "dev", Rebase: true, NoCommit: true, FFOnly: true,
			}),
			want: []string{"git", "pull", "upstream", "dev", "--rebase", "--no-commit", "--ff-only"},
		},
		{
			name: "pull ff-only",
			cmd:  git.BuildPull(path, git.PullOptions{FFOnly: true}),
			want: []string{"git", "pull", "--ff-only"},
		},
		{
			name: "commit message is last",
			cmd: git.BuildCommit(path, "fix: it's \"quoted\"", git.CommitOptions{
				All: true, Amend: true, NoVerify: true, Author: "A U Thor <a@example.com>",
			}),
			want: []string{
				"git", "commit", "--all", "--amend", "--no-verify",
				"--author", "A U Thor <a@example.com>",
				"-m", "fix: it's \"quoted\"",
			},
		},
		{
			name: "commit message that looks like a flag",
			cmd:  git.BuildCommit(path, "--amend", git.CommitOptions{}),
			want: []string{"git", "commit", "-m", "--amend"},
		},
		{
			name: "push with everything",
			cmd:  git.BuildPush(path, git.PushOptions{Remote: "origin", Branch: "main", Force: true, Tags: true}),
			want: []string{"git", "push", "origin", "main", "--force", "--tags"},
		},
		{
			name: "status is porcelain",
			cmd:  git.BuildStatus(path),
			want: []string{"git", "status", "--porcelain"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.cmd.Args)
			require.Equal(t, path, tt.cmd.Dir)
			require.Equal(t, "git", tt.cmd.Name())
		})
	}
}

func TestBuild(t *testing.T) {
	t.Run("ignores unrecognized keys", func(t *testing.T) {
		cmd := git.Build(git.OpFetch, []string{"/repo"}, git.OptionSet{
			"prune":   true,
			"rebase":  true,
			"--force": true,
			"depht":   3,
		})
		require.Equal(t, []string{"git", "fetch", "--prune"}, cmd.Args)
	})

	t.Run("decodes integer and string values", func(t *testing.T) {
		dest := filepath.Join(t.TempDir(), "d")
		cmd := git.Build(git.OpClone, []string{"r", dest}, git.OptionSet{"depth": "3", "branch": "dev"})
		require.Equal(t, []string{"git", "clone", "--branch", "dev", "--depth", "3", "r", dest}, cmd.Args)
	})

	t.Run("filtering twice builds the same vector", func(t *testing.T) {
		set := git.OptionSet{"remote": "origin", "branch": "", "prune": false, "all": true}
		once := git.Build(git.OpFetch, []string{"/repo"}, set.Filter())
		twice := git.Build(git.OpFetch, []string{"/repo"}, set.Filter().Filter())
		require.Equal(t, once.Args, twice.Args)
		require.Equal(t, []string{"git", "fetch", "origin", "--all"}, once.Args)
	})

	t.Run("every operation starts with git", func(t *testing.T) {
		for _, op := range []git.Operation{git.OpClone, git.OpFetch, git.OpPull, git.OpCommit, git.OpPush, git.OpStatus} {
			cmd := git.Build(op, []string{"/a", "b"}, nil)
			require.Equal(t, "git", cmd.Args[0], op.String())
			require.Equal(t, op.String(), cmd.Args[1])
		}
	})
}
