package testhelpers

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

const textFileName = "test.txt"

// GitRepo represents a Git repository for testing purposes.
type GitRepo struct {
	Dir  string
	repo *gogit.Repository
}

// NewGitRepo initializes a new repository on branch main in dir, with a local
// user identity so that commits made by the git binary succeed.
func NewGitRepo(dir string) (*GitRepo, error) {
	repo, err := gogit.PlainInitWithOptions(dir, &gogit.PlainInitOptions{
		InitOptions: gogit.InitOptions{
			DefaultBranch: plumbing.NewBranchReferenceName("main"),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to init repo: %w", err)
	}

	cfg, err := repo.Config()
	if err != nil {
		return nil, fmt.Errorf("failed to read repo config: %w", err)
	}
	cfg.User.Name = "Test User"
	cfg.User.Email = "test@example.com"
	if err := repo.SetConfig(cfg); err != nil {
		return nil, fmt.Errorf("failed to write repo config: %w", err)
	}

	return &GitRepo{Dir: dir, repo: repo}, nil
}

// CreateChange writes a file in the repository and stages it unless unstaged is set.
func (r *GitRepo) CreateChange(textValue string, prefix string, unstaged bool) error {
	fileName := textFileName
	if prefix != "" {
		fileName = prefix + "_" + fileName
	}
	filePath := filepath.Join(r.Dir, fileName)

	if err := os.WriteFile(filePath, []byte(textValue), 0600); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	if unstaged {
		return nil
	}

	wt, err := r.repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to open worktree: %w", err)
	}
	if _, err := wt.Add(fileName); err != nil {
		return fmt.Errorf("failed to stage %s: %w", fileName, err)
	}
	return nil
}

// CreateChangeAndCommit creates a file change and commits it.
func (r *GitRepo) CreateChangeAndCommit(textValue string, prefix string) error {
	if err := r.CreateChange(textValue, prefix, false); err != nil {
		return err
	}

	wt, err := r.repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to open worktree: %w", err)
	}
	_, err = wt.Commit(textValue, &gogit.CommitOptions{
		Author: &object.Signature{
			Name:  "Test User",
			Email: "test@example.com",
			When:  time.Now(),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// CreateBareRemote creates a bare repository next to the repo and registers it as a remote.
// Returns the path to the bare repository.
func (r *GitRepo) CreateBareRemote(name string) (string, error) {
	bareDir := r.Dir + "-" + name + ".git"
	if _, err := gogit.PlainInit(bareDir, true); err != nil {
		return "", fmt.Errorf("failed to create bare repo: %w", err)
	}

	_, err := r.repo.CreateRemote(&config.RemoteConfig{
		Name: name,
		URLs: []string{bareDir},
	})
	if err != nil {
		return "", fmt.Errorf("failed to add remote: %w", err)
	}
	return bareDir, nil
}

// PushBranch pushes a branch to a remote with the git binary.
func (r *GitRepo) PushBranch(remote, branch string) error {
	_, err := r.RunGitCommandAndGetOutput("push", "-u", remote, branch)
	return err
}

// AddWorktree creates a linked worktree on a new branch. Its .git entry is a file.
func (r *GitRepo) AddWorktree(path, branch string) error {
	_, err := r.RunGitCommandAndGetOutput("worktree", "add", "-b", branch, path)
	return err
}

// HeadMessage returns the message of the commit HEAD points to.
func (r *GitRepo) HeadMessage() (string, error) {
	head, err := r.repo.Head()
	if err != nil {
		return "", fmt.Errorf("failed to resolve HEAD: %w", err)
	}
	commit, err := r.repo.CommitObject(head.Hash())
	if err != nil {
		return "", fmt.Errorf("failed to read HEAD commit: %w", err)
	}
	return strings.TrimSpace(commit.Message), nil
}

// RunGitCommandAndGetOutput runs the git binary in the repository and returns trimmed stdout.
// GIT_CONFIG_GLOBAL=/dev/null keeps the developer's global config out of tests.
func (r *GitRepo) RunGitCommandAndGetOutput(args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = r.Dir
	cmd.Env = append(os.Environ(), "GIT_CONFIG_GLOBAL=/dev/null")
	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("git %s failed: %w, output: %s", strings.Join(args, " "), err, output)
	}
	return strings.TrimSpace(string(output)), nil
}
