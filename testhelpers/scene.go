// Package testhelpers provides shared test utilities: temporary repositories and
// process runners that record what they were asked to start.
package testhelpers

import (
	"path/filepath"
	"testing"
)

// Scene represents a test scene with a temporary directory and Git repository.
type Scene struct {
	Dir  string
	Repo *GitRepo
}

// SceneSetup is a function type for setting up a scene.
type SceneSetup func(*Scene) error

// NewScene creates a repository in a fresh temporary directory and runs setup on it.
// Cleanup is handled by t.TempDir.
func NewScene(t *testing.T, setup SceneSetup) *Scene {
	t.Helper()

	// Resolve symlinks so paths compare equal to what git reports (macOS /var -> /private/var)
	root, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to resolve temp dir: %v", err)
	}
	dir := filepath.Join(root, "repo")

	repo, err := NewGitRepo(dir)
	if err != nil {
		t.Fatalf("Failed to create Git repo: %v", err)
	}

	scene := &Scene{Dir: dir, Repo: repo}
	if setup != nil {
		if err := setup(scene); err != nil {
			t.Fatalf("Setup failed: %v", err)
		}
	}
	return scene
}

// NewCommittedScene creates a scene whose repository has one commit on main.
func NewCommittedScene(t *testing.T) *Scene {
	t.Helper()
	return NewScene(t, func(s *Scene) error {
		return s.Repo.CreateChangeAndCommit("initial", "init")
	})
}
