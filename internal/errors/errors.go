// Package errors provides sentinel errors and custom error types for gitkit.
// Use errors.Is() and errors.As() to check for specific error types.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common conditions
var (
	// ErrValidation indicates a precondition failed before any git process was started
	ErrValidation = errors.New("validation failed")

	// ErrNotRepository indicates that a path is not a usable git working tree
	ErrNotRepository = errors.New("not a git repository")

	// ErrCommandFailed indicates that git ran and exited non-zero
	ErrCommandFailed = errors.New("git command failed")

	// ErrLaunch indicates that a git process could not be started or supervised
	ErrLaunch = errors.New("git process could not be launched")

	// ErrTimeout indicates that a git process was killed after exceeding its timeout
	ErrTimeout = errors.New("git process timed out")
)

// NotRepositoryError represents a path that failed the repository check
type NotRepositoryError struct {
	Path string
}

func (e *NotRepositoryError) Error() string {
	return fmt.Sprintf("The path [%s] is not a git repository.", e.Path)
}

// Is returns true if the target error is ErrNotRepository or ErrValidation
func (e *NotRepositoryError) Is(target error) bool {
	return target == ErrNotRepository || target == ErrValidation
}

// NewNotRepositoryError creates a new NotRepositoryError
func NewNotRepositoryError(path string) *NotRepositoryError {
	return &NotRepositoryError{Path: path}
}

// InvalidArgumentError represents an argument rejected before building a command
type InvalidArgumentError struct {
	Name   string
	Value  string
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid %s: %s", e.Name, e.Reason)
	}
	return fmt.Sprintf("invalid %s %q: %s", e.Name, e.Value, e.Reason)
}

// Is returns true if the target error is ErrValidation
func (e *InvalidArgumentError) Is(target error) bool {
	return target == ErrValidation
}

// NewInvalidArgumentError creates a new InvalidArgumentError
func NewInvalidArgumentError(name, value, reason string) *InvalidArgumentError {
	return &InvalidArgumentError{Name: name, Value: value, Reason: reason}
}

// GitCommandError represents a git command that ran and exited non-zero
type GitCommandError struct {
	Command  string
	Args     []string
	Dir      string
	Stdout   string
	Stderr   string
	ExitCode int
	Err      error
}

func (e *GitCommandError) Error() string {
	msg := fmt.Sprintf("git command failed: %s", e.Command)
	if len(e.Args) > 0 {
		msg += fmt.Sprintf(" %v", e.Args)
	}
	msg += fmt.Sprintf(" (exit code %d)", e.ExitCode)
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		msg += fmt.Sprintf("\nstderr: %s", stderr)
	}
	if stdout := strings.TrimSpace(e.Stdout); stdout != "" {
		msg += fmt.Sprintf("\nstdout: %s", stdout)
	}
	if e.Err != nil {
		msg += fmt.Sprintf("\n%v", e.Err)
	}
	return msg
}

// Is returns true if the target error is ErrCommandFailed
func (e *GitCommandError) Is(target error) bool {
	return target == ErrCommandFailed
}

func (e *GitCommandError) Unwrap() error {
	return e.Err
}

// NewGitCommandError creates a new GitCommandError
func NewGitCommandError(command string, args []string, dir, stdout, stderr string, exitCode int, err error) *GitCommandError {
	return &GitCommandError{
		Command:  command,
		Args:     args,
		Dir:      dir,
		Stdout:   stdout,
		Stderr:   stderr,
		ExitCode: exitCode,
		Err:      err,
	}
}

// LaunchError represents a git process that never ran to completion on its own:
// the binary was missing, the working directory was unusable, or the timeout killed it.
type LaunchError struct {
	Command  string
	Args     []string
	Dir      string
	Message  string
	TimedOut bool
	Err      error
}

func (e *LaunchError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return fmt.Sprintf("failed to launch %s: %v", e.Command, e.Err)
	}
	return fmt.Sprintf("failed to launch %s", e.Command)
}

// Is returns true for ErrLaunch, and for ErrTimeout when the process was killed by the timeout
func (e *LaunchError) Is(target error) bool {
	if target == ErrLaunch {
		return true
	}
	return target == ErrTimeout && e.TimedOut
}

func (e *LaunchError) Unwrap() error {
	return e.Err
}

// NewLaunchError creates a new LaunchError
func NewLaunchError(command string, args []string, dir, message string, timedOut bool, err error) *LaunchError {
	return &LaunchError{
		Command:  command,
		Args:     args,
		Dir:      dir,
		Message:  message,
		TimedOut: timedOut,
		Err:      err,
	}
}
