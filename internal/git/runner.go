package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strconv"
	"time"
)

// DefaultCommandTimeout is the default timeout for git commands
const DefaultCommandTimeout = 5 * time.Minute

// waitDelay bounds how long Wait keeps draining output after the process was killed.
// The whole process group is killed, so this only covers pipes held outside it.
const waitDelay = 250 * time.Millisecond

// ExitCodeUnknown is reported when no exit status could be observed
const ExitCodeUnknown = -1

// RawOutcome is what a Runner observed about one process
type RawOutcome struct {
	Stdout      string
	Stderr      string
	ExitCode    int
	Launched    bool   // false when the process could not start or was killed by the timeout
	LaunchError string // populated only when Launched is false
	TimedOut    bool
	Duration    time.Duration
}

// Runner executes a built command. Implementations must not involve a shell.
type Runner interface {
	Run(ctx context.Context, cmd Command, timeout time.Duration) RawOutcome
}

// ExecRunner runs commands with os/exec
type ExecRunner struct {
	// Env is appended to the inherited environment
	Env    []string
	Logger *slog.Logger
}

// NewExecRunner creates an ExecRunner that disables git's interactive credential prompts
func NewExecRunner(logger *slog.Logger) *ExecRunner {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &ExecRunner{
		Env:    []string{"GIT_TERMINAL_PROMPT=0"},
		Logger: logger,
	}
}

// Run executes cmd and waits for it to exit or for the timeout to expire.
// A non-positive timeout falls back to DefaultCommandTimeout.
func (r *ExecRunner) Run(ctx context.Context, cmd Command, timeout time.Duration) RawOutcome {
	if ctx == nil {
		ctx = context.Background()
	}
	if timeout <= 0 {
		timeout = DefaultCommandTimeout
	}
	if len(cmd.Args) == 0 {
		return RawOutcome{ExitCode: ExitCodeUnknown, LaunchError: "empty command"}
	}

	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	proc := exec.CommandContext(runCtx, cmd.Args[0], cmd.Args[1:]...)
	proc.Dir = cmd.Dir
	proc.Env = append(os.Environ(), r.Env...)
	proc.WaitDelay = waitDelay
	killProcessGroup(proc)

	var stdout, stderr bytes.Buffer
	proc.Stdout = &stdout
	proc.Stderr = &stderr

	start := time.Now()
	err := proc.Run()
	elapsed := time.Since(start)

	out := RawOutcome{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: ExitCodeUnknown,
		Duration: elapsed,
	}
	if proc.ProcessState != nil {
		out.ExitCode = proc.ProcessState.ExitCode()
	}

	switch {
	case err == nil:
		out.Launched = true
	case errors.Is(runCtx.Err(), context.DeadlineExceeded):
		out.TimedOut = true
		out.LaunchError = fmt.Sprintf("The process %q exceeded the timeout of %s seconds.",
			cmd.String(), strconv.FormatFloat(timeout.Seconds(), 'f', -1, 64))
	case runCtx.Err() != nil:
		out.LaunchError = fmt.Sprintf("The process %q was canceled: %v", cmd.String(), runCtx.Err())
	default:
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			out.Launched = true
			out.ExitCode = exitErr.ExitCode()
		} else {
			out.LaunchError = fmt.Sprintf("The process %q could not be started: %v", cmd.String(), err)
		}
	}

	r.log(cmd, out)
	return out
}

func (r *ExecRunner) log(cmd Command, out RawOutcome) {
	if r.Logger == nil {
		return
	}
	attrs := []any{
		slog.String("dir", cmd.Dir),
		slog.Int("exit_code", out.ExitCode),
		slog.Duration("duration", out.Duration),
	}
	if !out.Launched {
		attrs = append(attrs, slog.String("launch_error", out.LaunchError))
	}
	r.Logger.Debug("$ "+cmd.String(), attrs...)
}
