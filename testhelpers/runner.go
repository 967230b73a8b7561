package testhelpers

import (
	"context"
	"sync"
	"time"

	"stackit.dev/gitkit/internal/git"
)

// RecordingRunner records every command it is asked to run. When Next is nil it
// returns Outcome without starting a process, otherwise it delegates to Next.
type RecordingRunner struct {
	Next    git.Runner
	Outcome git.RawOutcome

	mu    sync.Mutex
	calls []git.Command
}

// NewRecordingRunner wraps a real ExecRunner
func NewRecordingRunner() *RecordingRunner {
	return &RecordingRunner{Next: git.NewExecRunner(nil)}
}

// NewStubRunner returns a runner that never starts a process and always reports outcome
func NewStubRunner(outcome git.RawOutcome) *RecordingRunner {
	return &RecordingRunner{Outcome: outcome}
}

// Run implements git.Runner
func (r *RecordingRunner) Run(ctx context.Context, cmd git.Command, timeout time.Duration) git.RawOutcome {
	r.mu.Lock()
	r.calls = append(r.calls, cmd)
	r.mu.Unlock()

	if r.Next != nil {
		return r.Next.Run(ctx, cmd, timeout)
	}
	return r.Outcome
}

// Calls returns a copy of the recorded commands
func (r *RecordingRunner) Calls() []git.Command {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]git.Command(nil), r.calls...)
}

// Count returns how many commands were run
func (r *RecordingRunner) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

// CountSubcommand returns how many recorded commands ran the given git subcommand
func (r *RecordingRunner) CountSubcommand(sub string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, c := range r.calls {
		if len(c.Args) > 1 && c.Args[1] == sub {
			n++
		}
	}
	return n
}
