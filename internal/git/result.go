package git

import (
	gitkiterrors "stackit.dev/gitkit/internal/errors"
)

// ResultKind classifies a Result
type ResultKind int

const (
	// KindSuccess means git exited 0
	KindSuccess ResultKind = iota
	// KindExecutionFailure means git ran and exited non-zero
	KindExecutionFailure
	// KindLaunchFailure means git could not be started or was killed by the timeout
	KindLaunchFailure
)

func (k ResultKind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindExecutionFailure:
		return "execution_failure"
	case KindLaunchFailure:
		return "launch_failure"
	default:
		return "unknown"
	}
}

// Result is the normalized outcome of one git operation.
// Output is exactly stdout and Error exactly stderr. Exception is set only when the
// process could not be launched or supervised, never for an ordinary non-zero exit.
type Result struct {
	Success   bool   `json:"success"`
	Output    string `json:"output"`
	Error     string `json:"error"`
	ExitCode  int    `json:"exit_code"`
	Exception string `json:"exception,omitempty"`

	// Command is the argument vector that produced the result
	Command Command `json:"-"`

	timedOut bool
}

// Normalize classifies a RawOutcome
func Normalize(out RawOutcome) Result {
	res := Result{
		Output:   out.Stdout,
		Error:    out.Stderr,
		ExitCode: out.ExitCode,
	}

	if !out.Launched {
		res.timedOut = out.TimedOut
		res.Exception = out.LaunchError
		if res.Exception == "" {
			res.Exception = "process could not be launched"
		}
		return res
	}

	res.Success = out.ExitCode == 0
	return res
}

// HasException reports whether the result describes a launch failure
func (r Result) HasException() bool {
	return r.Exception != ""
}

// TimedOut reports whether the process was killed for exceeding its timeout
func (r Result) TimedOut() bool {
	return r.timedOut
}

// Kind returns the failure category of the result
func (r Result) Kind() ResultKind {
	switch {
	case r.Success:
		return KindSuccess
	case r.HasException():
		return KindLaunchFailure
	default:
		return KindExecutionFailure
	}
}

// Err returns nil for a successful result, a *errors.LaunchError for a launch failure and a
// *errors.GitCommandError for a non-zero exit. The result itself is never affected.
func (r Result) Err() error {
	switch r.Kind() {
	case KindSuccess:
		return nil
	case KindLaunchFailure:
		return gitkiterrors.NewLaunchError(r.Command.Name(), r.Command.GitArgs(), r.Command.Dir,
			r.Exception, r.timedOut, nil)
	default:
		return gitkiterrors.NewGitCommandError(r.Command.Name(), r.Command.GitArgs(), r.Command.Dir,
			r.Output, r.Error, r.ExitCode, nil)
	}
}

// normalizeFor attaches the command to the normalized outcome
func normalizeFor(cmd Command, out RawOutcome) Result {
	res := Normalize(out)
	res.Command = cmd
	return res
}
