package git

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	gitkiterrors "stackit.dev/gitkit/internal/errors"
)

// Service runs git operations against working trees on disk.
//
// Every operation except Clone first checks that its path is a repository and returns a
// validation error, without starting the operation's process, when it is not. All other
// failures (non-zero exits, launch failures, timeouts) come back as a Result with
// Success false and a nil error.
//
// A Service is safe for concurrent use. The timeout is its only mutable state.
type Service struct {
	runner Runner
	logger *slog.Logger

	mu      sync.RWMutex
	timeout time.Duration
}

// ServiceOption configures a Service
type ServiceOption func(*Service)

// WithRunner replaces the process runner, mainly for tests
func WithRunner(r Runner) ServiceOption {
	return func(s *Service) {
		s.runner = r
	}
}

// WithTimeout sets the initial per-process timeout
func WithTimeout(d time.Duration) ServiceOption {
	return func(s *Service) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithLogger sets the logger used for debug output
func WithLogger(l *slog.Logger) ServiceOption {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewService creates a Service with a 5 minute timeout and an ExecRunner
func NewService(opts ...ServiceOption) *Service {
	s := &Service{
		timeout: DefaultCommandTimeout,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.runner == nil {
		s.runner = NewExecRunner(s.logger)
	}
	return s
}

// SetTimeout changes the timeout applied to every later call. Non-positive values are ignored.
func (s *Service) SetTimeout(d time.Duration) *Service {
	if d > 0 {
		s.mu.Lock()
		s.timeout = d
		s.mu.Unlock()
	}
	return s
}

// Timeout returns the current per-process timeout
func (s *Service) Timeout() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.timeout
}

// IsRepository reports whether path is a usable git working tree
func (s *Service) IsRepository(ctx context.Context, path string) bool {
	return RepositoryValidator{Runner: s.runner, Timeout: s.Timeout()}.IsRepository(ctx, path)
}

// Clone clones repository into destination. The process runs in the destination's
// parent directory and no repository check is made. The error is non-nil only when
// an argument is rejected before git is started.
func (s *Service) Clone(ctx context.Context, repository, destination string, opts CloneOptions) (Result, error) {
	if strings.TrimSpace(repository) == "" {
		return Result{}, gitkiterrors.NewInvalidArgumentError("repository", "", "must not be empty")
	}
	if strings.TrimSpace(destination) == "" {
		return Result{}, gitkiterrors.NewInvalidArgumentError("destination", "", "must not be empty")
	}
	if err := checkPositional("repository", repository); err != nil {
		return Result{}, err
	}
	if err := checkPositional("destination", destination); err != nil {
		return Result{}, err
	}
	return s.execute(ctx, BuildClone(repository, destination, opts)), nil
}

// Fetch runs git fetch in path
func (s *Service) Fetch(ctx context.Context, path string, opts FetchOptions) (Result, error) {
	if err := s.requireRepository(ctx, path); err != nil {
		return Result{}, err
	}
	if err := checkPositionals(opts.Remote, opts.Branch); err != nil {
		return Result{}, err
	}
	return s.execute(ctx, BuildFetch(path, opts)), nil
}

// Pull runs git pull in path
func (s *Service) Pull(ctx context.Context, path string, opts PullOptions) (Result, error) {
	if err := s.requireRepository(ctx, path); err != nil {
		return Result{}, err
	}
	if err := checkPositionals(opts.Remote, opts.Branch); err != nil {
		return Result{}, err
	}
	return s.execute(ctx, BuildPull(path, opts)), nil
}

// Commit runs git commit -m message in path
func (s *Service) Commit(ctx context.Context, path, message string, opts CommitOptions) (Result, error) {
	if err := s.requireRepository(ctx, path); err != nil {
		return Result{}, err
	}
	return s.execute(ctx, BuildCommit(path, message, opts)), nil
}

// Push runs git push in path
func (s *Service) Push(ctx context.Context, path string, opts PushOptions) (Result, error) {
	if err := s.requireRepository(ctx, path); err != nil {
		return Result{}, err
	}
	if err := checkPositionals(opts.Remote, opts.Branch); err != nil {
		return Result{}, err
	}
	return s.execute(ctx, BuildPush(path, opts)), nil
}

// Status runs git status --porcelain in path. The output is returned verbatim.
func (s *Service) Status(ctx context.Context, path string) (Result, error) {
	if err := s.requireRepository(ctx, path); err != nil {
		return Result{}, err
	}
	return s.execute(ctx, BuildStatus(path)), nil
}

// Run dispatches op with positional args and a dynamic option set.
// args is [repository, destination] for clone, [path, message] for commit and [path] otherwise.
func (s *Service) Run(ctx context.Context, op Operation, args []string, set OptionSet) (Result, error) {
	want := 1
	switch op {
	case OpClone, OpCommit:
		want = 2
	case OpFetch, OpPull, OpPush, OpStatus:
	default:
		return Result{}, gitkiterrors.NewInvalidArgumentError("operation", op.String(), "unknown operation")
	}
	if len(args) < want {
		return Result{}, gitkiterrors.NewInvalidArgumentError("arguments", strings.Join(args, " "),
			fmt.Sprintf("%s needs %d positional argument(s), got %d", op, want, len(args)))
	}

	switch op {
	case OpClone:
		return s.Clone(ctx, args[0], args[1], CloneOptionsFrom(set))
	case OpFetch:
		return s.Fetch(ctx, args[0], FetchOptionsFrom(set))
	case OpPull:
		return s.Pull(ctx, args[0], PullOptionsFrom(set))
	case OpCommit:
		return s.Commit(ctx, args[0], args[1], CommitOptionsFrom(set))
	case OpPush:
		return s.Push(ctx, args[0], PushOptionsFrom(set))
	default:
		return s.Status(ctx, args[0])
	}
}

// Version runs `git --version` in the current directory
func (s *Service) Version(ctx context.Context) Result {
	return s.execute(ctx, BuildVersion())
}

func (s *Service) requireRepository(ctx context.Context, path string) error {
	if !s.IsRepository(ctx, path) {
		s.logger.Debug("not a git repository", slog.String("path", path))
		return gitkiterrors.NewNotRepositoryError(path)
	}
	return nil
}

func (s *Service) execute(ctx context.Context, cmd Command) Result {
	res := normalizeFor(cmd, s.runner.Run(ctx, cmd, s.Timeout()))
	if !res.Success {
		s.logger.Debug("git command did not succeed",
			slog.String("command", cmd.String()),
			slog.String("kind", res.Kind().String()),
			slog.Int("exit_code", res.ExitCode))
	}
	return res
}

// checkPositional rejects values that git would parse as an option
func checkPositional(name, value string) error {
	if strings.HasPrefix(value, "-") {
		return gitkiterrors.NewInvalidArgumentError(name, value, "must not start with '-'")
	}
	return nil
}

func checkPositionals(remote, branch string) error {
	if err := checkPositional("remote", remote); err != nil {
		return err
	}
	return checkPositional("branch", branch)
}
