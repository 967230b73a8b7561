package actions

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"stackit.dev/gitkit/internal/runtime"
	"stackit.dev/gitkit/internal/tui"
)

// DoctorOptions contains options for the doctor command
type DoctorOptions struct {
	// Path is an optional working tree to check
	Path string
}

// findings collects the problems reported by each check
type findings struct {
	warnings []string
	errors   []string
}

func (f *findings) warn(splog *tui.Splog, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	f.warnings = append(f.warnings, msg)
	splog.Warn("%s", msg)
}

func (f *findings) fail(splog *tui.Splog, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	f.errors = append(f.errors, msg)
	splog.Error("  ❌ %s", msg)
}

// DoctorAction runs diagnostic checks on the git binary, the configuration and the
// configured MCP servers
func DoctorAction(ctx context.Context, rt *runtime.Context, opts DoctorOptions) error {
	splog := rt.Splog
	f := &findings{}

	splog.Info("Running gitkit doctor...")
	splog.Newline()

	splog.Info("Environment:")
	checkEnvironment(ctx, rt, f)
	splog.Newline()

	splog.Info("Configuration:")
	checkConfiguration(rt, f)

	if opts.Path != "" {
		splog.Newline()
		splog.Info("Repository:")
		checkRepository(ctx, rt, opts.Path, f)
	}

	splog.Newline()
	splog.Info("MCP transports:")
	checkTransports(ctx, rt, f)

	splog.Newline()
	switch {
	case len(f.errors) > 0:
		splog.Warn("Doctor found %d error(s) and %d warning(s).", len(f.errors), len(f.warnings))
		return fmt.Errorf("doctor found %d error(s)", len(f.errors))
	case len(f.warnings) > 0:
		splog.Info("Doctor found %d warning(s). Your gitkit setup is mostly healthy.", len(f.warnings))
	default:
		splog.Info("✅ All checks passed. Your gitkit setup is healthy.")
	}
	return nil
}

func checkEnvironment(ctx context.Context, rt *runtime.Context, f *findings) {
	res := rt.Git.Version(ctx)
	if !res.Success {
		f.fail(rt.Splog, "git is not installed or not in PATH")
		return
	}
	rt.Splog.Info("  ✅ %s", strings.TrimSpace(res.Output))
	rt.Splog.Info("  ✅ Timeout for git commands: %s", rt.Git.Timeout())
}

func checkConfiguration(rt *runtime.Context, f *findings) {
	splog := rt.Splog
	if _, err := os.Stat(rt.ConfigPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			splog.Info("  ✅ No config file at %s, using defaults", rt.ConfigPath)
			return
		}
		f.warn(splog, "config file %s is not readable: %v", rt.ConfigPath, err)
		return
	}
	splog.Info("  ✅ Loaded %s", rt.ConfigPath)
}

func checkRepository(ctx context.Context, rt *runtime.Context, path string, f *findings) {
	if !rt.Git.IsRepository(ctx, path) {
		f.fail(rt.Splog, "%s is not a git repository", path)
		return
	}
	rt.Splog.Info("  ✅ %s is a git repository", path)
}

func checkTransports(ctx context.Context, rt *runtime.Context, f *findings) {
	splog := rt.Splog
	names := rt.MCP.Names()
	if len(names) == 0 {
		splog.Info("  ✅ No MCP transports configured")
		return
	}
	for _, name := range names {
		t, err := rt.MCP.Transport(name)
		if err != nil {
			f.fail(splog, "%v", err)
			continue
		}
		connected, err := t.Connect(ctx)
		switch {
		case err != nil:
			f.fail(splog, "%v", err)
		case !connected:
			f.warn(splog, "MCP server [%s] at %s answered but did not accept the connection", name, t.URL())
		default:
			splog.Info("  ✅ MCP server [%s] is reachable at %s", name, t.URL())
		}
	}
}
