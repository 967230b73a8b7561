// Package runtime provides a context type that holds the git service, the MCP
// registry and the logger for use throughout the application.
package runtime

import (
	"fmt"
	"io"
	"time"

	"stackit.dev/gitkit/internal/config"
	"stackit.dev/gitkit/internal/git"
	"stackit.dev/gitkit/internal/mcp"
	"stackit.dev/gitkit/internal/tui"
)

// Context provides access to shared dependencies for commands
type Context struct {
	Config *config.Config
	Splog  *tui.Splog
	Git    *git.Service
	MCP    *mcp.Registry
	// ConfigPath is the file the configuration was read from, which may not exist
	ConfigPath string
	// JSON selects machine-readable output
	JSON bool
}

// Options are the global command line settings
type Options struct {
	ConfigPath string
	// Timeout overrides git.timeout from the config when positive
	Timeout time.Duration
	JSON    bool
	Verbose bool
	// Writer receives console output; nil means stdout
	Writer io.Writer
}

// NewContext wires a context from an already loaded configuration
func NewContext(cfg *config.Config, splog *tui.Splog) *Context {
	if cfg == nil {
		cfg = config.Default()
	}
	if splog == nil {
		splog = tui.NewSplog()
	}
	svc := git.NewService(
		git.WithTimeout(cfg.Git.Timeout.Duration),
		git.WithLogger(splog.Logger()),
	)
	return &Context{
		Config: cfg,
		Splog:  splog,
		Git:    svc,
		MCP:    mcp.NewRegistryFromConfig(cfg),
	}
}

// Load reads the configuration and opens the log file described by opts
func Load(opts Options) (*Context, error) {
	if opts.Timeout < 0 {
		return nil, fmt.Errorf("timeout must be positive, got %s", opts.Timeout)
	}
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	logFile := cfg.Log.File
	if logFile == "" {
		logFile = tui.GetLogFilePath()
	}
	splogOpts := tui.SplogOptions{
		Writer:  opts.Writer,
		LogFile: logFile,
		Rotation: tui.Rotation{
			MaxSize:    cfg.Log.MaxSize,
			MaxBackups: cfg.Log.MaxBackups,
			MaxAge:     cfg.Log.MaxAge,
		},
		Debug: opts.Verbose,
	}
	splog, err := tui.NewSplogWithOptions(splogOpts)
	if err != nil {
		// keep working without the file sink
		splogOpts.LogFile = ""
		splog, _ = tui.NewSplogWithOptions(splogOpts)
		splog.Debug("log file disabled: %v", err)
	}

	ctx := NewContext(cfg, splog)
	ctx.Git.SetTimeout(opts.Timeout)
	ctx.JSON = opts.JSON
	ctx.ConfigPath = opts.ConfigPath
	if ctx.ConfigPath == "" {
		ctx.ConfigPath = config.DefaultPath()
	}
	return ctx, nil
}

// Close disconnects MCP transports and flushes the log file
func (c *Context) Close() error {
	if c.MCP != nil {
		c.MCP.DisconnectAll()
	}
	if c.Splog != nil {
		return c.Splog.Close()
	}
	return nil
}
