package tui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

// simpleHandler is a custom slog handler that writes messages without timestamps or level prefixes
type simpleHandler struct {
	writer    io.Writer
	debugMode bool
	quiet     *bool // Pointer to quiet flag so it can be changed dynamically
	mu        *sync.Mutex
}

func (h *simpleHandler) Enabled(_ context.Context, level slog.Level) bool {
	// Debug messages only enabled in debug mode
	if level == slog.LevelDebug {
		return h.debugMode
	}
	return true
}

func (h *simpleHandler) Handle(_ context.Context, record slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if *h.quiet {
		return nil
	}
	_, err := fmt.Fprintln(h.writer, record.Message)
	return err
}

func (h *simpleHandler) WithAttrs(_ []slog.Attr) slog.Handler {
	return h
}

func (h *simpleHandler) WithGroup(_ string) slog.Handler {
	return h
}

// Rotation holds lumberjack settings. Zero fields fall back to the GITKIT_LOG_* environment
// variables and then to the defaults.
type Rotation struct {
	MaxSize    int // megabytes
	MaxBackups int
	MaxAge     int // days
}

func envInt(name string, fallback int, allowZero bool) int {
	v := os.Getenv(name)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 || (n == 0 && !allowZero) {
		return fallback
	}
	return n
}

// createLumberjackLogger creates a rotating file writer
func createLumberjackLogger(logFilePath string, rot Rotation) *lumberjack.Logger {
	config := &lumberjack.Logger{
		Filename:   logFilePath,
		MaxSize:    envInt("GITKIT_LOG_MAX_SIZE", 1, false),
		MaxBackups: envInt("GITKIT_LOG_MAX_BACKUPS", 2, true),
		MaxAge:     envInt("GITKIT_LOG_MAX_AGE", 30, false),
		Compress:   false,
	}

	if rot.MaxSize > 0 {
		config.MaxSize = rot.MaxSize
	}
	if rot.MaxBackups > 0 {
		config.MaxBackups = rot.MaxBackups
	}
	if rot.MaxAge > 0 {
		config.MaxAge = rot.MaxAge
	}
	return config
}

// multiHandler fans out log records to multiple handlers
type multiHandler struct {
	handlers []slog.Handler
}

func (h *multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h *multiHandler) Handle(ctx context.Context, record slog.Record) error {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, record.Level) {
			if err := handler.Handle(ctx, record.Clone()); err != nil {
				return err
			}
		}
	}
	return nil
}

func (h *multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newHandlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		newHandlers[i] = handler.WithAttrs(attrs)
	}
	return &multiHandler{handlers: newHandlers}
}

func (h *multiHandler) WithGroup(name string) slog.Handler {
	newHandlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		newHandlers[i] = handler.WithGroup(name)
	}
	return &multiHandler{handlers: newHandlers}
}

// SplogOptions configures a Splog
type SplogOptions struct {
	// Writer receives console output. Defaults to os.Stdout.
	Writer io.Writer
	// LogFile enables the rotating file sink when non-empty
	LogFile  string
	Rotation Rotation
	// Debug prints debug messages on the console. The DEBUG environment variable also enables it.
	Debug bool
}

// Splog writes styled console messages and mirrors everything to an optional log file
type Splog struct {
	logger    *slog.Logger
	writer    io.Writer
	logWriter io.WriteCloser
	mu        sync.Mutex
	quiet     bool // suppresses console output while a spinner owns the terminal
}

// NewSplog creates a console-only Splog on stdout
func NewSplog() *Splog {
	splog, _ := NewSplogWithOptions(SplogOptions{})
	return splog
}

// NewSplogWithOptions creates a Splog with optional file logging
func NewSplogWithOptions(opts SplogOptions) (*Splog, error) {
	writer := opts.Writer
	if writer == nil {
		writer = os.Stdout
	}
	splog := &Splog{writer: writer}

	consoleHandler := &simpleHandler{
		writer:    writer,
		debugMode: opts.Debug || os.Getenv("DEBUG") != "",
		quiet:     &splog.quiet,
		mu:        &splog.mu,
	}
	handlers := []slog.Handler{consoleHandler}

	if opts.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(opts.LogFile), 0750); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}

		lumberjackLogger := createLumberjackLogger(opts.LogFile, opts.Rotation)
		splog.logWriter = lumberjackLogger

		fileHandler := slog.NewTextHandler(lumberjackLogger, &slog.HandlerOptions{
			Level: slog.LevelDebug,
			ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
				if a.Key == slog.TimeKey {
					return slog.Attr{Key: a.Key, Value: slog.StringValue(a.Value.Time().Format("2006-01-02 15:04:05.000"))}
				}
				return a
			},
		})
		handlers = append(handlers, fileHandler)
	}

	splog.logger = slog.New(&multiHandler{handlers: handlers})
	return splog, nil
}

// Logger returns the underlying structured logger. Debug records reach the console
// only in debug mode; attributes are kept for the log file.
func (s *Splog) Logger() *slog.Logger {
	return s.logger
}

// SetQuiet suppresses console output while true
func (s *Splog) SetQuiet(quiet bool) {
	s.mu.Lock()
	s.quiet = quiet
	s.mu.Unlock()
}

// IsQuiet returns whether the logger is in quiet mode.
func (s *Splog) IsQuiet() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.quiet
}

func (s *Splog) logMessage(level slog.Level, msg string) {
	s.logger.Log(context.Background(), level, msg)
}

func sprintf(format string, args []interface{}) string {
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}

// Line writes an unstyled message
// nolint // format string validation is handled internally via fmt.Sprintf
func (s *Splog) Line(format string, args ...interface{}) {
	s.logMessage(slog.LevelInfo, sprintf(format, args))
}

// Info writes a message in the success color
// nolint // format string validation is handled internally via fmt.Sprintf
func (s *Splog) Info(format string, args ...interface{}) {
	s.logMessage(slog.LevelInfo, ColorGreen(sprintf(format, args)))
}

// Comment writes a message in the comment color
// nolint // format string validation is handled internally via fmt.Sprintf
func (s *Splog) Comment(format string, args ...interface{}) {
	s.logMessage(slog.LevelInfo, ColorYellow(sprintf(format, args)))
}

// Warn writes a warning message
// nolint // format string validation is handled internally via fmt.Sprintf
func (s *Splog) Warn(format string, args ...interface{}) {
	s.logMessage(slog.LevelWarn, ColorYellow("⚠️  "+sprintf(format, args)))
}

// Error writes an error message
// nolint // format string validation is handled internally via fmt.Sprintf
func (s *Splog) Error(format string, args ...interface{}) {
	s.logMessage(slog.LevelError, ColorRed(sprintf(format, args)))
}

// Debug writes a debug message
// nolint // format string validation is handled internally via fmt.Sprintf
func (s *Splog) Debug(format string, args ...interface{}) {
	s.logMessage(slog.LevelDebug, sprintf(format, args))
}

// Raw writes text to the console as is. Nothing goes to the log file.
func (s *Splog) Raw(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.quiet {
		return
	}
	_, _ = fmt.Fprint(s.writer, text)
}

// Newline writes a newline
func (s *Splog) Newline() {
	s.Raw("\n")
}

// Close closes the log file if one was opened
func (s *Splog) Close() error {
	if s.logWriter != nil {
		return s.logWriter.Close()
	}
	return nil
}
