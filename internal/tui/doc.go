// Package tui provides console output for gitkit.
//
// It handles:
//   - Structured logging and status reporting (Splog), mirrored to a rotating log file
//   - Terminal styling and colors (using lipgloss)
//   - A progress spinner for long-running git commands (using bubbletea)
package tui
