package tui

import (
	"os"
	"path/filepath"
)

// GetLogFilePath returns the path to the log file.
// If GITKIT_LOG_FILE is set, uses that path.
// Otherwise, uses ~/.gitkit/logs/gitkit.log
func GetLogFilePath() string {
	if customPath := os.Getenv("GITKIT_LOG_FILE"); customPath != "" {
		return customPath
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if we can't get home dir
		return "gitkit.log"
	}

	return filepath.Join(homeDir, ".gitkit", "logs", "gitkit.log")
}
