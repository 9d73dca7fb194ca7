// Package logging builds the slog loggers repolist writes to.
//
// The TUI owns the terminal, so its records go to a file opened through
// bubbletea's LogToFile; that also captures anything written with the
// standard log package. CLI subcommands log to stderr instead.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
)

const filePrefix = "repolist"

// New returns a text logger writing records at or above level to w.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// OpenFile appends records to the file at path, creating parent
// directories. The returned closer must be called on shutdown.
func OpenFile(path string, level slog.Level) (*slog.Logger, io.Closer, error) {
	if path == "" {
		return nil, nil, fmt.Errorf("log file path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	file, err := tea.LogToFile(path, filePrefix)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return New(file, level), file, nil
}
