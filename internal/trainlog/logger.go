// Package trainlog provides a tee writer that mirrors training output to
// the console and to an append-only log file, plus a structured logger
// writing through it.
package trainlog

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
)

// Logger duplicates every write to a console writer and a log file.
// The file is synced after each write so logs survive a crash.
type Logger struct {
	mu      sync.Mutex
	console io.Writer
	file    *os.File
}

// New opens path in append mode, creating it with mode 0644 if needed.
// A nil console writes to the file only.
func New(path string, console io.Writer) (*Logger, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log %s: %w", path, err)
	}
	if console == nil {
		console = io.Discard
	}
	return &Logger{console: console, file: f}, nil
}

// Write writes p to the console, then to the file, and syncs the file.
// After Close nothing is written to either.
func (l *Logger) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return 0, os.ErrClosed
	}
	if _, err := l.console.Write(p); err != nil {
		return 0, fmt.Errorf("console: %w", err)
	}
	n, err := l.file.Write(p)
	if err != nil {
		return n, fmt.Errorf("log file: %w", err)
	}
	if err := l.file.Sync(); err != nil {
		return n, fmt.Errorf("log file: %w", err)
	}
	return n, nil
}

// Flush is a no-op; every Write is already synced.
func (l *Logger) Flush() error {
	return nil
}

// Close closes the log file. Further writes fail; Close may be called again.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// Slog returns a text-format structured logger writing through l.
func (l *Logger) Slog(opts *slog.HandlerOptions) *slog.Logger {
	return slog.New(slog.NewTextHandler(l, opts))
}
