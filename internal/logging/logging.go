// Package logging sets up structured JSON logging to a file. The MCP stdio
// transport shares stdout with the protocol, so logs never go to the
// standard streams.
package logging

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Setup directs the default slog logger to logs/<name>.json under dir,
// creating the directory as needed. The returned file stays open for the
// lifetime of the process.
func Setup(dir, name string) (*os.File, error) {
	if dir == "" {
		dir = "logs"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	path := filepath.Join(dir, name+".json")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(f, nil)))
	return f, nil
}
