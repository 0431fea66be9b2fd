package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/hui-playground/internal/config"
)

// OpenLog creates the logger used while a sketch owns the terminal.
// Output goes to cfg.File because stderr is hidden behind the alternate
// screen. An empty file discards output. The returned closer must be
// closed when the program exits.
func OpenLog(cfg config.LogConfig) (*log.Logger, io.Closer, error) {
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("log level: %w", err)
	}

	opts := log.Options{
		ReportTimestamp: true,
		Prefix:          "hui",
		Level:           level,
	}

	if cfg.File == "" {
		return log.NewWithOptions(io.Discard, opts), io.NopCloser(nil), nil
	}

	path := config.ExpandHome(cfg.File)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}
	return log.NewWithOptions(f, opts), f, nil
}
