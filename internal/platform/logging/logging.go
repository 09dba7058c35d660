package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	hclog "github.com/hashicorp/go-hclog"
)

type Options struct {
	Level  string
	JSON   bool
	Output io.Writer
}

func New(opts Options) hclog.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	level := hclog.LevelFromString(opts.Level)
	if level == hclog.NoLevel {
		level = hclog.Info
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:       "poolwatch",
		Level:      level,
		Output:     out,
		JSONFormat: opts.JSON,
	})
}

// NewFile logs to path instead of the terminal. The TUI uses it so log lines
// never land on the alternate screen. Callers close the returned file.
func NewFile(opts Options, path string) (hclog.Logger, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	opts.Output = f
	return New(opts), f, nil
}

// Discard is for tests and for callers that were not handed a logger.
func Discard() hclog.Logger {
	return hclog.NewNullLogger()
}
