package main

import (
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"

	"github.com/lixenwraith/asciiplay/config"
)

// newLogger builds the process logger
// The returned closer is non-nil when logging to a file
func newLogger(cfg config.LogConfig, stderr io.Writer) (hclog.Logger, io.Closer, error) {
	var (
		output io.Writer = stderr
		closer io.Closer
	)
	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		output = f
		closer = f
	}

	logger := hclog.New(&hclog.LoggerOptions{
		Name:       "asciiplay",
		Level:      hclog.LevelFromString(cfg.Level),
		JSONFormat: cfg.Format == "json",
		Output:     output,
	})
	return logger, closer, nil
}
