package logging

import (
	"io"
	"os"

	"github.com/hashicorp/go-hclog"

	"jobtrack/internal/platform/config"
)

// New builds the root logger. Output goes to stderr so command output on
// stdout stays machine readable.
func New(cfg config.Config) hclog.Logger {
	return NewWithOutput(cfg, os.Stderr)
}

func NewWithOutput(cfg config.Config, out io.Writer) hclog.Logger {
	level := hclog.LevelFromString(cfg.LogLevel)
	if level == hclog.NoLevel {
		level = hclog.Warn
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:       "jobtrack",
		Level:      level,
		Output:     out,
		JSONFormat: cfg.LogJSON,
	})
}
