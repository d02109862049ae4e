package logsvc

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/trezcool/marksheet/core"
)

// NewConsoleLogger returns a zerolog logger tagged with component.
// Debug builds get a human readable console writer, others JSON lines.
func NewConsoleLogger(w io.Writer, component string, conf *core.Config) zerolog.Logger {
	if w == nil {
		w = os.Stdout
	}
	level := zerolog.InfoLevel
	if conf.Debug {
		level = zerolog.DebugLevel
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	return zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Str("app", conf.AppName).
		Str("component", component).
		Logger()
}
