// Package logging builds the zerolog logger shared by the CLI, the pipeline
// and the process runner.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// Field names used across packages.
const (
	FieldStage   = "stage"
	FieldInput   = "input"
	FieldOutput  = "output"
	FieldBackend = "backend"
)

// New returns a console logger writing to w at the given level. Colors are
// enabled only when w is a terminal and NO_COLOR is unset. An empty or
// unknown level falls back to info.
func New(w io.Writer, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	console := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.DateTime,
		NoColor:    !colorEnabled(w),
	}
	return zerolog.New(console).Level(lvl).With().Timestamp().Logger()
}

func colorEnabled(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" || strings.ToLower(os.Getenv("TERM")) == "dumb" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
