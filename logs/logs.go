// Package logs owns the file-backed logger. The terminal belongs to the
// renderer, so nothing here ever writes to stdout or stderr.
package logs

import (
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/rs/zerolog"
)

var logger atomic.Pointer[zerolog.Logger]

func init() {
	nop := zerolog.Nop()
	logger.Store(&nop)
}

// Init attaches a file sink at path, creating parent directories as
// needed. Verbose lowers the level to debug. It returns a close function
// for the sink.
func Init(path string, verbose bool) (func() error, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	l := zerolog.New(f).Level(level).With().Timestamp().Logger()
	logger.Store(&l)
	return f.Close, nil
}

// L returns the current logger.
func L() *zerolog.Logger {
	return logger.Load()
}

// V logs a formatted debug message; a no-op unless Init ran with verbose.
func V(format string, args ...any) {
	logger.Load().Debug().Msgf(format, args...)
}

// Err logs an error with a short context message.
func Err(err error, msg string) {
	logger.Load().Error().Err(err).Msg(msg)
}
