// Package debug provides conditional debug logging for wt.
//
// Debug logging is enabled by setting the WT_DEBUG environment variable:
//
//	WT_DEBUG=1 wt export --dir out
//
// When enabled, debug messages are written to stderr through a zerolog console
// writer. When disabled (default), all debug functions return immediately.
//
// Usage:
//
//	import "github.com/vanderheijden86/walkthrough/pkg/debug"
//
//	func myFunc() {
//	    debug.Log("measured %d icons", count)
//	    // ...
//	    debug.LogTiming("myFunc", elapsed)
//	}
package debug

import (
	"io"
	"os"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

var (
	// enabled is true when WT_DEBUG env var is set
	enabled atomic.Bool
	// logger is swapped by SetOutput while other goroutines log.
	logger atomic.Pointer[zerolog.Logger]
)

func init() {
	SetOutput(os.Stderr)
	if os.Getenv("WT_DEBUG") != "" {
		enabled.Store(true)
	}
}

func newLogger(w io.Writer) *zerolog.Logger {
	console := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: "15:04:05.000000",
		NoColor:    true,
	}
	l := zerolog.New(console).With().Timestamp().Str("component", "wt").Logger()
	return &l
}

func current() *zerolog.Logger {
	return logger.Load()
}

// Enabled returns whether debug logging is enabled.
func Enabled() bool {
	return enabled.Load()
}

// SetEnabled allows programmatic control of debug logging.
func SetEnabled(e bool) {
	enabled.Store(e)
}

// SetOutput redirects debug output. Safe to call while other goroutines log.
func SetOutput(w io.Writer) {
	logger.Store(newLogger(w))
}

// Log writes a debug message if debug logging is enabled.
// Uses printf-style formatting.
func Log(format string, args ...any) {
	if !Enabled() {
		return
	}
	current().Debug().Msgf(format, args...)
}

// LogTiming writes a timing message if debug logging is enabled.
func LogTiming(name string, d time.Duration) {
	if !Enabled() {
		return
	}
	current().Debug().Dur("took", d).Msg(name)
}

// LogIf writes a debug message only if the condition is true.
func LogIf(cond bool, format string, args ...any) {
	if !Enabled() || !cond {
		return
	}
	current().Debug().Msgf(format, args...)
}

// LogEnterExit logs function entry and exit with timing.
//
//	defer debug.LogEnterExit("export")()
func LogEnterExit(name string) func() {
	if !Enabled() {
		return func() {}
	}
	current().Debug().Msgf("-> %s", name)
	start := time.Now()
	return func() {
		current().Debug().Dur("took", time.Since(start)).Msgf("<- %s", name)
	}
}

// Dump logs a value with its type.
func Dump(name string, v any) {
	if !Enabled() {
		return
	}
	current().Debug().Msgf("%s: %T = %+v", name, v, v)
}

// Section logs a section header for visual organization in debug output.
func Section(name string) {
	if !Enabled() {
		return
	}
	current().Debug().Msgf("=== %s ===", name)
}

// Warn always logs, regardless of WT_DEBUG. Used for recoverable failures
// (history store, asset reload) that should not stop the program.
func Warn(err error, msg string) {
	current().Warn().Err(err).Msg(msg)
}
