// Package debug provides conditional debug logging.
//
// Debug logging is enabled by setting the IV_DEBUG environment variable:
//
//	IV_DEBUG=1 iv --entity stocks
//
// When enabled, messages are written to the file named by IV_DEBUG_LOG (or
// stderr when unset) with timestamps. When disabled, every function is a
// no-op. A TUI owns the terminal, so file output is the useful mode.
package debug

import (
	"log"
	"os"
	"time"
)

var (
	enabled bool
	logger  *log.Logger
)

func init() {
	if os.Getenv("IV_DEBUG") == "" {
		return
	}
	out := os.Stderr
	if path := os.Getenv("IV_DEBUG_LOG"); path != "" {
		if f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err == nil {
			out = f
		}
	}
	enabled = true
	logger = log.New(out, "[iv] ", log.Ltime|log.Lmicroseconds)
}

// Enabled reports whether debug logging is on.
func Enabled() bool { return enabled }

// Log writes a printf-style debug message when enabled.
func Log(format string, args ...any) {
	if !enabled {
		return
	}
	logger.Printf(format, args...)
}

// LogTiming records how long a named operation took.
func LogTiming(name string, d time.Duration) {
	if !enabled {
		return
	}
	logger.Printf("%s took %v", name, d)
}
