// Package perifa provides the browser runtime of the Perifa no Toque site:
// the notification widgets (toasts, modals, floating and inline alerts), the
// mobile hamburger menu and the light/dark theme switcher.
//
// Every component is an explicit service object built on a dom.Window, so the
// same code runs against the real page under GOOS=js and against the
// in-memory platform in tests. The router lives in the router subpackage,
// page behaviors in pages and the assembly of the whole site in app.
package perifa

import (
	"io"
	"log/slog"

	"github.com/perifanotoque/perifa/pkg/perifa/internal"
)

// Options configures logging for the runtime.
type Options struct {
	LogWriter io.Writer // Where JSON log lines go (default os.Stdout, the browser console under wasm)
	LogLevel  string    // "debug", "info", "warn" or "error"
	Debug     bool      // Also surface the runtime's internal diagnostics
}

// Init applies options to the process-wide loggers. Call it before any
// component is constructed.
func Init(options Options) {
	if options.LogWriter != nil {
		internal.SetLogWriter(options.LogWriter)
	}

	if options.Debug {
		internal.SetInternalLogLevel(slog.LevelDebug)
	} else {
		internal.SetInternalLogLevel(slog.LevelWarn)
	}

	if options.LogLevel != "" {
		internal.SetRawLogLevel(options.LogLevel)
	}
}

// GetLogger returns the application logger for structured logging.
func GetLogger() *slog.Logger {
	return internal.GetLogger()
}

// SetLogLevel sets the minimum log level for the application logger.
func SetLogLevel(level slog.Level) {
	internal.SetLogLevel(level)
}

// SetRawLogLevel parses and sets the log level from a string (e.g., "debug", "info", "error").
func SetRawLogLevel(level string) {
	internal.SetRawLogLevel(level)
}

// Messages is the user-facing copy in one language.
type Messages = internal.Messages

// NewMessages returns the copy for the best match of the given language
// preferences, falling back to Brazilian Portuguese.
func NewMessages(languages ...string) *Messages {
	return internal.NewMessages(languages...)
}
