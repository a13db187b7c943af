// Package debug provides opt-in debug logging using log/slog.
package debug

import (
	"log/slog"
	"os"
	"sync"
)

var (
	logger = slog.New(slog.DiscardHandler)
	mu     sync.RWMutex
)

func init() {
	if os.Getenv("LEVYT_DEBUG") != "" {
		Init(true)
	}
}

// Init enables or disables debug logging. When enabled, logs are
// written to stderr; otherwise they are discarded. Logging is also
// enabled at startup when LEVYT_DEBUG is set in the environment.
func Init(enable bool) {
	mu.Lock()
	defer mu.Unlock()
	if enable {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	} else {
		logger = slog.New(slog.DiscardHandler)
	}
}

// Debug logs a debug message.
func Debug(msg string, args ...any) {
	get().Debug(msg, args...)
}

// Info logs an info message.
func Info(msg string, args ...any) {
	get().Info(msg, args...)
}

// Warn logs a warning message.
func Warn(msg string, args ...any) {
	get().Warn(msg, args...)
}

// Error logs an error message.
func Error(msg string, args ...any) {
	get().Error(msg, args...)
}

// Logger returns the active slog.Logger.
func Logger() *slog.Logger {
	return get()
}

func get() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}
