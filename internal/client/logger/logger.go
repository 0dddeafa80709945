package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/ezeqja22/sciencepioneers-cli/internal/client/events"
)

// Logger routes log output either to stderr via slog or onto the event
// bus while the TUI owns the terminal. Writing to stderr under an
// alt-screen TUI would corrupt the display.
type Logger struct {
	mu       sync.RWMutex
	slog     *slog.Logger
	eventBus *events.Bus
	tuiMode  bool
}

var defaultLogger = &Logger{
	slog: slog.New(slog.NewTextHandler(os.Stderr, nil)),
}

// SetEventBus sets the event bus for TUI mode logging.
func SetEventBus(bus *events.Bus) {
	defaultLogger.mu.Lock()
	defer defaultLogger.mu.Unlock()
	defaultLogger.eventBus = bus
}

// SetTUIMode enables or disables TUI mode.
// In TUI mode, logs are sent to the event bus instead of stderr.
func SetTUIMode(enabled bool) {
	defaultLogger.mu.Lock()
	defer defaultLogger.mu.Unlock()
	defaultLogger.tuiMode = enabled

	if enabled {
		defaultLogger.slog = slog.New(slog.NewTextHandler(io.Discard, nil))
	} else {
		defaultLogger.slog = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}
}

// Info logs an informational message.
func Info(format string, args ...interface{}) {
	defaultLogger.log("info", format, args...)
}

// Warn logs a warning message.
func Warn(format string, args ...interface{}) {
	defaultLogger.log("warn", format, args...)
}

// Error logs an error message.
func Error(format string, args ...interface{}) {
	defaultLogger.log("error", format, args...)
}

func (l *Logger) log(level, format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)

	l.mu.RLock()
	tuiMode := l.tuiMode
	bus := l.eventBus
	sl := l.slog
	l.mu.RUnlock()

	if tuiMode && bus != nil {
		bus.PublishLog(level, message)
		return
	}

	switch level {
	case "warn":
		sl.Warn(message)
	case "error":
		sl.Error(message)
	default:
		sl.Info(message)
	}
}
