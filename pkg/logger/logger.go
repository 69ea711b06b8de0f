package logger

import (
	"io"
	"log/slog"
	"path/filepath"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/datadiver/diver/pkg/config"
)

var (
	mu     sync.RWMutex
	root   *slog.Logger
	closer io.Closer
	isInit bool
)

// Init initializes the default logger from the global config. Log output
// goes to a rotating file so it never interleaves with the TUI. Calling Init
// twice is a no-op.
func Init() error {
	mu.Lock()
	defer mu.Unlock()
	if isInit {
		return nil
	}

	settings := config.Get()
	logPath := settings.Logging.File
	if !filepath.IsAbs(logPath) {
		logPath = config.BuildSettingsPath(filepath.Base(logPath))
	}

	w := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    settings.Logging.MaxSizeMB,
		MaxBackups: settings.Logging.MaxBackups,
	}

	root = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: parseLevel(settings.Logging.Level),
	}))
	closer = w
	isInit = true
	return nil
}

// InitWithWriter routes log output to w. Used by tests.
func InitWithWriter(w io.Writer, level slog.Level) {
	mu.Lock()
	defer mu.Unlock()
	root = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	closer = nil
	isInit = true
}

// WithComponent returns a logger tagged with the given component name.
// Safe to call before Init; output is discarded until the logger is
// initialized.
func WithComponent(name string) *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	if root == nil {
		return slog.New(discardHandler{})
	}
	return root.With("component", name)
}

// Close flushes and closes the underlying log file.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	isInit = false
	root = nil
	if closer != nil {
		c := closer
		closer = nil
		return c.Close()
	}
	return nil
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
