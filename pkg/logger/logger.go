package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// Fields is a set of structured key/value pairs attached to a log entry.
type Fields = logrus.Fields

var (
	mu      sync.Mutex
	std     = newStd()
	logFile *os.File
)

func newStd() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.000",
	})
	return l
}

// InitLog sends log output to both stderr and the file at path.
// An empty path keeps stderr only.
func InitLog(path string) error {
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file %q: %w", path, err)
	}

	mu.Lock()
	defer mu.Unlock()
	if logFile != nil {
		_ = logFile.Close()
	}
	logFile = f
	std.SetOutput(io.MultiWriter(os.Stderr, f))
	return nil
}

// FlushLog syncs and closes the log file opened by InitLog.
func FlushLog() {
	mu.Lock()
	defer mu.Unlock()
	if logFile == nil {
		return
	}
	_ = logFile.Sync()
	_ = logFile.Close()
	logFile = nil
	std.SetOutput(os.Stderr)
}

// SetLevel parses and applies a level name ("debug", "info", "warn", "error").
func SetLevel(level string) error {
	lvl, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		return err
	}
	std.SetLevel(lvl)
	return nil
}

// SetFormat switches between "text" and "json" output.
func SetFormat(format string) error {
	switch strings.ToLower(format) {
	case "", "text":
		std.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05.000",
		})
	case "json":
		std.SetFormatter(&logrus.JSONFormatter{})
	default:
		return fmt.Errorf("unknown log format %q", format)
	}
	return nil
}

// SetOutput redirects log output. Mostly useful in tests.
func SetOutput(w io.Writer) {
	std.SetOutput(w)
}

// WithFields returns an entry carrying structured fields.
func WithFields(fields Fields) *logrus.Entry {
	return std.WithFields(fields)
}

func Debug(format string, args ...interface{}) {
	std.Debugf(format, args...)
}

func Info(format string, args ...interface{}) {
	std.Infof(format, args...)
}

func Warn(format string, args ...interface{}) {
	std.Warnf(format, args...)
}

func Error(format string, args ...interface{}) {
	std.Errorf(format, args...)
}
