// =============================================================================
// Dynamic Tables - Diagnostics
// =============================================================================
//
// The engine never prints. Every recoverable condition it meets (out-of-range
// index, refused removal, misconfigured calculation) is reported through the
// Logger interface injected at construction time.
//
// IMPLEMENTATIONS:
//   - NewLogrus : backed by a logrus logger, used by the CLI
//   - NewNoOp   : discards everything, the default for library callers
//   - Recorder  : keeps every entry in memory, used by tests
//
// =============================================================================

package diagnostics

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

// Logger is an interface for logging.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
}

// =============================================================================
// LOGRUS LOGGER
// =============================================================================

type logrusLogger struct {
	entry *logrus.Entry
}

// NewLogrus wraps a logrus logger. fields are attached to every entry.
func NewLogrus(l *logrus.Logger, fields logrus.Fields) Logger {
	return &logrusLogger{entry: l.WithFields(fields)}
}

func (l *logrusLogger) Debug(msg string, args ...interface{}) { l.entry.Debugf(msg, args...) }
func (l *logrusLogger) Info(msg string, args ...interface{})  { l.entry.Infof(msg, args...) }
func (l *logrusLogger) Warn(msg string, args ...interface{})  { l.entry.Warnf(msg, args...) }
func (l *logrusLogger) Error(msg string, args ...interface{}) { l.entry.Errorf(msg, args...) }

// NewLogrusFromConfig builds a logrus logger for the given level name and
// optional log file.
//
// RETURNS:
//   - The configured logger.
//   - A closer for the log file (a no-op when logging to stderr).
//   - An error if the level is unknown or the file cannot be opened.
func NewLogrusFromConfig(level, logFile string) (*logrus.Logger, io.Closer, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	l := logrus.New()
	l.SetLevel(lvl)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if logFile == "" {
		l.SetOutput(os.Stderr)
		return l, io.NopCloser(nil), nil
	}

	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	l.SetOutput(f)
	return l, f, nil
}

// =============================================================================
// NO-OP LOGGER
// =============================================================================

type noOpLogger struct{}

// NewNoOp returns a Logger that discards everything.
func NewNoOp() Logger { return noOpLogger{} }

func (noOpLogger) Debug(string, ...interface{}) {}
func (noOpLogger) Info(string, ...interface{})  {}
func (noOpLogger) Warn(string, ...interface{})  {}
func (noOpLogger) Error(string, ...interface{}) {}

// =============================================================================
// RECORDER
// =============================================================================

// Entry is one recorded log line.
type Entry struct {
	Level   string
	Message string
}

// Recorder is a Logger that keeps formatted entries in memory.
type Recorder struct {
	mu      sync.Mutex
	entries []Entry
}

func (r *Recorder) record(level, msg string, args []interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, Entry{Level: level, Message: fmt.Sprintf(msg, args...)})
}

func (r *Recorder) Debug(msg string, args ...interface{}) { r.record("debug", msg, args) }
func (r *Recorder) Info(msg string, args ...interface{})  { r.record("info", msg, args) }
func (r *Recorder) Warn(msg string, args ...interface{})  { r.record("warn", msg, args) }
func (r *Recorder) Error(msg string, args ...interface{}) { r.record("error", msg, args) }

// Entries returns a copy of everything recorded so far.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Entry(nil), r.entries...)
}

// Count returns how many entries were recorded at level.
func (r *Recorder) Count(level string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.entries {
		if e.Level == level {
			n++
		}
	}
	return n
}
