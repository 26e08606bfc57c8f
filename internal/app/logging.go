package app

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"
)

// LogLevel is the severity of a log entry.
type LogLevel int

// Log levels, lowest first.
const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
)

var levelNames = [...]string{
	LogLevelDebug: "DEBUG",
	LogLevelInfo:  "INFO",
	LogLevelWarn:  "WARN",
	LogLevelError: "ERROR",
}

// String returns the upper-case level name.
func (l LogLevel) String() string {
	if l < 0 || int(l) >= len(levelNames) {
		return "UNKNOWN"
	}
	return levelNames[l]
}

// ParseLogLevel maps a level name to a LogLevel, ignoring case and
// surrounding space. "warning" is accepted for warn; anything unknown is
// treated as info.
func ParseLogLevel(s string) LogLevel {
	name := strings.ToUpper(strings.TrimSpace(s))
	if name == "WARNING" {
		return LogLevelWarn
	}
	for level, candidate := range levelNames {
		if candidate == name {
			return LogLevel(level)
		}
	}
	return LogLevelInfo
}

const logTimeFormat = "2006-01-02T15:04:05.000"

// logSink is shared by a logger and every logger derived from it, so a
// level change after a config reload reaches component loggers too.
type logSink struct {
	mu       sync.Mutex
	level    LogLevel
	output   io.Writer
	disabled bool
}

func (s *logSink) write(level LogLevel, line string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.disabled || s.output == nil || level < s.level {
		return
	}
	_, _ = io.WriteString(s.output, line)
}

func (s *logSink) enabled(level LogLevel) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.disabled && s.output != nil && level >= s.level
}

// Logger writes leveled lines of the form
//
//	2006-01-02T15:04:05.000 [LEVEL] prefix: message {key=value, ...}
type Logger struct {
	sink   *logSink
	prefix string
	fields map[string]any
}

// LoggerConfig configures NewLogger.
type LoggerConfig struct {
	Level  LogLevel
	Output io.Writer // os.Stderr when nil
	Prefix string
}

// DefaultLoggerConfig logs info and above to stderr.
func DefaultLoggerConfig() LoggerConfig {
	return LoggerConfig{
		Level:  LogLevelInfo,
		Output: os.Stderr,
		Prefix: "selex",
	}
}

// NewLogger creates a logger from cfg.
func NewLogger(cfg LoggerConfig) *Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	return &Logger{
		sink:   &logSink{level: cfg.Level, output: out},
		prefix: cfg.Prefix,
	}
}

// WithField returns a child logger carrying key=value.
func (l *Logger) WithField(key string, value any) *Logger {
	return l.WithFields(map[string]any{key: value})
}

// WithFields returns a child logger carrying fields in addition to the
// parent's. The parent is not modified.
func (l *Logger) WithFields(fields map[string]any) *Logger {
	merged := make(map[string]any, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return &Logger{sink: l.sink, prefix: l.prefix, fields: merged}
}

// WithComponent tags entries with component=name.
func (l *Logger) WithComponent(name string) *Logger {
	return l.WithField("component", name)
}

// Level returns the minimum level written.
func (l *Logger) Level() LogLevel {
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	return l.sink.level
}

// SetLevel changes the minimum level for this logger and its relatives.
func (l *Logger) SetLevel(level LogLevel) {
	l.sink.mu.Lock()
	l.sink.level = level
	l.sink.mu.Unlock()
}

// SetOutput redirects the log output.
func (l *Logger) SetOutput(w io.Writer) {
	l.sink.mu.Lock()
	l.sink.output = w
	l.sink.mu.Unlock()
}

// Disable silences the logger.
func (l *Logger) Disable() { l.setDisabled(true) }

// Enable undoes Disable.
func (l *Logger) Enable() { l.setDisabled(false) }

func (l *Logger) setDisabled(v bool) {
	l.sink.mu.Lock()
	l.sink.disabled = v
	l.sink.mu.Unlock()
}

func (l *Logger) Debug(format string, args ...any) { l.emit(LogLevelDebug, format, args) }
func (l *Logger) Info(format string, args ...any)  { l.emit(LogLevelInfo, format, args) }
func (l *Logger) Warn(format string, args ...any)  { l.emit(LogLevelWarn, format, args) }
func (l *Logger) Error(format string, args ...any) { l.emit(LogLevelError, format, args) }

func (l *Logger) emit(level LogLevel, format string, args []any) {
	if !l.sink.enabled(level) {
		return
	}
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	l.sink.write(level, l.formatLine(time.Now(), level, msg))
}

func (l *Logger) formatLine(now time.Time, level LogLevel, msg string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s [%s] ", now.Format(logTimeFormat), level)
	if l.prefix != "" {
		b.WriteString(l.prefix + ": ")
	}
	b.WriteString(msg)

	if len(l.fields) > 0 {
		keys := make([]string, 0, len(l.fields))
		for k := range l.fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		pairs := make([]string, len(keys))
		for i, k := range keys {
			pairs[i] = fmt.Sprintf("%s=%v", k, l.fields[k])
		}
		b.WriteString(" {" + strings.Join(pairs, ", ") + "}")
	}
	b.WriteByte('\n')
	return b.String()
}

// NullLogger discards everything.
var NullLogger = &Logger{sink: &logSink{disabled: true}}
