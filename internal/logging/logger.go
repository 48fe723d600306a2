// Package logging provides a small structured logger for the NoC
// transfer engine: level-gated, key=value text output by default, with
// an optional JSON encoding and chainable per-operation context.
package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"sync"
	"time"
)

// Logger wraps stdlib log with level support and bound context fields.
type Logger struct {
	logger  *log.Logger
	level   LogLevel
	format  string
	mu      *sync.Mutex
	fields  []kv
}

type kv struct {
	key string
	val any
}

var (
	defaultLogger *Logger
	mu            sync.RWMutex
)

// LogLevel represents the available log levels.
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

// Config holds logging configuration.
type Config struct {
	Level  LogLevel
	Format string // "text" (default) or "json"
	Output io.Writer

	// Sync and NoColor are accepted for caller compatibility; this
	// logger always writes synchronously and never colorizes output.
	Sync    bool
	NoColor bool
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() *Config {
	return &Config{
		Level:  LevelInfo,
		Format: "text",
		Output: os.Stderr,
	}
}

// NewLogger creates a new logger.
func NewLogger(config *Config) *Logger {
	if config == nil {
		config = DefaultConfig()
	}
	output := config.Output
	if output == nil {
		output = os.Stderr
	}
	format := config.Format
	if format == "" {
		format = "text"
	}
	return &Logger{
		logger: log.New(output, "", 0),
		level:  config.Level,
		format: format,
		mu:     &sync.Mutex{},
	}
}

// Default returns the default logger, creating it if necessary.
func Default() *Logger {
	mu.RLock()
	if defaultLogger != nil {
		defer mu.RUnlock()
		return defaultLogger
	}
	mu.RUnlock()

	mu.Lock()
	defer mu.Unlock()
	if defaultLogger == nil {
		defaultLogger = NewLogger(nil)
	}
	return defaultLogger
}

// SetDefault sets the default logger.
func SetDefault(logger *Logger) {
	mu.Lock()
	defer mu.Unlock()
	defaultLogger = logger
}

// WithField returns a child logger that prepends key=value to every
// message it logs, in addition to any fields already bound.
func (l *Logger) WithField(key string, value any) *Logger {
	child := *l
	child.fields = append(append([]kv{}, l.fields...), kv{key, value})
	return &child
}

// WithPath binds the device path to subsequent messages.
func (l *Logger) WithPath(path string) *Logger {
	return l.WithField("path", path)
}

// WithRequest binds a NoC address and operation name to subsequent
// messages.
func (l *Logger) WithRequest(addr uint64, op string) *Logger {
	return l.WithField("addr", fmt.Sprintf("0x%x", addr)).WithField("op", op)
}

// WithError binds an error to subsequent messages.
func (l *Logger) WithError(err error) *Logger {
	return l.WithField("error", err)
}

func formatArgs(args []any) string {
	if len(args) == 0 {
		return ""
	}
	var result string
	for i := 0; i < len(args); i += 2 {
		if i+1 < len(args) {
			if result != "" {
				result += " "
			}
			result += fmt.Sprintf("%v=%v", args[i], args[i+1])
		}
	}
	if result != "" {
		return " " + result
	}
	return ""
}

func (l *Logger) levelName(level LogLevel) string {
	switch level {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

func (l *Logger) log(level LogLevel, msg string, args ...any) {
	if level < l.level {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.format == "json" {
		entry := map[string]any{
			"time":  time.Now().Format(time.RFC3339Nano),
			"level": l.levelName(level),
			"msg":   msg,
		}
		for _, f := range l.fields {
			entry[f.key] = f.val
		}
		for i := 0; i+1 < len(args); i += 2 {
			entry[fmt.Sprintf("%v", args[i])] = args[i+1]
		}
		encoded, err := json.Marshal(entry)
		if err != nil {
			l.logger.Printf(`{"level":"ERROR","msg":"failed to encode log entry"}`)
			return
		}
		l.logger.Println(string(encoded))
		return
	}

	var bound string
	for _, f := range l.fields {
		bound += fmt.Sprintf(" %s=%v", f.key, f.val)
	}
	l.logger.Printf("[%s] %s%s%s", l.levelName(level), msg, bound, formatArgs(args))
}

func (l *Logger) Debug(msg string, args ...any) { l.log(LevelDebug, msg, args...) }
func (l *Logger) Info(msg string, args ...any)  { l.log(LevelInfo, msg, args...) }
func (l *Logger) Warn(msg string, args ...any)  { l.log(LevelWarn, msg, args...) }
func (l *Logger) Error(msg string, args ...any) { l.log(LevelError, msg, args...) }

// Printf-style logging, for satisfying noc.Logger.
func (l *Logger) Debugf(format string, args ...any) { l.log(LevelDebug, fmt.Sprintf(format, args...)) }
func (l *Logger) Infof(format string, args ...any)  { l.log(LevelInfo, fmt.Sprintf(format, args...)) }
func (l *Logger) Warnf(format string, args ...any)  { l.log(LevelWarn, fmt.Sprintf(format, args...)) }
func (l *Logger) Errorf(format string, args ...any) { l.log(LevelError, fmt.Sprintf(format, args...)) }

// Printf satisfies the noc.Logger interface, delegating to Infof.
func (l *Logger) Printf(format string, args ...any) {
	l.Infof(format, args...)
}

// Global convenience functions against the default logger.
func Debug(msg string, args ...any) { Default().Debug(msg, args...) }
func Info(msg string, args ...any)  { Default().Info(msg, args...) }
func Warn(msg string, args ...any)  { Default().Warn(msg, args...) }
func Error(msg string, args ...any) { Default().Error(msg, args...) }
