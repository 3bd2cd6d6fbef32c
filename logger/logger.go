package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
)

// LogLevel represents the severity of a log message
type LogLevel int

const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
	LogLevelOff
)

// String returns the string representation of a log level
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelInfo:
		return "INFO"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	case LogLevelOff:
		return "OFF"
	default:
		return "UNKNOWN"
	}
}

// ParseLogLevel parses a string into a LogLevel
func ParseLogLevel(s string) (LogLevel, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return LogLevelDebug, nil
	case "INFO":
		return LogLevelInfo, nil
	case "WARN", "WARNING":
		return LogLevelWarn, nil
	case "ERROR":
		return LogLevelError, nil
	case "OFF", "NONE":
		return LogLevelOff, nil
	default:
		return LogLevelInfo, fmt.Errorf("unknown log level: %s", s)
	}
}

var levelColors = map[LogLevel]*color.Color{
	LogLevelDebug: color.New(color.FgHiBlack),
	LogLevelInfo:  color.New(color.FgCyan),
	LogLevelWarn:  color.New(color.FgYellow),
	LogLevelError: color.New(color.FgRed, color.Bold),
}

// Logger interface for levelled logging
type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
	SetLevel(level LogLevel)
	GetLevel() LogLevel
	Enabled(level LogLevel) bool
}

// DefaultLogger implements the Logger interface
type DefaultLogger struct {
	level    LogLevel
	colorize bool
	prefix   string
	logger   *log.Logger
	mu       sync.RWMutex
}

// NewLogger creates a new logger instance
func NewLogger(output io.Writer, level LogLevel) *DefaultLogger {
	return &DefaultLogger{
		level:  level,
		logger: log.New(output, "", log.LstdFlags),
	}
}

// SetLevel sets the minimum log level
func (l *DefaultLogger) SetLevel(level LogLevel) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// GetLevel returns the current log level
func (l *DefaultLogger) GetLevel() LogLevel {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.level
}

func (l *DefaultLogger) Enabled(level LogLevel) bool {
	return level >= l.GetLevel()
}

// SetColor turns coloured level tags on or off.
func (l *DefaultLogger) SetColor(on bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.colorize = on
}

// With returns a logger sharing this logger's output and level whose
// messages are prefixed with "prefix: ".
func (l *DefaultLogger) With(prefix string) Logger {
	return &prefixedLogger{parent: l, prefix: prefix + ": "}
}

// log writes a log message if the level is enabled
func (l *DefaultLogger) log(level LogLevel, prefix, format string, args ...any) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if level < l.level {
		return
	}

	tag := "[" + level.String() + "]"
	if c, ok := levelColors[level]; ok && l.colorize {
		tag = c.Sprint(tag)
	}
	msg := fmt.Sprintf(format, args...)
	l.logger.Printf("%s %s%s", tag, prefix, msg)
}

// Debug logs a debug message
func (l *DefaultLogger) Debug(format string, args ...any) {
	l.log(LogLevelDebug, "", format, args...)
}

// Info logs an info message
func (l *DefaultLogger) Info(format string, args ...any) {
	l.log(LogLevelInfo, "", format, args...)
}

// Warn logs a warning message
func (l *DefaultLogger) Warn(format string, args ...any) {
	l.log(LogLevelWarn, "", format, args...)
}

// Error logs an error message
func (l *DefaultLogger) Error(format string, args ...any) {
	l.log(LogLevelError, "", format, args...)
}

type prefixedLogger struct {
	parent *DefaultLogger
	prefix string
}

func (p *prefixedLogger) Debug(format string, args ...any) {
	p.parent.log(LogLevelDebug, p.prefix, format, args...)
}
func (p *prefixedLogger) Info(format string, args ...any) {
	p.parent.log(LogLevelInfo, p.prefix, format, args...)
}
func (p *prefixedLogger) Warn(format string, args ...any) {
	p.parent.log(LogLevelWarn, p.prefix, format, args...)
}
func (p *prefixedLogger) Error(format string, args ...any) {
	p.parent.log(LogLevelError, p.prefix, format, args...)
}
func (p *prefixedLogger) SetLevel(level LogLevel)     { p.parent.SetLevel(level) }
func (p *prefixedLogger) GetLevel() LogLevel          { return p.parent.GetLevel() }
func (p *prefixedLogger) Enabled(level LogLevel) bool { return p.parent.Enabled(level) }

// Global logger instance
var globalLogger = NewLogger(os.Stderr, LogLevelInfo)

// Package-level convenience functions

// Default returns the global logger.
func Default() *DefaultLogger {
	return globalLogger
}

// For returns a global logger view prefixed with component.  The view
// follows later replacements of the global logger, e.g. by CaptureLog.
func For(component string) Logger {
	return &globalView{prefix: component + ": "}
}

type globalView struct {
	prefix string
}

func (g *globalView) Debug(format string, args ...any) {
	globalLogger.log(LogLevelDebug, g.prefix, format, args...)
}
func (g *globalView) Info(format string, args ...any) {
	globalLogger.log(LogLevelInfo, g.prefix, format, args...)
}
func (g *globalView) Warn(format string, args ...any) {
	globalLogger.log(LogLevelWarn, g.prefix, format, args...)
}
func (g *globalView) Error(format string, args ...any) {
	globalLogger.log(LogLevelError, g.prefix, format, args...)
}
func (g *globalView) SetLevel(level LogLevel)     { globalLogger.SetLevel(level) }
func (g *globalView) GetLevel() LogLevel          { return globalLogger.GetLevel() }
func (g *globalView) Enabled(level LogLevel) bool { return globalLogger.Enabled(level) }

// SetLogLevel sets the global log level
func SetLogLevel(level LogLevel) {
	globalLogger.SetLevel(level)
}

// GetLogLevel returns the current global log level
func GetLogLevel() LogLevel {
	return globalLogger.GetLevel()
}

// SetColor turns coloured level tags on the global logger on or off.
func SetColor(on bool) {
	globalLogger.SetColor(on)
}

// Debug logs a debug message using the global logger
func Debug(format string, args ...any) {
	globalLogger.Debug(format, args...)
}

// Info logs an info message using the global logger
func Info(format string, args ...any) {
	globalLogger.Info(format, args...)
}

// Warn logs a warning message using the global logger
func Warn(format string, args ...any) {
	globalLogger.Warn(format, args...)
}

// Error logs an error message using the global logger
func Error(format string, args ...any) {
	globalLogger.Error(format, args...)
}

// Initialize logger from environment
func init() {
	if levelStr := os.Getenv("FLOWRES_LOG_LEVEL"); levelStr != "" {
		if level, err := ParseLogLevel(levelStr); err == nil {
			SetLogLevel(level)
		}
	}

	// In test mode, default to ERROR level only
	if strings.HasSuffix(os.Args[0], ".test") {
		SetLogLevel(LogLevelError)
	}
}
