package utils

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
)

// Logger provides a centralized logging mechanism for grepninja
type Logger struct {
	warningLogger *log.Logger
	debugLogger   *log.Logger
	errorLogger   *log.Logger
	file          *os.File
	debug         bool
	mu            sync.Mutex
}

var (
	defaultLogger *Logger
	defaultMu     sync.RWMutex
)

// GetLogger returns the default logger instance (singleton pattern).
// It writes to stderr with debug output disabled until SetDebug is called.
func GetLogger() *Logger {
	defaultMu.RLock()
	l := defaultLogger
	defaultMu.RUnlock()
	if l != nil {
		return l
	}

	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultLogger == nil {
		defaultLogger = NewWriterLogger(os.Stderr)
	}
	return defaultLogger
}

// SetDefaultLogger replaces the logger behind the package-level functions.
// The debug setting of the previous default carries over. Safe to call while
// other goroutines are logging.
func SetDefaultLogger(l *Logger) {
	debug := GetLogger().DebugEnabled()
	l.SetDebug(debug)

	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = l
}

// NewWriterLogger creates a logger that writes all levels to w
func NewWriterLogger(w io.Writer) *Logger {
	return &Logger{
		warningLogger: log.New(w, "[WARN] ", log.LstdFlags),
		debugLogger:   log.New(w, "[DEBUG] ", log.LstdFlags),
		errorLogger:   log.New(w, "[ERROR] ", log.LstdFlags),
	}
}

// NewLogger creates a new logger that writes to the specified file
func NewLogger(logPath string) (*Logger, error) {
	// Ensure the directory exists
	dir := filepath.Dir(logPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	logger := NewWriterLogger(file)
	logger.file = file
	return logger, nil
}

// SetDebug enables or disables debug output
func (l *Logger) SetDebug(enabled bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.debug = enabled
}

// DebugEnabled reports whether debug output is enabled
func (l *Logger) DebugEnabled() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.debug
}

// Warning logs a warning message
func (l *Logger) Warning(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warningLogger.Printf(format, args...)
}

// Debug logs a debug message when debug output is enabled
func (l *Logger) Debug(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.debug {
		return
	}
	l.debugLogger.Printf(format, args...)
}

// Error logs an error message
func (l *Logger) Error(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errorLogger.Printf(format, args...)
}

// Close closes the log file (if any)
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

// Convenience functions for the default logger
func Warning(format string, args ...interface{}) {
	GetLogger().Warning(format, args...)
}

func Debug(format string, args ...interface{}) {
	GetLogger().Debug(format, args...)
}

func Error(format string, args ...interface{}) {
	GetLogger().Error(format, args...)
}

func SetDebug(enabled bool) {
	GetLogger().SetDebug(enabled)
}
