package test

import (
	"fmt"
	"strings"
	"sync"
)

// Logger captures log output for assertions. It satisfies core.Logger.
type Logger struct {
	mu       sync.RWMutex
	messages []LogEntry
}

// LogEntry is a single captured message with its level.
type LogEntry struct {
	Level   string
	Message string
}

// NewTestLogger creates an empty capturing logger.
func NewTestLogger() *Logger {
	return &Logger{messages: make([]LogEntry, 0)}
}

func (l *Logger) Criticalf(s string, v ...any) { l.log("CRITICAL", s, v...) }
func (l *Logger) Errorf(s string, v ...any)    { l.log("ERROR", s, v...) }
func (l *Logger) Warningf(s string, v ...any)  { l.log("WARN", s, v...) }
func (l *Logger) Noticef(s string, v ...any)   { l.log("NOTICE", s, v...) }
func (l *Logger) Debugf(s string, v ...any)    { l.log("DEBUG", s, v...) }

func (l *Logger) log(level, format string, v ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, LogEntry{Level: level, Message: fmt.Sprintf(format, v...)})
}

// Messages returns a copy of everything logged so far.
func (l *Logger) Messages() []LogEntry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]LogEntry, len(l.messages))
	copy(out, l.messages)
	return out
}

// HasMessage checks if a message containing substr was logged at any
// level.
func (l *Logger) HasMessage(substr string) bool {
	return l.has("", substr)
}

// HasDebug checks if a debug message containing substr was logged.
func (l *Logger) HasDebug(substr string) bool {
	return l.has("DEBUG", substr)
}

// HasNotice checks if a notice message containing substr was logged.
func (l *Logger) HasNotice(substr string) bool {
	return l.has("NOTICE", substr)
}

// HasWarning checks if a warning containing substr was logged.
func (l *Logger) HasWarning(substr string) bool {
	return l.has("WARN", substr)
}

// HasError checks if an error containing substr was logged.
func (l *Logger) HasError(substr string) bool {
	return l.has("ERROR", substr)
}

func (l *Logger) has(level, substr string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, entry := range l.messages {
		if level != "" && entry.Level != level {
			continue
		}
		if strings.Contains(entry.Message, substr) {
			return true
		}
	}
	return false
}

// Clear drops all captured messages.
func (l *Logger) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = l.messages[:0]
}

// MessageCount returns the number of captured messages.
func (l *Logger) MessageCount() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.messages)
}
