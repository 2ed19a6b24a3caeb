package mocks

import (
	"sync"

	"github.com/user/framelens/pkg/ports"
)

// Logger records message keys for verification.
type Logger struct {
	mu       sync.Mutex
	Messages []string
}

// NewLogger creates an empty recording logger.
func NewLogger() *Logger {
	return &Logger{}
}

func (l *Logger) record(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Messages = append(l.Messages, msg)
}

func (l *Logger) Debug(msg string, args ...interface{}) { l.record(msg) }
func (l *Logger) Info(msg string, args ...interface{})  { l.record(msg) }
func (l *Logger) Warn(msg string, args ...interface{})  { l.record(msg) }
func (l *Logger) Error(msg string, args ...interface{}) { l.record(msg) }

// WithComponent returns the same recorder so component messages are
// captured too.
func (l *Logger) WithComponent(component string) ports.Logger {
	return l
}

// Logged reports whether the message key was recorded.
func (l *Logger) Logged(msg string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, m := range l.Messages {
		if m == msg {
			return true
		}
	}
	return false
}

// Ensure Logger implements ports.Logger
var _ ports.Logger = (*Logger)(nil)
