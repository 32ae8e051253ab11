// Package logging backs the small printf-style Logger interfaces used across
// the service with logrus.
package logging

import (
	"github.com/sirupsen/logrus"
)

// Logger wraps a logrus entry scoped to one component.
type Logger struct {
	entry *logrus.Entry
}

// New builds the root logger at the given level. An unknown level falls back
// to info.
func New(level, component string) *Logger {
	l := logrus.New()
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	l.SetLevel(parsed)

	return &Logger{entry: l.WithField("component", component)}
}

// WithComponent derives a logger for another component sharing the same
// backend.
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{entry: l.entry.WithField("component", component)}
}

func (l *Logger) Debug(format string, args ...any) { l.entry.Debugf(format, args...) }
func (l *Logger) Info(format string, args ...any)  { l.entry.Infof(format, args...) }
func (l *Logger) Warn(format string, args ...any)  { l.entry.Warnf(format, args...) }
func (l *Logger) Error(format string, args ...any) { l.entry.Errorf(format, args...) }
