// Package log provides the logging interface used throughout the
// emulator core. The core only ever logs through this interface so
// that front-ends can substitute their own sink, and so that tests
// can silence output entirely.
package log

import (
	"github.com/sirupsen/logrus"
)

type Logger interface {
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
}

// New returns a Logger backed by logrus, formatted for plain
// terminal output.
func New() Logger {
	return newLogrus(logrus.InfoLevel)
}

// NewDebug returns a Logger with the debug level enabled, for use
// with the -debug flag. Debug output includes per-access bus traces
// and instruction disassembly, so it is very noisy.
func NewDebug() Logger {
	return newLogrus(logrus.DebugLevel)
}

func newLogrus(level logrus.Level) Logger {
	l := logrus.New()
	l.SetLevel(level)
	l.Formatter = &logrus.TextFormatter{
		DisableColors:    true,
		DisableTimestamp: true,
		DisableSorting:   true,
		DisableQuote:     true,
	}
	return l
}
