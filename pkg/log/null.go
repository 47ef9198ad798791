package log

type nullLogger struct{}

// NewNullLogger returns a Logger that discards everything. Used by
// tests and as the default when no logger is configured.
func NewNullLogger() Logger {
	return nullLogger{}
}

func (nullLogger) Infof(format string, args ...interface{})  {}
func (nullLogger) Errorf(format string, args ...interface{}) {}
func (nullLogger) Debugf(format string, args ...interface{}) {}
