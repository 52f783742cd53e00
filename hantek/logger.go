package hantek

// Logger is the facade every driver operation calls into: one
// trace-level line on entry, one debug-level line on success, a
// warn-level line on failure. The driver never configures a logging
// backend itself; it only calls whatever its host supplies, taking
// the logging dependency as a plain interface and leaving backend
// setup to the caller.
type Logger interface {
	Tracef(format string, args ...interface{})
	Debugf(format string, args ...interface{})
	Warnf(format string, args ...interface{})
}

// noopLogger discards everything; used when a Driver is constructed
// without a Logger.
type noopLogger struct{}

func (noopLogger) Tracef(string, ...interface{}) {}
func (noopLogger) Debugf(string, ...interface{}) {}
func (noopLogger) Warnf(string, ...interface{})  {}
