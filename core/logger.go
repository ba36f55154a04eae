package core

// Logger is the minimal logging surface the transport needs. The cli
// package satisfies it with a logrus-backed adapter; tests use a
// capturing implementation.
type Logger interface {
	Criticalf(format string, args ...any)
	Debugf(format string, args ...any)
	Errorf(format string, args ...any)
	Noticef(format string, args ...any)
	Warningf(format string, args ...any)
}

// SimpleLogger discards everything. It backs connections created
// without an explicit logger.
type SimpleLogger struct{}

func (s *SimpleLogger) Criticalf(format string, args ...any) {}
func (s *SimpleLogger) Debugf(format string, args ...any)    {}
func (s *SimpleLogger) Errorf(format string, args ...any)    {}
func (s *SimpleLogger) Noticef(format string, args ...any)   {}
func (s *SimpleLogger) Warningf(format string, args ...any)  {}
