package finder

// Logger is the subset of the application loggers the pipeline writes to.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
}

// Recorder receives pipeline events for instrumentation.
// Implementations must be safe for concurrent use.
type Recorder interface {
	NameEnumerated()
	TraversalFailed()
	BufferMinted()
	BufferDispatched()
	BufferRecycled()
	MatchFound(needle string)
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...interface{}) {}
func (nopLogger) Infof(string, ...interface{})  {}
func (nopLogger) Warnf(string, ...interface{})  {}

type nopRecorder struct{}

func (nopRecorder) NameEnumerated()   {}
func (nopRecorder) TraversalFailed()  {}
func (nopRecorder) BufferMinted()     {}
func (nopRecorder) BufferDispatched() {}
func (nopRecorder) BufferRecycled()   {}
func (nopRecorder) MatchFound(string) {}

func loggerOrNop(l Logger) Logger {
	if l == nil {
		return nopLogger{}
	}
	return l
}

func recorderOrNop(r Recorder) Recorder {
	if r == nil {
		return nopRecorder{}
	}
	return r
}
