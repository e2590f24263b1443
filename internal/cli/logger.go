package cli

import (
	"io"

	"github.com/pterm/pterm"
)

// Logger adapts the pterm logger to the key/value Logger interfaces used by
// the engine and the transport.
type Logger struct {
	logger *pterm.Logger
}

// NewLogger returns a logger writing to w. Verbose enables debug output.
func NewLogger(w io.Writer, verbose bool) *Logger {
	level := pterm.LogLevelInfo
	if verbose {
		level = pterm.LogLevelDebug
	}
	return &Logger{logger: pterm.DefaultLogger.WithLevel(level).WithWriter(w)}
}

// NewJSONLogger returns a logger writing JSON lines to w.
func NewJSONLogger(w io.Writer, verbose bool) *Logger {
	l := NewLogger(w, verbose)
	l.logger = l.logger.WithFormatter(pterm.LogFormatterJSON)
	return l
}

func (l *Logger) Debug(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, l.logger.Args(keysAndValues...))
}

func (l *Logger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Info(msg, l.logger.Args(keysAndValues...))
}

func (l *Logger) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.Warn(msg, l.logger.Args(keysAndValues...))
}

func (l *Logger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, l.logger.Args(keysAndValues...))
}
