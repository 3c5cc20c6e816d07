package logging

import (
	"sync"
)

// Logger is responsible for storing and displaying the messages produced while
// genlinx runs.  Messages may arrive from multiple goroutines so display is
// synchronized.
type Logger struct {
	errorCount int // Total encountered errors
	LogLevel   int

	// warnings is a list of all warnings to be displayed at the end of the run
	warnings []LogMessage

	// m is the mutex used to synchonize the printing of messages
	m *sync.Mutex
}

// Enumeration of the different log levels
const (
	LogLevelSilent  = iota // no output at all
	LogLevelError          // only errors and the closing summary
	LogLevelWarning        // errors, warnings, and the closing summary
	LogLevelVerbose        // everything including progress phases (DEFAULT)
)

// LogMessage is a message that can be handled by the logger.
type LogMessage interface {
	display()
	isError() bool
}

// newLogger creates a new logger struct
func newLogger(loglevel int) Logger {
	return Logger{
		LogLevel: loglevel,
		m:        &sync.Mutex{},
	}
}

// handleMsg prompts to logger to process a message.  Errors are displayed
// immediately while warnings are held until the run finishes.
func (l *Logger) handleMsg(lm LogMessage) {
	l.m.Lock()
	defer l.m.Unlock()

	if lm.isError() {
		l.errorCount++

		if l.LogLevel > LogLevelSilent {
			displayEndPhase(false)
			lm.display()
		}
	} else {
		l.warnings = append(l.warnings, lm)
	}
}

// flushWarnings displays and clears all held warnings if the log level allows.
// It returns the number of warnings that were held.
func (l *Logger) flushWarnings() int {
	l.m.Lock()
	defer l.m.Unlock()

	count := len(l.warnings)

	if l.LogLevel >= LogLevelWarning {
		for _, warning := range l.warnings {
			warning.display()
		}
	}

	l.warnings = nil
	return count
}
