package logging

import (
	"fmt"
	"os"
)

// logger is a global reference to a shared Logger.  It defaults to verbose so
// that messages reported before Initialize are not lost.
var logger = newLogger(LogLevelVerbose)

// logLevelNames maps the names accepted on the command line and in config
// files to log levels.
var logLevelNames = map[string]int{
	"silent":  LogLevelSilent,
	"error":   LogLevelError,
	"warn":    LogLevelWarning,
	"warning": LogLevelWarning,
	"verbose": LogLevelVerbose,
}

// ParseLogLevel converts a log level name into one of the enumerated levels.
func ParseLogLevel(name string) (int, error) {
	if level, ok := logLevelNames[name]; ok {
		return level, nil
	}

	return LogLevelVerbose, fmt.Errorf("invalid log level `%s`", name)
}

// Initialize initializes the global logger with the named log level.  Invalid
// names fall back to verbose.
func Initialize(loglevelname string) {
	loglevel, _ := ParseLogLevel(loglevelname)
	logger = newLogger(loglevel)
}

// ShouldProceed indicates whether or not any errors have been logged.
func ShouldProceed() bool {
	return ErrorCount() == 0
}

// ErrorCount returns the number of errors logged so far.
func ErrorCount() int {
	logger.m.Lock()
	defer logger.m.Unlock()

	return logger.errorCount
}

// -----------------------------------------------------------------------------
// NOTE: All log functions will only display if the appropriate log level is
// set.  Most log functions will simply fail silently if below their appropriate
// log level.

// LogError logs a non-fatal error.  The kind is a short tag such as
// "Workspace" or "Compiler".
func LogError(kind string, err error) {
	logger.handleMsg(&TaggedMessage{Kind: kind, Message: err.Error(), IsError: true})
}

// LogWarning logs a warning which will be displayed when the run finishes.
func LogWarning(kind, message string) {
	logger.handleMsg(&TaggedMessage{Kind: kind, Message: message})
}

// LogInfo displays an informational message if the log level is verbose.
func LogInfo(tag, message string) {
	if logger.LogLevel == LogLevelVerbose {
		logger.m.Lock()
		defer logger.m.Unlock()

		PrintInfoMessage(tag, message)
	}
}

// LogFatal displays a fatal error and exits the program.  Fatal errors are
// displayed at every log level except silent.
func LogFatal(kind string, err error) {
	if logger.LogLevel > LogLevelSilent {
		logger.m.Lock()
		displayEndPhase(false)
		PrintErrorMessage(kind+" Error", err)
		logger.m.Unlock()
	}

	os.Exit(1)
}

// -----------------------------------------------------------------------------

// BeginPhase displays a spinner for a named phase of the run (eg. "Loading").
func BeginPhase(phase string) {
	if logger.LogLevel == LogLevelVerbose {
		logger.m.Lock()
		defer logger.m.Unlock()

		displayBeginPhase(phase)
	}
}

// EndPhase ends the current phase marking it as a success or failure.
func EndPhase(success bool) {
	logger.m.Lock()
	defer logger.m.Unlock()

	displayEndPhase(success)
}

// LogHeader displays the genlinx version and the target of the run.
func LogHeader(version, target string) {
	if logger.LogLevel == LogLevelVerbose {
		displayHeader(version, target)
	}
}

// LogFinished displays any held warnings and the concluding summary.
func LogFinished() {
	warningCount := logger.flushWarnings()

	if logger.LogLevel > LogLevelSilent {
		errorCount := ErrorCount()
		displayFinished(errorCount == 0, errorCount, warningCount)
	}
}
