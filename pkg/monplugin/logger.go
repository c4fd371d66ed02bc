package monplugin

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/kdar/factorlog"
)

// define all available log level.
const (
	// LogVerbosityNone disables logging.
	LogVerbosityNone = 0

	// LogVerbosityDefault sets the default log level.
	LogVerbosityDefault = 1

	// LogVerbosityDebug sets the debug log level.
	LogVerbosityDebug = 2

	// LogVerbosityTrace sets trace log level.
	LogVerbosityTrace = 3
)

// LogFormat is used for all log lines. Logs go to stderr by default, stdout belongs to the plugin output.
var LogFormat = `[%{Severity}][pid:%{Pid}][%{ShortFile}:%{Line}] %{Message}`

var log = factorlog.New(os.Stderr, BuildFormatter(LogFormat))

func init() {
	SetLogLevel("warn")
}

// SetLogLevel sets the log level, one of: off, error, warn, info, debug, trace
func SetLogLevel(level string) {
	switch strings.ToLower(level) {
	case "off":
		log.SetMinMaxSeverity(factorlog.StringToSeverity("PANIC"), factorlog.StringToSeverity("PANIC"))
		log.SetVerbosity(LogVerbosityNone)
	case "error", "warn", "info":
		log.SetMinMaxSeverity(factorlog.StringToSeverity(strings.ToUpper(level)), factorlog.StringToSeverity("PANIC"))
		log.SetVerbosity(LogVerbosityDefault)
	case "debug":
		log.SetMinMaxSeverity(factorlog.StringToSeverity(strings.ToUpper(level)), factorlog.StringToSeverity("PANIC"))
		log.SetVerbosity(LogVerbosityDebug)
	case "trace":
		log.SetMinMaxSeverity(factorlog.StringToSeverity(strings.ToUpper(level)), factorlog.StringToSeverity("PANIC"))
		log.SetVerbosity(LogVerbosityTrace)
	case "":
	default:
		log.Errorf("unknown log level: %s", level)
	}
}

// SetVerbosity maps the number of -v flags to a log level.
func SetVerbosity(verbose int) {
	switch {
	case verbose >= 3:
		SetLogLevel("trace")
	case verbose == 2:
		SetLogLevel("debug")
	case verbose == 1:
		SetLogLevel("info")
	}
}

// Logger returns the shared logger, plugins use it for their own log lines.
func Logger() *factorlog.FactorLog {
	return log
}

// SetLogOutput changes the log target.
func SetLogOutput(writer io.Writer) {
	log.SetOutput(writer)
}

// BuildFormatter returns a factorlog formatter with the pid already replaced.
func BuildFormatter(format string) *factorlog.StdFormatter {
	format = strings.ReplaceAll(format, "%{Pid}", fmt.Sprintf("%d", os.Getpid()))

	return (factorlog.NewStdFormatter(format))
}

// LogError logs the error if it is not nil.
func LogError(err error) {
	if err != nil {
		logErr := log.Output(factorlog.ERROR, 2, err.Error())
		if logErr != nil {
			fmt.Fprintf(os.Stderr, "failed to log: %s (%s)\n", err.Error(), logErr.Error())
		}
	}
}
