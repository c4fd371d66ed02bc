package monplugin

import (
	"fmt"

	"github.com/consol-monitoring/monplugin/pkg/convert"
)

// Severity is the outcome of a check. The numeric value is the plugin exit code.
type Severity int

const (
	// OK is used for normal exits.
	OK Severity = iota

	// Warning is used for warnings.
	Warning

	// Critical is used for critical errors.
	Critical

	// Unknown is used for when the check runs into a problem itself.
	Unknown
)

var severityNames = map[string]Severity{
	"OK":       OK,
	"WARNING":  Warning,
	"CRITICAL": Critical,
	"UNKNOWN":  Unknown,
}

// ParseSeverity returns the Severity for its upper case name.
func ParseSeverity(name string) (Severity, error) {
	state, ok := severityNames[name]
	if !ok {
		return Unknown, fmt.Errorf("%w: %q", ErrUnknownSeverity, name)
	}

	return state, nil
}

// String returns the name used in plugin output, ex.: WARNING
func (s Severity) String() string {
	return convert.StateString(int64(s))
}

// ExitCode returns the process exit code for this severity.
// Values outside of OK..Unknown exit as Unknown, matching String.
func (s Severity) ExitCode() int {
	if s < OK || s > Unknown {
		return int(Unknown)
	}

	return int(s)
}

// WorstSeverity returns the highest of the given states, OK if none given.
func WorstSeverity(states ...Severity) Severity {
	worst := OK
	for _, s := range states {
		if s > worst {
			worst = s
		}
	}

	return worst
}
