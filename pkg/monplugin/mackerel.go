package monplugin

import (
	"github.com/mackerelio/checkers"
)

// CheckerStatus converts the severity into a mackerel checker status.
func (s Severity) CheckerStatus() checkers.Status {
	switch s {
	case OK:
		return checkers.OK
	case Warning:
		return checkers.WARNING
	case Critical:
		return checkers.CRITICAL
	}

	return checkers.UNKNOWN
}

// SeverityFromChecker converts a mackerel checker status.
func SeverityFromChecker(status checkers.Status) Severity {
	switch status {
	case checkers.OK:
		return OK
	case checkers.WARNING:
		return Warning
	case checkers.CRITICAL:
		return Critical
	}

	return Unknown
}

// AddChecker adds the message of a mackerel checker result with its status.
func (c *Check) AddChecker(ckr *checkers.Checker) {
	if ckr == nil {
		return
	}
	c.AddMessage(SeverityFromChecker(ckr.Status), ckr.Message)
}
