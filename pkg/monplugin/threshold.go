package monplugin

import (
	"fmt"
)

// Threshold combines a warning and a critical range.
type Threshold struct {
	Warning  *Range
	Critical *Range
}

// NewThreshold parses warning and critical range definitions, empty strings leave the range unset.
func NewThreshold(warning, critical string) (*Threshold, error) {
	warn, err := NewRange(warning)
	if err != nil {
		return nil, fmt.Errorf("warning threshold: %w", err)
	}
	crit, err := NewRange(critical)
	if err != nil {
		return nil, fmt.Errorf("critical threshold: %w", err)
	}

	return &Threshold{Warning: warn, Critical: crit}, nil
}

// Status returns the severity for the given values.
// Critical is checked against all values before warning is checked.
func (t *Threshold) Status(values ...float64) Severity {
	if t == nil {
		return OK
	}

	if t.Critical.IsSet() {
		for _, val := range values {
			if t.Critical.Check(val) {
				return Critical
			}
		}
	}

	if t.Warning.IsSet() {
		for _, val := range values {
			if t.Warning.Check(val) {
				return Warning
			}
		}
	}

	return OK
}

func (t *Threshold) String() string {
	return fmt.Sprintf("Threshold(critical=%s, warning=%s)", t.Critical.String(), t.Warning.String())
}
