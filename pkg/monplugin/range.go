package monplugin

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Range contains a single threshold range: https://www.monitoring-plugins.org/doc/guidelines.html#THRESHOLDFORMAT
//
// Supported forms are 10, 10:, ~:10, 10:20 and @10:20. An empty range is unset and never alerts.
type Range struct {
	input   string
	Start   float64
	End     float64
	Outside bool // alert if value is outside of Start:End, false for @ ranges
}

// NewRange parses a range definition. Whitespace is allowed around the
// numbers, a definition consisting only of whitespace is malformed.
func NewRange(def string) (*Range, error) {
	if def == "" {
		return &Range{Outside: true}, nil
	}

	if upper, err := parseBound(def); err == nil {
		return &Range{input: def, Start: 0, End: upper, Outside: true}, nil
	}

	parts := strings.Split(def, ":")
	if len(parts) != 2 {
		return nil, fmt.Errorf("%w: %s", ErrRangeSyntax, def)
	}

	rng := &Range{input: def, Outside: true}
	lower := parts[0]
	if strings.HasPrefix(lower, "@") {
		rng.Outside = false
		lower = strings.TrimPrefix(lower, "@")
	}

	switch lower {
	case "~":
		rng.Start = math.Inf(-1)
	default:
		start, err := parseBound(lower)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: start %s", ErrRangeSyntax, def, err.Error())
		}
		rng.Start = start
	}

	switch parts[1] {
	case "":
		rng.End = math.Inf(1)
	default:
		end, err := parseBound(parts[1])
		if err != nil {
			return nil, fmt.Errorf("%w: %s: end %s", ErrRangeSyntax, def, err.Error())
		}
		rng.End = end
	}

	return rng, nil
}

// MustRange is like NewRange but panics on errors.
func MustRange(def string) *Range {
	rng, err := NewRange(def)
	if err != nil {
		panic(err.Error())
	}

	return rng
}

func parseBound(str string) (float64, error) {
	num, err := strconv.ParseFloat(strings.TrimSpace(str), 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", str)
	}
	if math.IsNaN(num) {
		return 0, fmt.Errorf("%q is not a number", str)
	}

	return num, nil
}

// String returns the range as given.
func (r *Range) String() string {
	if r == nil {
		return ""
	}

	return r.input
}

// IsSet returns false for empty ranges.
func (r *Range) IsSet() bool {
	return r != nil && r.input != ""
}

// Check returns true if the value should alert.
func (r *Range) Check(value float64) bool {
	if !r.IsSet() {
		return false
	}

	violates := value < r.Start || value > r.End
	if r.Outside {
		return violates
	}

	return !violates
}
