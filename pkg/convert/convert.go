package convert

import (
	"math"
	"strconv"
	"strings"
)

// Num2String converts a float into a string, integral floats are printed without decimals
func Num2String(num float64) string {
	if math.IsInf(num, 0) || math.IsNaN(num) {
		return PluginFloat(num)
	}
	return strconv.FormatFloat(num, 'f', -1, 64)
}

// PluginFloat renders a float with the shortest representation which
// round-trips and always keeps a decimal point, so 9 becomes "9.0".
// Values with a decimal exponent below -4 or from 16 on use scientific
// notation ("1e-05", "1.5e+16").
func PluginFloat(num float64) string {
	switch {
	case math.IsNaN(num):
		return "nan"
	case math.IsInf(num, 1):
		return "inf"
	case math.IsInf(num, -1):
		return "-inf"
	}

	if num != 0 {
		exp := decimalExponent(num)
		if exp < -4 || exp >= 16 {
			return strconv.FormatFloat(num, 'e', -1, 64)
		}
	}

	str := strconv.FormatFloat(num, 'f', -1, 64)
	if !strings.Contains(str, ".") {
		str += ".0"
	}

	return str
}

// decimalExponent returns the exponent of the shortest scientific representation.
func decimalExponent(num float64) int {
	sci := strconv.FormatFloat(num, 'e', -1, 64)
	idx := strings.LastIndexByte(sci, 'e')
	exp, _ := strconv.Atoi(sci[idx+1:])

	return exp
}

// StateString returns the string corresponding to a monitoring plugin exit code
func StateString(state int64) string {
	switch state {
	case 0:
		return "OK"
	case 1:
		return "WARNING"
	case 2:
		return "CRITICAL"
	}

	return "UNKNOWN"
}
