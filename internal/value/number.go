package value

import (
	"strconv"
	"strings"
)

// Number holds a JSON number as its source literal so values round-trip
// through text without losing precision.
type Number string

// IntNumber returns the Number for an integer.
func IntNumber(i int64) Number {
	return Number(strconv.FormatInt(i, 10))
}

// FloatNumber returns the Number for a float. Integral floats keep a ".0"
// suffix so they stay floats across a render/re-parse round trip.
func FloatNumber(f float64) Number {
	formatted := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(formatted, ".eE") {
		formatted += ".0"
	}
	return Number(formatted)
}

// IsInt reports whether the literal denotes an integer.
func (n Number) IsInt() bool {
	return !strings.ContainsAny(string(n), ".eE")
}

func (n Number) Int64() (int64, error) {
	return strconv.ParseInt(string(n), 10, 64)
}

func (n Number) Float64() (float64, error) {
	return strconv.ParseFloat(string(n), 64)
}

func (n Number) String() string {
	return string(n)
}
