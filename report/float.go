package report

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Float is a JSON number that always carries a fractional part, so 84 is
// written as 84.0. Magnitudes outside [1e-4, 1e16) use exponent form.
type Float float64

func (f Float) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, fmt.Errorf("report: cannot encode %v", v)
	}
	return []byte(formatFloat(v)), nil
}

func formatFloat(v float64) string {
	abs := math.Abs(v)
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(v, 'e', -1, 64)
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// Average is a student's total average. A student without any course
// record has no computed average and is written as a bare 0.
type Average struct {
	Value  float64
	Graded bool
}

func (a Average) MarshalJSON() ([]byte, error) {
	if !a.Graded {
		return []byte("0"), nil
	}
	return Float(a.Value).MarshalJSON()
}

func (a Average) String() string {
	if !a.Graded {
		return "0"
	}
	return formatFloat(a.Value)
}
