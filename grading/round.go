package grading

import (
	"math"
	"strconv"
)

// Round rounds x to the given number of decimal places using the exact
// binary value of x, with ties going to the even digit. 2.675 rounds to 2.67
// because the stored value is slightly below the midpoint.
func Round(x float64, places int) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	r, err := strconv.ParseFloat(strconv.FormatFloat(x, 'f', places, 64), 64)
	if err != nil {
		return x
	}
	return r
}
