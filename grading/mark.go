package grading

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// MarkError reports a stored mark that is not a finite number. It surfaces
// when grades are computed, so only the last mark of a (student, test) pair
// is ever checked.
type MarkError struct {
	StudentID string
	TestID    string
	Line      int
	Value     string
	Err       error
}

func (e *MarkError) Error() string {
	return fmt.Sprintf("marks line %d: mark %q for test %s, student %s: %v",
		e.Line, e.Value, e.TestID, e.StudentID, e.Err)
}

func (e *MarkError) Unwrap() error {
	return e.Err
}

var (
	ErrNotNumber = errors.New("not a number")
	ErrNotFinite = errors.New("not a finite number")
)

// ParseMark parses a decimal mark. Surrounding spaces are allowed.
func ParseMark(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, ErrNotNumber
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrNotFinite
	}
	return v, nil
}
