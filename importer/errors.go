package importer

import "fmt"

// Import error codes.
const (
	CodeBadWeight     = "BAD_WEIGHT"
	CodeUnknownCourse = "UNKNOWN_COURSE"
)

// ImportError describes a row whose values cannot be loaded.
type ImportError struct {
	Code    string
	Table   Table
	Line    int
	Message string
}

func (e *ImportError) Error() string {
	return fmt.Sprintf("[%s] %s line %d: %s", e.Code, e.Table, e.Line, e.Message)
}
