package models

// Mark represents a row of the marks table
type Mark struct {
	TestID    string `db:"test_id" json:"test_id"`
	StudentID string `db:"student_id" json:"student_id"`
	Value     string `db:"mark" json:"mark"` // unparsed until grades are computed
	Line      int    `db:"-" json:"-"`       // source line, for error reporting
}
