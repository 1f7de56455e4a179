package models

// TestDefinition represents a row of the tests table
type TestDefinition struct {
	ID       string `db:"id" json:"id"`
	CourseID string `db:"course_id" json:"course_id"`
	Weight   int    `db:"weight" json:"weight"`
}

// TestRecord holds one student's mark for one test. Value is the raw mark
// from the last marks row for the pair; Mark stays 0 until Value is parsed.
type TestRecord struct {
	ID     string  `json:"id"`
	Weight int     `json:"weight"`
	Value  string  `json:"-"`
	Line   int     `json:"-"`
	Mark   float64 `json:"mark"`
}

func NewTestRecord(def *TestDefinition) *TestRecord {
	return &TestRecord{ID: def.ID, Weight: def.Weight}
}
