package grading

import (
	"errors"
	"fmt"

	gokitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/nonsonwune/markbook/models"
)

// ReferenceError reports a mark that names a test or student the lookup
// tables do not know.
type ReferenceError struct {
	Kind string // "test" or "student"
	ID   string
	Line int
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("marks line %d: unknown %s %s", e.Line, e.Kind, e.ID)
}

// AggregateStats counts what happened to the marks.
type AggregateStats struct {
	Applied     int
	Overwritten int
	Rejected    int
}

type Aggregator struct {
	catalog           *models.Catalog
	roster            *models.Roster
	skipBadReferences bool
	logger            gokitlog.Logger
	stats             AggregateStats
}

type Option func(*Aggregator)

// WithSkipBadReferences makes Apply drop marks with unknown references
// instead of returning a *ReferenceError.
func WithSkipBadReferences(skip bool) Option {
	return func(a *Aggregator) { a.skipBadReferences = skip }
}

func WithLogger(logger gokitlog.Logger) Option {
	return func(a *Aggregator) { a.logger = logger }
}

func NewAggregator(catalog *models.Catalog, roster *models.Roster, opts ...Option) *Aggregator {
	a := &Aggregator{
		catalog: catalog,
		roster:  roster,
		logger:  gokitlog.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Aggregator) Stats() AggregateStats {
	return a.stats
}

// Apply records one mark. The student's course and test records are created
// on first use; a repeated (student, test) pair overwrites the earlier mark.
func (a *Aggregator) Apply(m models.Mark) error {
	err := a.apply(m)
	var ref *ReferenceError
	if err != nil && a.skipBadReferences && errors.As(err, &ref) {
		a.stats.Rejected++
		level.Warn(a.logger).Log("msg", "skipping mark", "err", err)
		return nil
	}
	return err
}

func (a *Aggregator) apply(m models.Mark) error {
	courseID, ok := a.catalog.CourseOf(m.TestID)
	if !ok {
		return &ReferenceError{Kind: "test", ID: m.TestID, Line: m.Line}
	}
	student, ok := a.roster.Get(m.StudentID)
	if !ok {
		return &ReferenceError{Kind: "student", ID: m.StudentID, Line: m.Line}
	}
	def, ok := a.catalog.Course(courseID)
	if !ok {
		return fmt.Errorf("test %s routed to missing course %s", m.TestID, courseID)
	}
	testDef, ok := def.Test(m.TestID)
	if !ok {
		return fmt.Errorf("course %s has no test %s", courseID, m.TestID)
	}

	course, ok := student.Course(courseID)
	if !ok {
		course = models.NewCourseRecord(def)
		student.AddCourse(course)
	}

	test, ok := course.Test(m.TestID)
	if ok {
		a.stats.Overwritten++
	} else {
		test = models.NewTestRecord(testDef)
		course.AddTest(test)
	}
	test.Value = m.Value
	test.Line = m.Line
	a.stats.Applied++
	return nil
}

// ApplyAll applies marks in order and stops at the first error.
func (a *Aggregator) ApplyAll(marks []models.Mark) error {
	for _, m := range marks {
		if err := a.Apply(m); err != nil {
			return err
		}
	}
	return nil
}

// ComputeGrades parses the stored marks, then sets every course grade and
// student average. Run it once, after all marks are applied. It stops at the
// first mark that is not a finite number.
func (a *Aggregator) ComputeGrades() error {
	for _, student := range a.roster.Students() {
		for _, course := range student.Courses() {
			for _, t := range course.Tests() {
				v, err := ParseMark(t.Value)
				if err != nil {
					return &MarkError{
						StudentID: student.ID,
						TestID:    t.ID,
						Line:      t.Line,
						Value:     t.Value,
						Err:       err,
					}
				}
				t.Mark = v
			}
			course.CourseGrade = CourseGrade(course.Tests())
		}
		student.Average = StudentAverage(student.Courses())
	}
	return nil
}

// CourseGrade is the weighted sum of the marks, rounded to one decimal after
// each test is added. Rounding at every step makes the result depend on
// test order and can differ from rounding the exact sum once.
func CourseGrade(tests []*models.TestRecord) float64 {
	grade := 0.0
	for _, t := range tests {
		grade += t.Mark * float64(t.Weight) / 100
		grade = Round(grade, 1)
	}
	return grade
}

// StudentAverage is the plain mean of the course grades, invalid courses
// included, rounded to two decimals. It is 0 when there are no courses.
func StudentAverage(courses []*models.CourseRecord) float64 {
	if len(courses) == 0 {
		return 0
	}
	sum := 0.0
	for _, c := range courses {
		sum += c.CourseGrade
	}
	return Round(sum/float64(len(courses)), 2)
}
