package grading

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nonsonwune/markbook/models"
)

type fixture struct {
	catalog *models.Catalog
	roster  *models.Roster
}

// newFixture builds students 1 (A), 2 (B) and 3 (C); course 10 with tests
// 100 (60) and 101 (40); course 20 with test 200 (100); course 30 with
// tests 300 (50) and 301 (40).
func newFixture(t *testing.T) fixture {
	t.Helper()
	f := fixture{catalog: models.NewCatalog(), roster: models.NewRoster()}

	for _, s := range [][2]string{{"1", "A"}, {"2", "B"}, {"3", "C"}} {
		f.roster.Put(models.NewStudent(s[0], s[1]))
	}
	f.catalog.PutCourse(models.NewCourseDefinition("10", "Math", "Mr.X"))
	f.catalog.PutCourse(models.NewCourseDefinition("20", "History", "Ms.Y"))
	f.catalog.PutCourse(models.NewCourseDefinition("30", "Art", "Mx.Z"))
	for _, td := range []models.TestDefinition{
		{ID: "100", CourseID: "10", Weight: 60},
		{ID: "101", CourseID: "10", Weight: 40},
		{ID: "200", CourseID: "20", Weight: 100},
		{ID: "300", CourseID: "30", Weight: 50},
		{ID: "301", CourseID: "30", Weight: 40},
	} {
		require.True(t, f.catalog.PutTest(&td))
	}
	ValidateWeights(f.catalog, nil)
	return f
}

func (f fixture) student(t *testing.T, id string) *models.Student {
	t.Helper()
	s, ok := f.roster.Get(id)
	require.True(t, ok)
	return s
}

func mark(test, student string, value float64) models.Mark {
	return models.Mark{TestID: test, StudentID: student, Value: strconv.FormatFloat(value, 'f', -1, 64)}
}

func TestWeightedCourseGrade(t *testing.T) {
	f := newFixture(t)
	agg := NewAggregator(f.catalog, f.roster)

	require.NoError(t, agg.ApplyAll([]models.Mark{mark("100", "1", 80), mark("101", "1", 90)}))
	require.NoError(t, agg.ComputeGrades())

	s := f.student(t, "1")
	require.Len(t, s.Courses(), 1)
	assert.Equal(t, 84.0, s.Courses()[0].CourseGrade)
	assert.Equal(t, 84.0, s.Average)
}

func TestCourseGradeRoundsAfterEveryTest(t *testing.T) {
	tests := []*models.TestRecord{
		{ID: "a", Weight: 50, Mark: 0.3},
		{ID: "b", Weight: 50, Mark: 0.3},
	}
	// 0.15 rounds to 0.1, then 0.25 ties to 0.2; rounding once would give 0.3
	assert.Equal(t, 0.2, CourseGrade(tests))

	tests = []*models.TestRecord{
		{ID: "a", Weight: 33, Mark: 85},
		{ID: "b", Weight: 33, Mark: 72},
		{ID: "c", Weight: 34, Mark: 91},
	}
	assert.Equal(t, 82.8, CourseGrade(tests))
}

func TestStudentAverage(t *testing.T) {
	courses := []*models.CourseRecord{{CourseGrade: 84}, {CourseGrade: 70}}
	assert.Equal(t, 77.0, StudentAverage(courses))

	courses = []*models.CourseRecord{{CourseGrade: 83.3}, {CourseGrade: 91.7}, {CourseGrade: 70.05}}
	assert.Equal(t, 81.68, StudentAverage(courses))

	assert.Equal(t, 0.0, StudentAverage(nil))
}

func TestMarksCreateRecordsLazily(t *testing.T) {
	f := newFixture(t)
	agg := NewAggregator(f.catalog, f.roster)

	require.NoError(t, agg.ApplyAll([]models.Mark{
		mark("200", "1", 70),
		mark("101", "1", 90),
		mark("100", "1", 80),
	}))
	require.NoError(t, agg.ComputeGrades())

	s := f.student(t, "1")
	courses := s.Courses()
	require.Len(t, courses, 2)
	assert.Equal(t, "20", courses[0].ID, "courses keep first-mark order")
	assert.Equal(t, "10", courses[1].ID)

	tests := courses[1].Tests()
	require.Len(t, tests, 2)
	assert.Equal(t, "101", tests[0].ID, "tests keep first-mark order")
	assert.Equal(t, 40, tests[0].Weight)

	assert.Equal(t, 70.0, courses[0].CourseGrade)
	assert.Equal(t, 84.0, courses[1].CourseGrade)
	assert.Equal(t, 77.0, s.Average)

	b := f.student(t, "2")
	assert.False(t, b.HasCourses())
	assert.Equal(t, 0.0, b.Average)
}

func TestUnmarkedTestIsNotCreated(t *testing.T) {
	f := newFixture(t)
	agg := NewAggregator(f.catalog, f.roster)

	require.NoError(t, agg.Apply(mark("100", "1", 80)))
	require.NoError(t, agg.ComputeGrades())

	course := f.student(t, "1").Courses()[0]
	assert.Len(t, course.Tests(), 1)
	assert.Equal(t, 48.0, course.CourseGrade)
}

func TestLastMarkWins(t *testing.T) {
	f := newFixture(t)
	agg := NewAggregator(f.catalog, f.roster)

	require.NoError(t, agg.ApplyAll([]models.Mark{
		mark("200", "1", 10),
		mark("200", "1", 95),
		mark("200", "1", 60),
	}))
	require.NoError(t, agg.ComputeGrades())

	course := f.student(t, "1").Courses()[0]
	require.Len(t, course.Tests(), 1)
	assert.Equal(t, 60.0, course.Tests()[0].Mark)
	assert.Equal(t, 60.0, course.CourseGrade)
	assert.Equal(t, AggregateStats{Applied: 3, Overwritten: 2}, agg.Stats())
}

func TestInvalidCourseStillCountsTowardAverage(t *testing.T) {
	f := newFixture(t)
	agg := NewAggregator(f.catalog, f.roster)

	require.NoError(t, agg.ApplyAll([]models.Mark{
		mark("300", "3", 80),
		mark("301", "3", 50),
		mark("200", "3", 70),
	}))
	require.NoError(t, agg.ComputeGrades())

	s := f.student(t, "3")
	require.Len(t, s.Courses(), 2)
	art := s.Courses()[0]
	assert.False(t, art.ValidWeights)
	assert.Equal(t, 60.0, art.CourseGrade)
	assert.True(t, s.Courses()[1].ValidWeights)
	assert.Equal(t, 65.0, s.Average)
}

func TestValidityFlagIsCopiedAtCreation(t *testing.T) {
	f := newFixture(t)
	agg := NewAggregator(f.catalog, f.roster)
	require.NoError(t, agg.Apply(mark("300", "1", 80)))

	// revalidating after records exist does not touch them
	def, _ := f.catalog.Course("30")
	def.ValidWeights = true
	assert.False(t, f.student(t, "1").Courses()[0].ValidWeights)

	require.NoError(t, agg.Apply(mark("300", "2", 80)))
	assert.True(t, f.student(t, "2").Courses()[0].ValidWeights)
}

func TestUnknownReferences(t *testing.T) {
	f := newFixture(t)
	agg := NewAggregator(f.catalog, f.roster)

	err := agg.Apply(models.Mark{TestID: "999", StudentID: "1", Value: "1", Line: 7})
	var ref *ReferenceError
	require.ErrorAs(t, err, &ref)
	assert.Equal(t, "test", ref.Kind)
	assert.Equal(t, "marks line 7: unknown test 999", err.Error())

	err = agg.Apply(mark("100", "42", 1))
	require.ErrorAs(t, err, &ref)
	assert.Equal(t, "student", ref.Kind)
	assert.Equal(t, "42", ref.ID)
}

func TestUnknownReferencesSkippedWhenHardened(t *testing.T) {
	f := newFixture(t)
	agg := NewAggregator(f.catalog, f.roster, WithSkipBadReferences(true))

	require.NoError(t, agg.ApplyAll([]models.Mark{
		mark("999", "1", 50),
		mark("100", "42", 50),
		mark("200", "1", 50),
	}))
	require.NoError(t, agg.ComputeGrades())

	assert.Equal(t, AggregateStats{Applied: 1, Rejected: 2}, agg.Stats())
	assert.Equal(t, 50.0, f.student(t, "1").Average)
}

func TestBadMarkOverwrittenBeforeGrading(t *testing.T) {
	f := newFixture(t)
	agg := NewAggregator(f.catalog, f.roster)

	require.NoError(t, agg.ApplyAll([]models.Mark{
		{TestID: "100", StudentID: "1", Value: "bad", Line: 2},
		{TestID: "100", StudentID: "1", Value: " 80 ", Line: 3},
		{TestID: "101", StudentID: "1", Value: "90", Line: 4},
	}))
	require.NoError(t, agg.ComputeGrades())
	assert.Equal(t, 84.0, f.student(t, "1").Average)
}

func TestBadMarkFailsGrading(t *testing.T) {
	tests := []struct {
		name  string
		value string
		err   error
	}{
		{"text", "abc", ErrNotNumber},
		{"empty", "", ErrNotNumber},
		{"nan", "NaN", ErrNotFinite},
		{"infinity", "-inf", ErrNotFinite},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			agg := NewAggregator(f.catalog, f.roster)
			require.NoError(t, agg.ApplyAll([]models.Mark{
				{TestID: "200", StudentID: "1", Value: "70", Line: 2},
				{TestID: "200", StudentID: "2", Value: tt.value, Line: 3},
			}))

			err := agg.ComputeGrades()
			var me *MarkError
			require.ErrorAs(t, err, &me)
			assert.ErrorIs(t, err, tt.err)
			assert.Equal(t, "2", me.StudentID)
			assert.Equal(t, "200", me.TestID)
			assert.Equal(t, 3, me.Line)
		})
	}
}
