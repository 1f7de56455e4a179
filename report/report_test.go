package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nonsonwune/markbook/models"
)

func gradedStudent(id, name string, courses ...*models.CourseRecord) *models.Student {
	s := models.NewStudent(id, name)
	for _, c := range courses {
		s.AddCourse(c)
	}
	if s.HasCourses() {
		total := 0.0
		for _, c := range courses {
			total += c.CourseGrade
		}
		s.Average = total / float64(len(courses))
	}
	return s
}

func courseRecord(id, name, teacher string, valid bool, grade float64) *models.CourseRecord {
	def := models.NewCourseDefinition(id, name, teacher)
	def.ValidWeights = valid
	c := models.NewCourseRecord(def)
	c.CourseGrade = grade
	return c
}

func TestBuildAndMarshal(t *testing.T) {
	roster := models.NewRoster()
	roster.Put(gradedStudent("1", "A", courseRecord("10", "Math", "Mr.X", true, 84)))

	rep, err := Build(roster)
	require.NoError(t, err)

	data, err := Marshal(rep)
	require.NoError(t, err)
	assert.Equal(t, `{
  "students": [
    {
      "id": 1,
      "name": "A",
      "totalAverage": 84.0,
      "courses": [
        {
          "id": 10,
          "name": "Math",
          "teacher": "Mr.X",
          "courseAverage": 84.0
        }
      ]
    }
  ]
}`, string(data))
}

func TestInvalidCourseRendersOnlyError(t *testing.T) {
	roster := models.NewRoster()
	roster.Put(gradedStudent("1", "A & <B> é",
		courseRecord("not-a-number", "Art", "Mx.Z", false, 60),
		courseRecord("10", "Math", "Mr.X", true, 70),
	))
	roster.Put(gradedStudent("2", "B"))

	rep, err := Build(roster)
	require.NoError(t, err)

	require.Len(t, rep.Students, 2)
	courses := rep.Students[0].Courses
	require.Len(t, courses, 2)
	assert.Equal(t, InvalidCourse{Error: InvalidWeightsMessage}, courses[0])
	assert.Equal(t, CourseSummary{ID: 10, Name: "Math", Teacher: "Mr.X", CourseAverage: 70}, courses[1])

	data, err := Marshal(rep)
	require.NoError(t, err)
	assert.Equal(t, `{
  "students": [
    {
      "id": 1,
      "name": "A & <B> é",
      "totalAverage": 65.0,
      "courses": [
        {
          "error": "Invalid course weights"
        },
        {
          "id": 10,
          "name": "Math",
          "teacher": "Mr.X",
          "courseAverage": 70.0
        }
      ]
    },
    {
      "id": 2,
      "name": "B",
      "totalAverage": 0,
      "courses": []
    }
  ]
}`, string(data))
}

func TestEmptyReport(t *testing.T) {
	rep, err := Build(models.NewRoster())
	require.NoError(t, err)

	data, err := Marshal(rep)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"students\": []\n}", string(data))
}

func TestBuildRejectsNonIntegerIDs(t *testing.T) {
	roster := models.NewRoster()
	roster.Put(gradedStudent("S1", "A"))
	_, err := Build(roster)
	assert.ErrorContains(t, err, `student id "S1"`)

	roster = models.NewRoster()
	roster.Put(gradedStudent(" 7 ", "A", courseRecord("M1", "Math", "Mr.X", true, 50)))
	_, err = Build(roster)
	assert.ErrorContains(t, err, `course id "M1"`)
}

func TestWriteFile(t *testing.T) {
	roster := models.NewRoster()
	roster.Put(gradedStudent("3", "C"))
	rep, err := Build(roster)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, WriteFile(path, rep))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"id": 3`)

	err = WriteFile(filepath.Join(t.TempDir(), "missing", "out.json"), rep)
	assert.ErrorContains(t, err, "error writing report")
}

func TestMarshalKeepsLineSeparatorsRaw(t *testing.T) {
	roster := models.NewRoster()
	roster.Put(gradedStudent("1", "Zo\u00eb\u2028x\u2029<&>"))
	roster.Put(gradedStudent("2", `back\u2028slash`))
	rep, err := Build(roster)
	require.NoError(t, err)

	data, err := Marshal(rep)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\"name\": \"Zo\u00eb\u2028x\u2029<&>\"")
	assert.Contains(t, string(data), `"name": "back\\u2028slash"`)
}
