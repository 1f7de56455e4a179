package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/nonsonwune/markbook/models"
)

// InvalidWeightsMessage replaces the details of a course whose test weights
// do not add up to 100.
const InvalidWeightsMessage = "Invalid course weights"

type Report struct {
	Students []StudentEntry `json:"students"`
}

type StudentEntry struct {
	ID           int           `json:"id"`
	Name         string        `json:"name"`
	TotalAverage Average       `json:"totalAverage"`
	Courses      []CourseEntry `json:"courses"`
}

// CourseEntry is either a CourseSummary or an InvalidCourse.
type CourseEntry interface {
	courseEntry()
}

type CourseSummary struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	Teacher       string `json:"teacher"`
	CourseAverage Float  `json:"courseAverage"`
}

type InvalidCourse struct {
	Error string `json:"error"`
}

func (CourseSummary) courseEntry() {}
func (InvalidCourse) courseEntry() {}

// Build turns graded students into a report, keeping roster order and each
// student's course order.
func Build(roster *models.Roster) (*Report, error) {
	rep := &Report{Students: make([]StudentEntry, 0, roster.Len())}

	for _, s := range roster.Students() {
		id, err := parseID(s.ID)
		if err != nil {
			return nil, fmt.Errorf("student id %q: %w", s.ID, err)
		}

		entry := StudentEntry{
			ID:           id,
			Name:         s.Name,
			TotalAverage: Average{Value: s.Average, Graded: s.HasCourses()},
			Courses:      make([]CourseEntry, 0, len(s.Courses())),
		}
		for _, c := range s.Courses() {
			if !c.ValidWeights {
				entry.Courses = append(entry.Courses, InvalidCourse{Error: InvalidWeightsMessage})
				continue
			}
			courseID, err := parseID(c.ID)
			if err != nil {
				return nil, fmt.Errorf("course id %q: %w", c.ID, err)
			}
			entry.Courses = append(entry.Courses, CourseSummary{
				ID:            courseID,
				Name:          c.Name,
				Teacher:       c.Teacher,
				CourseAverage: Float(c.CourseGrade),
			})
		}
		rep.Students = append(rep.Students, entry)
	}
	return rep, nil
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, errors.New("not an integer")
	}
	return id, nil
}

// Marshal renders the report as indented JSON without a trailing newline.
// Non-ASCII and HTML characters are written as is, line and paragraph
// separators included.
func Marshal(rep *Report) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rep); err != nil {
		return nil, fmt.Errorf("error encoding report: %w", err)
	}
	return rawLineSeparators(bytes.TrimSuffix(buf.Bytes(), []byte("\n"))), nil
}

// rawLineSeparators undoes the \u2028 and \u2029 escapes encoding/json always
// applies. An escaped backslash followed by "u2028" is left alone.
func rawLineSeparators(data []byte) []byte {
	if !bytes.Contains(data, []byte(`\u202`)) {
		return data
	}
	out := make([]byte, 0, len(data))
	for i := 0; i < len(data); i++ {
		if data[i] != '\\' || i+1 == len(data) {
			out = append(out, data[i])
			continue
		}
		if seq := string(data[i:min(i+6, len(data))]); seq == `\u2028` || seq == `\u2029` {
			r := '\u2028'
			if seq == `\u2029` {
				r = '\u2029'
			}
			out = utf8.AppendRune(out, r)
			i += 5
			continue
		}
		out = append(out, data[i], data[i+1])
		i++
	}
	return out
}

// WriteFile encodes the whole report before creating path, so a failed
// encoding leaves no partial file behind.
func WriteFile(path string, rep *Report) error {
	data, err := Marshal(rep)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("error writing report: %w", err)
	}
	return nil
}
