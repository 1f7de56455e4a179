package models

// Student represents a row of the students table along with the course
// records created for it while marks are applied.
type Student struct {
	ID      string  `db:"id" json:"id"`
	Name    string  `db:"name" json:"name"`
	Average float64 `db:"-" json:"average"`

	courses  []*CourseRecord
	byCourse map[string]*CourseRecord
}

func NewStudent(id, name string) *Student {
	return &Student{
		ID:       id,
		Name:     name,
		byCourse: make(map[string]*CourseRecord),
	}
}

func (s *Student) Course(id string) (*CourseRecord, bool) {
	c, ok := s.byCourse[id]
	return c, ok
}

func (s *Student) AddCourse(c *CourseRecord) {
	if _, ok := s.byCourse[c.ID]; ok {
		return
	}
	s.byCourse[c.ID] = c
	s.courses = append(s.courses, c)
}

// Courses returns the student's course records in creation order.
func (s *Student) Courses() []*CourseRecord {
	return s.courses
}

// HasCourses reports whether the student received any mark at all.
func (s *Student) HasCourses() bool {
	return len(s.courses) > 0
}
