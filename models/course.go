package models

// CourseDefinition represents a row of the courses table together with the
// tests defined for it. Tests keep the order in which they were first defined.
type CourseDefinition struct {
	ID           string `db:"id" json:"id"`
	Name         string `db:"name" json:"name"`
	Teacher      string `db:"teacher" json:"teacher"`
	ValidWeights bool   `db:"-" json:"valid_weights"`

	tests  []*TestDefinition
	byTest map[string]*TestDefinition
}

func NewCourseDefinition(id, name, teacher string) *CourseDefinition {
	return &CourseDefinition{
		ID:      id,
		Name:    name,
		Teacher: teacher,
		byTest:  make(map[string]*TestDefinition),
	}
}

// PutTest adds a test to the course. Redefining an existing test id replaces
// its weight but keeps its original position.
func (c *CourseDefinition) PutTest(t *TestDefinition) {
	if existing, ok := c.byTest[t.ID]; ok {
		*existing = *t
		return
	}
	c.byTest[t.ID] = t
	c.tests = append(c.tests, t)
}

func (c *CourseDefinition) Test(id string) (*TestDefinition, bool) {
	t, ok := c.byTest[id]
	return t, ok
}

func (c *CourseDefinition) Tests() []*TestDefinition {
	return c.tests
}

// WeightTotal sums the weights of every test defined for the course.
func (c *CourseDefinition) WeightTotal() int {
	total := 0
	for _, t := range c.tests {
		total += t.Weight
	}
	return total
}

// CourseRecord is a student's copy of a course, created on the first mark the
// student receives in that course.
type CourseRecord struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Teacher      string  `json:"teacher"`
	ValidWeights bool    `json:"valid_weights"`
	CourseGrade  float64 `json:"course_grade"`

	tests  []*TestRecord
	byTest map[string]*TestRecord
}

// NewCourseRecord copies the course metadata and the already computed
// validity flag from def.
func NewCourseRecord(def *CourseDefinition) *CourseRecord {
	return &CourseRecord{
		ID:           def.ID,
		Name:         def.Name,
		Teacher:      def.Teacher,
		ValidWeights: def.ValidWeights,
		byTest:       make(map[string]*TestRecord),
	}
}

func (c *CourseRecord) Test(id string) (*TestRecord, bool) {
	t, ok := c.byTest[id]
	return t, ok
}

func (c *CourseRecord) AddTest(t *TestRecord) {
	if _, ok := c.byTest[t.ID]; ok {
		return
	}
	c.byTest[t.ID] = t
	c.tests = append(c.tests, t)
}

// Tests returns the student's test records in the order they were created.
func (c *CourseRecord) Tests() []*TestRecord {
	return c.tests
}
