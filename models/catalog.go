package models

// Catalog holds the course definitions and the routing from a test id to
// the course that owns it.
type Catalog struct {
	order      []string
	courses    map[string]*CourseDefinition
	testCourse map[string]string
}

func NewCatalog() *Catalog {
	return &Catalog{
		courses:    make(map[string]*CourseDefinition),
		testCourse: make(map[string]string),
	}
}

// PutCourse stores def. A repeated course id replaces the earlier definition
// but keeps its position.
func (c *Catalog) PutCourse(def *CourseDefinition) {
	if _, ok := c.courses[def.ID]; !ok {
		c.order = append(c.order, def.ID)
	}
	c.courses[def.ID] = def
}

func (c *Catalog) Course(id string) (*CourseDefinition, bool) {
	def, ok := c.courses[id]
	return def, ok
}

// Courses returns every course definition in insertion order.
func (c *Catalog) Courses() []*CourseDefinition {
	out := make([]*CourseDefinition, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.courses[id])
	}
	return out
}

// PutTest attaches t to its course and routes t.ID to that course. The
// course must already be in the catalog; ok is false otherwise.
func (c *Catalog) PutTest(t *TestDefinition) bool {
	def, ok := c.courses[t.CourseID]
	if !ok {
		return false
	}
	def.PutTest(t)
	c.testCourse[t.ID] = t.CourseID
	return true
}

// CourseOf resolves the owning course id of a test.
func (c *Catalog) CourseOf(testID string) (string, bool) {
	id, ok := c.testCourse[testID]
	return id, ok
}
