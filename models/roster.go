package models

// Roster maps student ids to students and remembers the order in which ids
// were first seen.
type Roster struct {
	order []string
	byID  map[string]*Student
}

func NewRoster() *Roster {
	return &Roster{byID: make(map[string]*Student)}
}

// Put stores s under its id. A repeated id replaces the earlier student but
// keeps its position.
func (r *Roster) Put(s *Student) {
	if _, ok := r.byID[s.ID]; !ok {
		r.order = append(r.order, s.ID)
	}
	r.byID[s.ID] = s
}

func (r *Roster) Get(id string) (*Student, bool) {
	s, ok := r.byID[id]
	return s, ok
}

func (r *Roster) Len() int {
	return len(r.order)
}

// Students returns every student in insertion order.
func (r *Roster) Students() []*Student {
	out := make([]*Student, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out
}
