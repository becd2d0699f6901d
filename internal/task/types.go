package task

// Task is a single unit of work in a project.
type Task struct {
	ID           string   `json:"id" yaml:"id"`
	Name         string   `json:"name" yaml:"name"`
	Description  string   `json:"description,omitempty" yaml:"description,omitempty"`
	Duration     int      `json:"duration" yaml:"duration"` // time steps (days)
	Predecessors []string `json:"predecessors" yaml:"predecessors"`
}

// Clone returns a copy of t that shares no slices with it.
func (t Task) Clone() Task {
	c := t
	if t.Predecessors != nil {
		c.Predecessors = append([]string(nil), t.Predecessors...)
	}
	return c
}

// HasPredecessor reports whether id is listed as a predecessor of t.
func (t Task) HasPredecessor(id string) bool {
	for _, p := range t.Predecessors {
		if p == id {
			return true
		}
	}
	return false
}
