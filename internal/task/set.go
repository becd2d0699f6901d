package task

import (
	"errors"
	"fmt"
	"strings"
)

// ErrTaskNotFound is returned when an edit names a task that is not in the set.
var ErrTaskNotFound = errors.New("task not found")

// Set is an editable, ordered collection of tasks.
// A Set is not safe for concurrent mutation.
type Set struct {
	tasks   []Task
	counter int
}

// NewSet creates an empty task set.
func NewSet() *Set {
	return &Set{}
}

// Add appends a new task with the next generated id and returns it.
func (s *Set) Add(name string, duration int, description string, predecessors ...string) Task {
	t := Task{
		ID:           GenerateID(s.counter),
		Name:         name,
		Description:  description,
		Duration:     duration,
		Predecessors: append([]string(nil), predecessors...),
	}
	s.counter++
	s.tasks = append(s.tasks, t)
	return t.Clone()
}

// Update applies fn to the task with the given id. fn must not change the id.
func (s *Set) Update(id string, fn func(*Task)) error {
	i := s.index(id)
	if i < 0 {
		return fmt.Errorf("update %s: %w", id, ErrTaskNotFound)
	}
	t := s.tasks[i].Clone()
	fn(&t)
	t.ID = id
	s.tasks[i] = t
	return nil
}

// Remove deletes the task and strips its id from every other task's
// predecessor list.
func (s *Set) Remove(id string) error {
	i := s.index(id)
	if i < 0 {
		return fmt.Errorf("remove %s: %w", id, ErrTaskNotFound)
	}
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	for j := range s.tasks {
		if !s.tasks[j].HasPredecessor(id) {
			continue
		}
		kept := make([]string, 0, len(s.tasks[j].Predecessors)-1)
		for _, p := range s.tasks[j].Predecessors {
			if p != id {
				kept = append(kept, p)
			}
		}
		s.tasks[j].Predecessors = kept
	}
	return nil
}

// Get returns a copy of the task with the given id.
func (s *Set) Get(id string) (Task, bool) {
	i := s.index(id)
	if i < 0 {
		return Task{}, false
	}
	return s.tasks[i].Clone(), true
}

// Len returns the number of tasks in the set.
func (s *Set) Len() int {
	return len(s.tasks)
}

// Tasks returns a copy of the tasks in insertion order.
func (s *Set) Tasks() []Task {
	out := make([]Task, len(s.tasks))
	for i, t := range s.tasks {
		out[i] = t.Clone()
	}
	return out
}

func (s *Set) index(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// GenerateID returns the id for the task at the given creation index:
// A..Z, then a..z, then AA, AB, ... ZZ, then AAA and so on.
func GenerateID(index int) string {
	switch {
	case index < 0:
		return ""
	case index < 26:
		return string(rune('A' + index))
	case index < 52:
		return string(rune('a' + index - 26))
	}
	n := index - 52
	width, block := 2, 26*26
	for n >= block {
		n -= block
		width++
		block *= 26
	}
	id := make([]byte, width)
	for i := width - 1; i >= 0; i-- {
		id[i] = byte('A' + n%26)
		n /= 26
	}
	return string(id)
}

// ParsePredecessors splits a comma-separated id list, trimming whitespace
// and dropping empty entries.
func ParsePredecessors(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
