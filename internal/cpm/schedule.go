package cpm

import "strings"

// List returns the scheduled tasks in input order.
func (s *Schedule) List() []*ScheduledTask {
	out := make([]*ScheduledTask, 0, len(s.Order))
	for _, id := range s.Order {
		out = append(out, s.Tasks[id])
	}
	return out
}

// Get returns the scheduled task with the given id.
func (s *Schedule) Get(id string) (*ScheduledTask, bool) {
	ts, ok := s.Tasks[id]
	return ts, ok
}

// Metrics returns the project-level summary of the schedule.
func (s *Schedule) Metrics() ProjectMetrics {
	return ProjectMetrics{
		TotalDuration:      s.TotalDuration,
		CriticalTasksCount: len(s.CriticalPath),
		TotalTasks:         len(s.Tasks),
		CriticalPath:       append([]string(nil), s.CriticalPath...),
	}
}

// CriticalPathString joins the critical task ids with sep, e.g. "A → B → D".
func (s *Schedule) CriticalPathString(sep string) string {
	return strings.Join(s.CriticalPath, sep)
}
