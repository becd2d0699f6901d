package graph

import "github.com/Napster7-0/tp2/internal/task"

// TaskGraph is a validated directed acyclic graph of tasks.
// Edges point from a predecessor to the tasks that depend on it.
// All id lists are kept in input order.
type TaskGraph struct {
	Tasks  map[string]*task.Task
	Adj    map[string][]string // task -> tasks that depend on it (successors)
	RevAdj map[string][]string // task -> tasks it depends on (predecessors)
	Roots  []string            // initial tasks: no predecessors
	Leaves []string            // terminal tasks: predecessor of nothing

	order []string
	index map[string]int
	topo  []string
}
