package graph

import (
	"sort"
	"strings"

	"github.com/Napster7-0/tp2/internal/task"
)

// Build validates tasks and constructs a TaskGraph from them.
// The input slice is copied; later edits by the caller do not affect the graph.
func Build(tasks []task.Task) (*TaskGraph, error) {
	if len(tasks) == 0 {
		return nil, &EmptyProjectError{}
	}

	g := &TaskGraph{
		Tasks:  make(map[string]*task.Task, len(tasks)),
		Adj:    make(map[string][]string),
		RevAdj: make(map[string][]string),
		order:  make([]string, 0, len(tasks)),
		index:  make(map[string]int, len(tasks)),
	}

	// Index all tasks
	for i := range tasks {
		t := tasks[i].Clone()
		if strings.TrimSpace(t.ID) == "" {
			return nil, &InvalidTaskError{Position: i, Reason: "missing id"}
		}
		if first, ok := g.index[t.ID]; ok {
			return nil, &DuplicateTaskIDError{ID: t.ID, First: first, Second: i}
		}
		if t.Duration < 1 {
			return nil, &InvalidTaskError{Position: i, ID: t.ID, Reason: "duration must be at least 1"}
		}
		g.index[t.ID] = i
		g.order = append(g.order, t.ID)
		g.Tasks[t.ID] = &t
	}

	for _, id := range g.order {
		if strings.TrimSpace(g.Tasks[id].Name) == "" {
			return nil, &UnnamedTaskError{ID: id}
		}
	}

	// Predecessor lists are sets; repeated ids collapse to one edge.
	for _, id := range g.order {
		t := g.Tasks[id]
		seen := make(map[string]bool, len(t.Predecessors))
		for _, pred := range t.Predecessors {
			if pred == id {
				return nil, &SelfDependencyError{TaskID: id}
			}
			if _, ok := g.Tasks[pred]; !ok {
				return nil, &UnknownPredecessorError{TaskID: id, PredecessorID: pred}
			}
			if seen[pred] {
				continue
			}
			seen[pred] = true
			g.Adj[pred] = append(g.Adj[pred], id)
			g.RevAdj[id] = append(g.RevAdj[id], pred)
		}
	}

	for k := range g.Adj {
		g.sortByInput(g.Adj[k])
	}
	for k := range g.RevAdj {
		g.sortByInput(g.RevAdj[k])
	}

	for _, id := range g.order {
		if len(g.RevAdj[id]) == 0 {
			g.Roots = append(g.Roots, id)
		}
		if len(g.Adj[id]) == 0 {
			g.Leaves = append(g.Leaves, id)
		}
	}

	if cycle := g.DetectCycle(); cycle != nil {
		return nil, &CyclicDependencyError{Cycle: cycle}
	}
	g.topo = g.kahn()

	return g, nil
}

// DetectCycle returns the cycle path if one exists, or nil if the graph is acyclic.
// Uses DFS with coloring: white (unvisited), gray (on the recursion stack),
// black (fully visited).
func (g *TaskGraph) DetectCycle() []string {
	const (
		white = 0
		gray  = 1
		black = 2
	)

	color := make(map[string]int, len(g.Tasks))
	parent := make(map[string]string)

	var dfs func(node string) []string
	dfs = func(node string) []string {
		color[node] = gray
		for _, next := range g.Adj[node] {
			if color[next] == gray {
				cycle := []string{next, node}
				cur := node
				for cur != next {
					cur = parent[cur]
					cycle = append(cycle, cur)
				}
				for i, j := 0, len(cycle)-1; i < j; i, j = i+1, j-1 {
					cycle[i], cycle[j] = cycle[j], cycle[i]
				}
				return cycle
			}
			if color[next] == white {
				parent[next] = node
				if cycle := dfs(next); cycle != nil {
					return cycle
				}
			}
		}
		color[node] = black
		return nil
	}

	for _, id := range g.Order() {
		if color[id] == white {
			if cycle := dfs(id); cycle != nil {
				return cycle
			}
		}
	}
	return nil
}

// Successors returns the tasks whose predecessor set contains id.
func (g *TaskGraph) Successors(id string) []string {
	return append([]string(nil), g.Adj[id]...)
}

// Predecessors returns the deduplicated predecessor set of id.
func (g *TaskGraph) Predecessors(id string) []string {
	return append([]string(nil), g.RevAdj[id]...)
}

// InitialTasks returns the tasks with no predecessors.
func (g *TaskGraph) InitialTasks() []string {
	return append([]string(nil), g.Roots...)
}

// TerminalTasks returns the tasks that are not a predecessor of any task.
func (g *TaskGraph) TerminalTasks() []string {
	return append([]string(nil), g.Leaves...)
}

// IsTerminal reports whether id is a terminal task.
func (g *TaskGraph) IsTerminal(id string) bool {
	_, ok := g.Tasks[id]
	return ok && len(g.Adj[id]) == 0
}

// Task returns the task with the given id.
func (g *TaskGraph) Task(id string) (*task.Task, bool) {
	t, ok := g.Tasks[id]
	return t, ok
}

// Order returns the task ids in input order.
func (g *TaskGraph) Order() []string {
	if g.order == nil {
		ids := make([]string, 0, len(g.Tasks))
		for id := range g.Tasks {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		return ids
	}
	return append([]string(nil), g.order...)
}

// TopoOrder returns a topological ordering of the task ids. Every task comes
// after all of its predecessors; ties are broken by input position.
func (g *TaskGraph) TopoOrder() []string {
	if g.topo == nil {
		return g.kahn()
	}
	return append([]string(nil), g.topo...)
}

// TaskCount returns the number of tasks in the graph.
func (g *TaskGraph) TaskCount() int {
	return len(g.Tasks)
}

func (g *TaskGraph) position(id string) int {
	if i, ok := g.index[id]; ok {
		return i
	}
	return len(g.index)
}

func (g *TaskGraph) sortByInput(ids []string) {
	sort.SliceStable(ids, func(a, b int) bool {
		return g.position(ids[a]) < g.position(ids[b])
	})
}
