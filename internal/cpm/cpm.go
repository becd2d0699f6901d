package cpm

import (
	"sort"

	"github.com/Napster7-0/tp2/internal/graph"
	"github.com/Napster7-0/tp2/internal/task"
)

// Compute validates tasks and returns their critical path schedule.
// Either a complete, consistent schedule or an error is returned, never both.
func Compute(tasks []task.Task) (*Schedule, error) {
	g, err := graph.Build(tasks)
	if err != nil {
		return nil, err
	}
	return Analyze(g)
}

// Analyze performs critical path method analysis on a validated task graph.
func Analyze(g *graph.TaskGraph) (*Schedule, error) {
	order := g.TopoOrder()
	if len(order) != g.TaskCount() {
		return nil, &graph.CyclicDependencyError{Cycle: g.DetectCycle()}
	}

	s := &Schedule{
		Tasks:     make(map[string]*ScheduledTask, len(order)),
		Order:     g.Order(),
		TopoOrder: order,
	}
	for _, id := range s.Order {
		t, ok := g.Task(id)
		if !ok || t == nil {
			return nil, inconsistent(id, "listed in graph order but has no task")
		}
		s.Tasks[id] = &ScheduledTask{Task: t.Clone()}
	}

	if err := forwardPass(g, s); err != nil {
		return nil, err
	}
	if err := backwardPass(g, s); err != nil {
		return nil, err
	}
	if err := resolveSlack(g, s); err != nil {
		return nil, err
	}
	if err := verify(g, s); err != nil {
		return nil, err
	}

	s.Waves = computeWaves(s)
	return s, nil
}

// forwardPass computes ES and EF in a single pass over the topological order.
func forwardPass(g *graph.TaskGraph, s *Schedule) error {
	for _, id := range s.TopoOrder {
		ts, ok := s.Tasks[id]
		if !ok {
			return inconsistent(id, "in topological order but not in graph")
		}
		// ES = max(EF of all predecessors)
		es := 0
		for _, pred := range g.RevAdj[id] {
			p, ok := s.Tasks[pred]
			if !ok {
				return inconsistent(id, "predecessor %s is not in graph", pred)
			}
			if p.EarliestFinish > es {
				es = p.EarliestFinish
			}
		}
		ts.EarliestStart = es
		ts.EarliestFinish = es + ts.Duration
	}

	s.TotalDuration = 0
	for _, ts := range s.Tasks {
		if ts.EarliestFinish > s.TotalDuration {
			s.TotalDuration = ts.EarliestFinish
		}
	}
	return nil
}

// backwardPass computes LS and LF, seeded from the terminal tasks at the
// project horizon and propagated in reverse topological order.
func backwardPass(g *graph.TaskGraph, s *Schedule) error {
	terminal := make(map[string]bool)
	for _, id := range g.TerminalTasks() {
		if _, ok := s.Tasks[id]; !ok {
			return inconsistent(id, "terminal task is not in graph")
		}
		terminal[id] = true
	}
	// A task without successors is terminal whether or not it was listed.
	for _, id := range s.Order {
		if len(g.Adj[id]) == 0 {
			terminal[id] = true
		}
	}

	horizon := 0
	for id := range terminal {
		if ef := s.Tasks[id].EarliestFinish; ef > horizon {
			horizon = ef
		}
	}

	resolved := make(map[string]bool, len(s.Tasks))
	for i := len(s.TopoOrder) - 1; i >= 0; i-- {
		id := s.TopoOrder[i]
		ts := s.Tasks[id]

		if terminal[id] {
			ts.LatestFinish = horizon
			ts.LatestStart = horizon - ts.Duration
			resolved[id] = true
			continue
		}

		// LF = min(LS of all successors)
		lf := 0
		for j, succ := range g.Adj[id] {
			if !resolved[succ] {
				return inconsistent(id, "successor %s has no latest start during backward pass", succ)
			}
			if ls := s.Tasks[succ].LatestStart; j == 0 || ls < lf {
				lf = ls
			}
		}
		ts.LatestFinish = lf
		ts.LatestStart = lf - ts.Duration
		resolved[id] = true
	}

	for _, id := range s.Order {
		if !resolved[id] {
			return inconsistent(id, "not reached by backward pass")
		}
	}
	return nil
}

// resolveSlack derives total slack, free slack and criticality, and collects
// the critical tasks in input order.
func resolveSlack(g *graph.TaskGraph, s *Schedule) error {
	s.CriticalPath = nil
	for _, id := range s.Order {
		ts := s.Tasks[id]

		total := ts.LatestStart - ts.EarliestStart
		if total < 0 {
			return inconsistent(id, "negative total slack %d", total)
		}

		free := total
		if succs := g.Adj[id]; len(succs) > 0 {
			minES := s.Tasks[succs[0]].EarliestStart
			for _, succ := range succs[1:] {
				if es := s.Tasks[succ].EarliestStart; es < minES {
					minES = es
				}
			}
			free = minES - ts.EarliestFinish
		}
		if free < 0 {
			return inconsistent(id, "negative free slack %d", free)
		}
		if free > total {
			return inconsistent(id, "free slack %d exceeds total slack %d", free, total)
		}

		ts.TotalSlack = total
		ts.FreeSlack = free
		ts.IsCritical = total == 0
		if ts.IsCritical {
			s.CriticalPath = append(s.CriticalPath, id)
		}
	}
	return nil
}

// verify checks the post-conditions every schedule must satisfy.
func verify(g *graph.TaskGraph, s *Schedule) error {
	for _, id := range s.Order {
		ts := s.Tasks[id]
		if ts.EarliestFinish != ts.EarliestStart+ts.Duration {
			return inconsistent(id, "earliest finish %d != earliest start %d + duration %d",
				ts.EarliestFinish, ts.EarliestStart, ts.Duration)
		}
		if ts.LatestFinish != ts.LatestStart+ts.Duration {
			return inconsistent(id, "latest finish %d != latest start %d + duration %d",
				ts.LatestFinish, ts.LatestStart, ts.Duration)
		}
		for _, pred := range g.RevAdj[id] {
			if ef := s.Tasks[pred].EarliestFinish; ts.EarliestStart < ef {
				return inconsistent(id, "starts at %d before predecessor %s finishes at %d",
					ts.EarliestStart, pred, ef)
			}
		}
		if succs := g.Adj[id]; len(succs) > 0 {
			minLS := s.Tasks[succs[0]].LatestStart
			for _, succ := range succs[1:] {
				if ls := s.Tasks[succ].LatestStart; ls < minLS {
					minLS = ls
				}
			}
			if ts.LatestFinish != minLS {
				return inconsistent(id, "latest finish %d != earliest successor latest start %d",
					ts.LatestFinish, minLS)
			}
		}
	}
	if len(s.CriticalPath) == 0 {
		return inconsistent("", "no critical task in a non-empty schedule")
	}
	return nil
}

// computeWaves groups tasks by their earliest start time.
func computeWaves(s *Schedule) []Wave {
	esGroups := make(map[int][]string)
	for _, id := range s.Order {
		es := s.Tasks[id].EarliestStart
		esGroups[es] = append(esGroups[es], id)
	}

	esValues := make([]int, 0, len(esGroups))
	for es := range esGroups {
		esValues = append(esValues, es)
	}
	sort.Ints(esValues)

	waves := make([]Wave, len(esValues))
	for i, es := range esValues {
		taskIDs := esGroups[es]

		hasCritical := false
		for _, id := range taskIDs {
			s.Tasks[id].Wave = i
			if s.Tasks[id].IsCritical {
				hasCritical = true
			}
		}

		// Critical tasks first within a wave, input order otherwise
		sort.SliceStable(taskIDs, func(a, b int) bool {
			return s.Tasks[taskIDs[a]].IsCritical && !s.Tasks[taskIDs[b]].IsCritical
		})

		waves[i] = Wave{
			Index:      i,
			Start:      es,
			TaskIDs:    taskIDs,
			IsCritical: hasCritical,
		}
	}

	return waves
}
