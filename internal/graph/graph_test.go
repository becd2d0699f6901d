package graph

import (
	"errors"
	"reflect"
	"testing"

	"github.com/Napster7-0/tp2/internal/task"
)

func mk(id string, duration int, preds ...string) task.Task {
	return task.Task{ID: id, Name: "Task " + id, Duration: duration, Predecessors: preds}
}

func TestBuild_SimpleDAG(t *testing.T) {
	// A -> B -> D
	// A -> C -> D
	tasks := []task.Task{
		mk("A", 1),
		mk("B", 3, "A"),
		mk("C", 1, "A"),
		mk("D", 2, "B", "C"),
	}

	g, err := Build(tasks)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if g.TaskCount() != 4 {
		t.Errorf("expected 4 tasks, got %d", g.TaskCount())
	}
	if got := g.InitialTasks(); !reflect.DeepEqual(got, []string{"A"}) {
		t.Errorf("expected initial tasks [A], got %v", got)
	}
	if got := g.TerminalTasks(); !reflect.DeepEqual(got, []string{"D"}) {
		t.Errorf("expected terminal tasks [D], got %v", got)
	}
	if got := g.Successors("A"); !reflect.DeepEqual(got, []string{"B", "C"}) {
		t.Errorf("expected A successors [B C], got %v", got)
	}
	if got := g.Predecessors("D"); !reflect.DeepEqual(got, []string{"B", "C"}) {
		t.Errorf("expected D predecessors [B C], got %v", got)
	}
	if !g.IsTerminal("D") || g.IsTerminal("A") {
		t.Error("expected only D to be terminal")
	}
}

func TestBuild_SingleTask(t *testing.T) {
	g, err := Build([]task.Task{mk("x", 5)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if g.TaskCount() != 1 {
		t.Errorf("expected 1 task, got %d", g.TaskCount())
	}
	if len(g.Roots) != 1 || g.Roots[0] != "x" {
		t.Errorf("expected roots=[x], got %v", g.Roots)
	}
	if len(g.Leaves) != 1 || g.Leaves[0] != "x" {
		t.Errorf("expected leaves=[x], got %v", g.Leaves)
	}
}

func TestBuild_LinearChain(t *testing.T) {
	// A -> B -> C -> D -> E
	tasks := []task.Task{
		mk("A", 1),
		mk("B", 1, "A"),
		mk("C", 1, "B"),
		mk("D", 1, "C"),
		mk("E", 1, "D"),
	}

	g, err := Build(tasks)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(g.Roots) != 1 || g.Roots[0] != "A" {
		t.Errorf("expected roots=[A], got %v", g.Roots)
	}
	if len(g.Leaves) != 1 || g.Leaves[0] != "E" {
		t.Errorf("expected leaves=[E], got %v", g.Leaves)
	}
	if got := g.TopoOrder(); !reflect.DeepEqual(got, []string{"A", "B", "C", "D", "E"}) {
		t.Errorf("unexpected topo order %v", got)
	}
}

func TestBuild_CycleDetection(t *testing.T) {
	// A -> B -> C -> A (cycle)
	tasks := []task.Task{
		mk("A", 1, "C"),
		mk("B", 1, "A"),
		mk("C", 1, "B"),
	}

	g, err := Build(tasks)
	if err == nil {
		t.Fatal("expected cycle error, got nil")
	}
	if g != nil {
		t.Error("expected no graph on cycle error")
	}

	var cycErr *CyclicDependencyError
	if !errors.As(err, &cycErr) {
		t.Fatalf("expected CyclicDependencyError, got %T: %v", err, err)
	}
	if want := []string{"A", "B", "C", "A"}; !reflect.DeepEqual(cycErr.Cycle, want) {
		t.Errorf("expected cycle %v, got %v", want, cycErr.Cycle)
	}
	if !errors.Is(err, ErrCycle) || !errors.Is(err, ErrInvalidGraph) {
		t.Errorf("expected error to match ErrCycle and ErrInvalidGraph: %v", err)
	}
}

func TestBuild_ValidationErrors(t *testing.T) {
	tests := []struct {
		name   string
		tasks  []task.Task
		target error
		msg    string
	}{
		{
			name:   "empty project",
			tasks:  nil,
			target: ErrEmptyProject,
			msg:    "project has no tasks",
		},
		{
			name:   "missing id",
			tasks:  []task.Task{mk("A", 1), {Name: "anon", Duration: 1}},
			target: ErrInvalidTask,
			msg:    "task #2: missing id",
		},
		{
			name:   "zero duration",
			tasks:  []task.Task{mk("A", 0)},
			target: ErrInvalidTask,
			msg:    "task A: duration must be at least 1",
		},
		{
			name:   "duplicate id",
			tasks:  []task.Task{mk("A", 1), mk("B", 1), mk("A", 2)},
			target: ErrDuplicateTaskID,
			msg:    "task id A used by task #1 and task #3",
		},
		{
			name:   "whitespace name",
			tasks:  []task.Task{mk("A", 1), {ID: "B", Name: "  \t", Duration: 1}},
			target: ErrUnnamedTask,
			msg:    "task B has no name",
		},
		{
			name:   "self dependency",
			tasks:  []task.Task{mk("A", 1, "A")},
			target: ErrSelfDependency,
			msg:    "task A depends on itself",
		},
		{
			name:   "unknown predecessor",
			tasks:  []task.Task{mk("A", 1), mk("B", 1, "A", "Z")},
			target: ErrUnknownPredecessor,
			msg:    "task B depends on unknown task Z",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := Build(tt.tasks)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if g != nil {
				t.Error("expected nil graph on error")
			}
			if !errors.Is(err, tt.target) {
				t.Errorf("expected %v, got %v", tt.target, err)
			}
			if !errors.Is(err, ErrInvalidGraph) {
				t.Errorf("expected error to match ErrInvalidGraph: %v", err)
			}
			if err.Error() != tt.msg {
				t.Errorf("expected message %q, got %q", tt.msg, err.Error())
			}
		})
	}
}

func TestBuild_SelfDependencyType(t *testing.T) {
	_, err := Build([]task.Task{mk("A", 1), mk("B", 2, "A", "B")})

	var selfErr *SelfDependencyError
	if !errors.As(err, &selfErr) {
		t.Fatalf("expected SelfDependencyError, got %T: %v", err, err)
	}
	if selfErr.TaskID != "B" {
		t.Errorf("expected task B, got %s", selfErr.TaskID)
	}
}

func TestBuild_DuplicatePredecessorsCollapse(t *testing.T) {
	g, err := Build([]task.Task{mk("A", 1), mk("B", 1, "A", "A")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := g.Predecessors("B"); !reflect.DeepEqual(got, []string{"A"}) {
		t.Errorf("expected B predecessors [A], got %v", got)
	}
	if got := g.Successors("A"); !reflect.DeepEqual(got, []string{"B"}) {
		t.Errorf("expected A successors [B], got %v", got)
	}
}

func TestBuild_CopiesInput(t *testing.T) {
	tasks := []task.Task{mk("A", 1), mk("B", 1, "A")}
	g, err := Build(tasks)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tasks[1].Name = "changed"
	tasks[1].Predecessors[0] = "changed"

	b, _ := g.Task("B")
	if b.Name != "Task B" || b.Predecessors[0] != "A" {
		t.Errorf("graph task changed with caller input: %+v", b)
	}
}

func TestTopoOrder_TiesFollowInputOrder(t *testing.T) {
	// Independent tasks listed out of alphabetical order keep input order.
	tasks := []task.Task{
		mk("Z", 1),
		mk("M", 1),
		mk("A", 1, "Z"),
		mk("B", 1, "M"),
	}

	g, err := Build(tasks)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := g.TopoOrder(), []string{"Z", "M", "A", "B"}; !reflect.DeepEqual(got, want) {
		t.Errorf("expected topo order %v, got %v", want, got)
	}
	if got, want := g.Order(), []string{"Z", "M", "A", "B"}; !reflect.DeepEqual(got, want) {
		t.Errorf("expected input order %v, got %v", want, got)
	}
}

func TestTopoOrder_PredecessorsFirst(t *testing.T) {
	// Successor listed before its predecessor in the input.
	tasks := []task.Task{
		mk("D", 1, "B", "C"),
		mk("C", 1, "A"),
		mk("B", 1, "A"),
		mk("A", 1),
	}

	g, err := Build(tasks)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	order := g.TopoOrder()
	pos := make(map[string]int, len(order))
	for i, id := range order {
		pos[id] = i
	}
	for _, id := range order {
		for _, pred := range g.Predecessors(id) {
			if pos[pred] >= pos[id] {
				t.Errorf("predecessor %s placed after %s in %v", pred, id, order)
			}
		}
	}
	if got, want := order, []string{"A", "C", "B", "D"}; !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestDetectCycle_NoCycle(t *testing.T) {
	g := &TaskGraph{
		Tasks: map[string]*task.Task{
			"a": {ID: "a"},
			"b": {ID: "b"},
		},
		Adj: map[string][]string{
			"a": {"b"},
		},
		RevAdj: map[string][]string{
			"b": {"a"},
		},
	}

	cycle := g.DetectCycle()
	if cycle != nil {
		t.Errorf("expected no cycle, got %v", cycle)
	}
}

func TestDetectCycle_WithCycle(t *testing.T) {
	g := &TaskGraph{
		Tasks: map[string]*task.Task{
			"a": {ID: "a"},
			"b": {ID: "b"},
			"c": {ID: "c"},
		},
		Adj: map[string][]string{
			"a": {"b"},
			"b": {"c"},
			"c": {"a"},
		},
		RevAdj: map[string][]string{
			"a": {"c"},
			"b": {"a"},
			"c": {"b"},
		},
	}

	cycle := g.DetectCycle()
	if cycle == nil {
		t.Fatal("expected cycle, got nil")
	}
	if len(cycle) < 3 {
		t.Errorf("expected cycle of length >= 3, got %v", cycle)
	}
	if len(g.TopoOrder()) == g.TaskCount() {
		t.Error("expected topo order to be incomplete on a cyclic graph")
	}
	t.Logf("detected cycle: %v", cycle)
}
