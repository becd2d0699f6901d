package graph

import "container/heap"

// readyQueue is a min-heap of task ids ordered by input position, then id.
type readyQueue struct {
	ids []string
	g   *TaskGraph
}

func (q readyQueue) Len() int { return len(q.ids) }
func (q readyQueue) Less(i, j int) bool {
	pi, pj := q.g.position(q.ids[i]), q.g.position(q.ids[j])
	if pi != pj {
		return pi < pj
	}
	return q.ids[i] < q.ids[j]
}
func (q readyQueue) Swap(i, j int) { q.ids[i], q.ids[j] = q.ids[j], q.ids[i] }
func (q *readyQueue) Push(x any)   { q.ids = append(q.ids, x.(string)) }
func (q *readyQueue) Pop() any {
	old := q.ids
	n := len(old)
	x := old[n-1]
	q.ids = old[:n-1]
	return x
}

// kahn performs Kahn's algorithm. On a cyclic graph the returned order is
// shorter than TaskCount.
func (g *TaskGraph) kahn() []string {
	inDegree := make(map[string]int, len(g.Tasks))
	for id := range g.Tasks {
		inDegree[id] = len(g.RevAdj[id])
	}

	ready := &readyQueue{g: g}
	for id, d := range inDegree {
		if d == 0 {
			ready.ids = append(ready.ids, id)
		}
	}
	heap.Init(ready)

	order := make([]string, 0, len(g.Tasks))
	for ready.Len() > 0 {
		node := heap.Pop(ready).(string)
		order = append(order, node)
		for _, succ := range g.Adj[node] {
			inDegree[succ]--
			if inDegree[succ] == 0 {
				heap.Push(ready, succ)
			}
		}
	}
	return order
}
