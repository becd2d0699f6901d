// Package cache memoizes schedules by task-set fingerprint. It sits outside
// the engine: cpm.Compute never consults it.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sourcegraph/conc/pool"

	"github.com/Napster7-0/tp2/internal/cpm"
	"github.com/Napster7-0/tp2/internal/task"
)

// DefaultCapacity is used when New is given a non-positive capacity.
const DefaultCapacity = 64

// ComputeFunc produces a schedule from a task set.
type ComputeFunc func([]task.Task) (*cpm.Schedule, error)

// Scheduler wraps a ComputeFunc with a bounded LRU cache of successful
// schedules. Failed computations are not cached. Safe for concurrent use.
type Scheduler struct {
	compute ComputeFunc
	entries *lru.Cache[string, *cpm.Schedule]

	hits, misses atomic.Int64
}

// Stats reports cache effectiveness.
type Stats struct {
	Hits    int `json:"hits"`
	Misses  int `json:"misses"`
	Entries int `json:"entries"`
}

// New creates a Scheduler backed by cpm.Compute.
func New(capacity int) *Scheduler {
	return NewWithFunc(capacity, cpm.Compute)
}

// NewWithFunc creates a Scheduler backed by fn.
func NewWithFunc(capacity int, fn ComputeFunc) *Scheduler {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	// lru.New only fails on a non-positive size.
	entries, _ := lru.New[string, *cpm.Schedule](capacity)
	return &Scheduler{compute: fn, entries: entries}
}

// Fingerprint returns a stable hash of a task set. Input order is part of
// the fingerprint because it determines output order.
func Fingerprint(tasks []task.Task) (string, error) {
	data, err := json.Marshal(tasks)
	if err != nil {
		return "", fmt.Errorf("encode task set: %w", err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// Compute returns the cached schedule for tasks, computing it on a miss.
// Cached schedules are shared between callers and must be treated as read-only.
func (s *Scheduler) Compute(tasks []task.Task) (*cpm.Schedule, error) {
	key, err := Fingerprint(tasks)
	if err != nil {
		return nil, err
	}

	if sched, ok := s.entries.Get(key); ok {
		s.hits.Add(1)
		return sched, nil
	}
	s.misses.Add(1)

	// Concurrent misses on one key may both compute; the first stored wins.
	sched, err := s.compute(tasks)
	if err != nil {
		return nil, err
	}
	if prev, ok, _ := s.entries.PeekOrAdd(key, sched); ok {
		return prev, nil
	}
	return sched, nil
}

// Invalidate drops the cached schedule for tasks, if any.
func (s *Scheduler) Invalidate(tasks []task.Task) error {
	key, err := Fingerprint(tasks)
	if err != nil {
		return err
	}
	s.entries.Remove(key)
	return nil
}

// Stats returns a snapshot of the hit and miss counters.
func (s *Scheduler) Stats() Stats {
	return Stats{
		Hits:    int(s.hits.Load()),
		Misses:  int(s.misses.Load()),
		Entries: s.entries.Len(),
	}
}

// Result is the outcome of one computation in a batch.
type Result struct {
	Schedule *cpm.Schedule
	Err      error
}

// ComputeAll schedules independent task sets concurrently with at most
// maxParallel workers. Results are returned in input order. A cancelled
// context stops sets that have not started yet; their Err is ctx.Err().
func (s *Scheduler) ComputeAll(ctx context.Context, sets [][]task.Task, maxParallel int) []Result {
	if maxParallel <= 0 {
		maxParallel = 4
	}
	results := make([]Result, len(sets))
	p := pool.New().WithMaxGoroutines(maxParallel)
	for i := range sets {
		i := i
		p.Go(func() {
			if err := ctx.Err(); err != nil {
				results[i].Err = err
				return
			}
			results[i].Schedule, results[i].Err = s.Compute(sets[i])
		})
	}
	p.Wait()
	return results
}
