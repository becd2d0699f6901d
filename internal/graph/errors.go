package graph

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidGraph matches every structural validation failure raised by Build.
var ErrInvalidGraph = errors.New("invalid task graph")

var (
	ErrEmptyProject       = fmt.Errorf("%w: empty project", ErrInvalidGraph)
	ErrInvalidTask        = fmt.Errorf("%w: invalid task", ErrInvalidGraph)
	ErrUnnamedTask        = fmt.Errorf("%w: unnamed task", ErrInvalidGraph)
	ErrDuplicateTaskID    = fmt.Errorf("%w: duplicate task id", ErrInvalidGraph)
	ErrUnknownPredecessor = fmt.Errorf("%w: unknown predecessor", ErrInvalidGraph)
	ErrSelfDependency     = fmt.Errorf("%w: self dependency", ErrInvalidGraph)
	ErrCycle              = fmt.Errorf("%w: dependency cycle", ErrInvalidGraph)
)

// EmptyProjectError is returned when Build receives no tasks.
type EmptyProjectError struct{}

func (e *EmptyProjectError) Error() string { return "project has no tasks" }
func (e *EmptyProjectError) Unwrap() error { return ErrEmptyProject }

// InvalidTaskError reports a task with a missing id or a non-positive duration.
type InvalidTaskError struct {
	Position int // zero-based index in the input sequence
	ID       string
	Reason   string
}

func (e *InvalidTaskError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("task #%d: %s", e.Position+1, e.Reason)
	}
	return fmt.Sprintf("task %s: %s", e.ID, e.Reason)
}

func (e *InvalidTaskError) Unwrap() error { return ErrInvalidTask }

// UnnamedTaskError reports a task whose name is empty or whitespace.
type UnnamedTaskError struct {
	ID string
}

func (e *UnnamedTaskError) Error() string { return fmt.Sprintf("task %s has no name", e.ID) }
func (e *UnnamedTaskError) Unwrap() error { return ErrUnnamedTask }

// DuplicateTaskIDError reports two tasks sharing one id.
type DuplicateTaskIDError struct {
	ID            string
	First, Second int // zero-based positions of the clashing tasks
}

func (e *DuplicateTaskIDError) Error() string {
	return fmt.Sprintf("task id %s used by task #%d and task #%d", e.ID, e.First+1, e.Second+1)
}

func (e *DuplicateTaskIDError) Unwrap() error { return ErrDuplicateTaskID }

// UnknownPredecessorError reports a predecessor id with no matching task.
type UnknownPredecessorError struct {
	TaskID        string
	PredecessorID string
}

func (e *UnknownPredecessorError) Error() string {
	return fmt.Sprintf("task %s depends on unknown task %s", e.TaskID, e.PredecessorID)
}

func (e *UnknownPredecessorError) Unwrap() error { return ErrUnknownPredecessor }

// SelfDependencyError reports a task listing itself as a predecessor.
type SelfDependencyError struct {
	TaskID string
}

func (e *SelfDependencyError) Error() string {
	return fmt.Sprintf("task %s depends on itself", e.TaskID)
}

func (e *SelfDependencyError) Unwrap() error { return ErrSelfDependency }

// CyclicDependencyError reports a precedence cycle. Cycle starts and ends
// with the same id, e.g. [A B C A].
type CyclicDependencyError struct {
	Cycle []string
}

func (e *CyclicDependencyError) Error() string {
	if len(e.Cycle) == 0 {
		return "dependency cycle detected"
	}
	return "dependency cycle detected: " + strings.Join(e.Cycle, " -> ")
}

func (e *CyclicDependencyError) Unwrap() error { return ErrCycle }
