package cpm

import (
	"errors"
	"fmt"
)

// ErrScheduleInconsistency marks a violated post-condition after propagation.
// It signals an internal defect, not bad input.
var ErrScheduleInconsistency = errors.New("schedule inconsistency")

// ScheduleInconsistencyError names the task whose computed values broke an
// invariant.
type ScheduleInconsistencyError struct {
	TaskID string
	Detail string
}

func (e *ScheduleInconsistencyError) Error() string {
	if e.TaskID == "" {
		return fmt.Sprintf("%s: %s", ErrScheduleInconsistency, e.Detail)
	}
	return fmt.Sprintf("%s: task %s: %s", ErrScheduleInconsistency, e.TaskID, e.Detail)
}

func (e *ScheduleInconsistencyError) Unwrap() error { return ErrScheduleInconsistency }

func inconsistent(id, format string, args ...any) error {
	return &ScheduleInconsistencyError{TaskID: id, Detail: fmt.Sprintf(format, args...)}
}
