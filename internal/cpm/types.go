package cpm

import "github.com/Napster7-0/tp2/internal/task"

// Schedule holds the complete critical path analysis of one task set.
// It is produced fresh by every computation and never updated in place.
type Schedule struct {
	Tasks         map[string]*ScheduledTask
	Order         []string // task ids in input order
	TopoOrder     []string
	CriticalPath  []string // critical task ids in input order
	TotalDuration int
	Waves         []Wave // tasks grouped by earliest start
}

// ScheduledTask holds the scheduling info for a single task.
type ScheduledTask struct {
	task.Task
	EarliestStart  int  `json:"earliestStart"`
	EarliestFinish int  `json:"earliestFinish"`
	LatestStart    int  `json:"latestStart"`
	LatestFinish   int  `json:"latestFinish"`
	TotalSlack     int  `json:"totalSlack"`
	FreeSlack      int  `json:"freeSlack"`
	IsCritical     bool `json:"isCritical"`
	Wave           int  `json:"wave"`
}

// ProjectMetrics summarizes a schedule for the table and metrics views.
type ProjectMetrics struct {
	TotalDuration      int      `json:"totalDuration"`
	CriticalTasksCount int      `json:"criticalTasksCount"`
	TotalTasks         int      `json:"totalTasks"`
	CriticalPath       []string `json:"criticalPath"`
}

// Wave represents a group of tasks sharing the same earliest start.
type Wave struct {
	Index      int      `json:"index"`
	Start      int      `json:"start"`
	TaskIDs    []string `json:"taskIds"`
	IsCritical bool     `json:"isCritical"` // true if wave contains critical tasks
}
