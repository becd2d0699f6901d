package reporter

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/Napster7-0/tp2/internal/cpm"
	"github.com/Napster7-0/tp2/internal/ui"
)

const maxNameWidth = 32

// Reporter renders a computed schedule for the terminal or as JSON.
type Reporter struct {
	Project   string
	Schedule  *cpm.Schedule
	Separator string // joins critical path ids
}

// New creates a new Reporter.
func New(project string, s *cpm.Schedule) *Reporter {
	return &Reporter{
		Project:   project,
		Schedule:  s,
		Separator: " → ",
	}
}

// PrintTable writes the per-task schedule table in input order.
func (r *Reporter) PrintTable(w io.Writer) {
	title := "Schedule"
	if r.Project != "" {
		title = "Schedule: " + r.Project
	}
	ui.Heading(w, "🎯", title)
	fmt.Fprintln(w)

	idWidth := len("ID")
	nameWidth := len("Name")
	for _, ts := range r.Schedule.List() {
		if n := utf8.RuneCountInString(ts.ID); n > idWidth {
			idWidth = n
		}
		if n := utf8.RuneCountInString(ts.Name); n > nameWidth {
			nameWidth = n
		}
	}
	if nameWidth > maxNameWidth {
		nameWidth = maxNameWidth
	}

	fmt.Fprintf(w, "  %s %-*s  %-*s  %4s  %4s  %4s  %4s  %4s  %5s  %4s\n", " ",
		idWidth, "ID", nameWidth, "Name", "Dur", "ES", "EF", "LS", "LF", "Total", "Free")
	for _, ts := range r.Schedule.List() {
		fmt.Fprintf(w, "  %s %s  %s  %4d  %4d  %4d  %4d  %4d  %s  %s\n",
			ui.CriticalMark(ts.IsCritical),
			ui.TaskID(ts.ID, idWidth, ts.IsCritical),
			padName(ts.Name, nameWidth),
			ts.Duration,
			ts.EarliestStart, ts.EarliestFinish,
			ts.LatestStart, ts.LatestFinish,
			ui.Slack(ts.TotalSlack, 5),
			ui.Slack(ts.FreeSlack, 4),
		)
	}
	fmt.Fprintln(w)
}

// PrintMetrics writes the project summary.
func (r *Reporter) PrintMetrics(w io.Writer) {
	m := r.Schedule.Metrics()
	fmt.Fprintf(w, "Duration:  %s units\n", ui.Bold(m.TotalDuration))
	fmt.Fprintf(w, "Tasks:     %s total, %s critical\n", ui.Bold(m.TotalTasks), ui.BoldYellow(m.CriticalTasksCount))
	fmt.Fprintf(w, "⚡ Critical path: %s\n", ui.BoldYellow(r.Schedule.CriticalPathString(r.Separator)))
}

// PrintWaves writes the tasks grouped by earliest start.
func (r *Reporter) PrintWaves(w io.Writer) {
	for _, wave := range r.Schedule.Waves {
		fmt.Fprintf(w, "🌊 %s %d (starts at %d, %d tasks):\n",
			ui.BoldWhite("Wave"), wave.Index+1, wave.Start, len(wave.TaskIDs))
		for _, id := range wave.TaskIDs {
			ts := r.Schedule.Tasks[id]
			name, crit := ui.Dim(ts.Name), ""
			if ts.IsCritical {
				name, crit = ts.Name, "  "+ui.BoldYellow("⚡ critical")
			}
			fmt.Fprintf(w, "  %s  %s%s\n", ui.BoldMagenta(id), name, crit)
		}
		fmt.Fprintln(w)
	}
}

// Output is the machine-readable form of a schedule.
type Output struct {
	Project  string               `json:"project,omitempty"`
	Metrics  cpm.ProjectMetrics   `json:"metrics"`
	Tasks    []*cpm.ScheduledTask `json:"tasks"`
	Waves    []cpm.Wave           `json:"waves"`
	Critical string               `json:"criticalPathString"`
}

// Build assembles the machine-readable form of the schedule.
func (r *Reporter) Build() Output {
	return Output{
		Project:  r.Project,
		Metrics:  r.Schedule.Metrics(),
		Tasks:    r.Schedule.List(),
		Waves:    r.Schedule.Waves,
		Critical: r.Schedule.CriticalPathString(r.Separator),
	}
}

// JSON returns the schedule as indented JSON, tasks in input order.
func (r *Reporter) JSON() ([]byte, error) {
	return json.MarshalIndent(r.Build(), "", "  ")
}

func padName(name string, width int) string {
	if utf8.RuneCountInString(name) > width {
		runes := []rune(name)
		name = string(runes[:width-3]) + "..."
	}
	return name + strings.Repeat(" ", width-utf8.RuneCountInString(name))
}
