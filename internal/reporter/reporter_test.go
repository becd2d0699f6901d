package reporter

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/Napster7-0/tp2/internal/cpm"
	"github.com/Napster7-0/tp2/internal/task"
	"github.com/Napster7-0/tp2/internal/ui"
)

func makeSchedule(t *testing.T) *cpm.Schedule {
	t.Helper()
	s, err := cpm.Compute([]task.Task{
		{ID: "A", Name: "Foundations", Duration: 1},
		{ID: "B", Name: "Walls", Duration: 3, Predecessors: []string{"A"}},
		{ID: "C", Name: "Wiring the whole building from basement to attic", Duration: 1, Predecessors: []string{"A"}},
		{ID: "D", Name: "Roof", Duration: 2, Predecessors: []string{"B", "C"}},
	})
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	return s
}

func TestPrintTable(t *testing.T) {
	ui.SetColor(false)
	defer ui.SetColor(true)

	var buf bytes.Buffer
	New("House", makeSchedule(t)).PrintTable(&buf)
	output := buf.String()

	if !strings.Contains(output, "Schedule: House") {
		t.Error("expected output to contain the project title")
	}
	if !strings.Contains(output, "Foundations") {
		t.Error("expected output to contain 'Foundations'")
	}
	if !strings.Contains(output, "...") {
		t.Error("expected long task name to be truncated")
	}
	if !strings.Contains(output, "⚡") {
		t.Error("expected output to contain critical path marker")
	}

	// Rows follow input order.
	if strings.Index(output, "Foundations") > strings.Index(output, "Roof") {
		t.Error("expected rows in input order")
	}

	var cRow string
	for _, line := range strings.Split(output, "\n") {
		if strings.Contains(line, "Wiring") {
			cRow = line
		}
	}
	fields := strings.Fields(cRow)
	// C ... Dur ES EF LS LF Total Free
	got := strings.Join(fields[len(fields)-7:], " ")
	if got != "1 1 2 3 4 2 2" {
		t.Errorf("unexpected row values for C: %q", got)
	}
}

func TestPrintMetrics(t *testing.T) {
	ui.SetColor(false)
	defer ui.SetColor(true)

	var buf bytes.Buffer
	New("", makeSchedule(t)).PrintMetrics(&buf)
	output := buf.String()

	for _, want := range []string{"Duration:  6 units", "4 total, 3 critical", "A → B → D"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, output)
		}
	}
}

func TestPrintWaves(t *testing.T) {
	ui.SetColor(false)
	defer ui.SetColor(true)

	var buf bytes.Buffer
	New("", makeSchedule(t)).PrintWaves(&buf)
	output := buf.String()

	if strings.Count(output, "Wave") != 3 {
		t.Errorf("expected 3 waves (ES 0, 1 and 4), got:\n%s", output)
	}
	if !strings.Contains(output, "Wave 2 (starts at 1, 2 tasks)") {
		t.Errorf("expected B and C to share wave 2, got:\n%s", output)
	}
}

func TestPrintWaves_DimsNonCriticalNames(t *testing.T) {
	ui.SetColor(true)

	var buf bytes.Buffer
	New("", makeSchedule(t)).PrintWaves(&buf)
	output := buf.String()

	if !strings.Contains(output, "\x1b[2mWiring the whole building") {
		t.Errorf("expected non-critical name to be dimmed, got:\n%q", output)
	}
	if strings.Contains(output, "\x1b[2mWalls") {
		t.Errorf("critical name should not be dimmed, got:\n%q", output)
	}
}

func TestJSON(t *testing.T) {
	rpt := New("House", makeSchedule(t))
	rpt.Separator = ","

	data, err := rpt.JSON()
	if err != nil {
		t.Fatalf("json: %v", err)
	}

	var out struct {
		Project string `json:"project"`
		Metrics struct {
			TotalDuration int      `json:"totalDuration"`
			CriticalPath  []string `json:"criticalPath"`
		} `json:"metrics"`
		Tasks []struct {
			ID           string   `json:"id"`
			Predecessors []string `json:"predecessors"`
			TotalSlack   int      `json:"totalSlack"`
			IsCritical   bool     `json:"isCritical"`
		} `json:"tasks"`
		Critical string `json:"criticalPathString"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if out.Project != "House" || out.Metrics.TotalDuration != 6 {
		t.Errorf("unexpected header %+v", out)
	}
	if out.Critical != "A,B,D" {
		t.Errorf("expected critical string A,B,D, got %q", out.Critical)
	}
	if len(out.Tasks) != 4 || out.Tasks[2].ID != "C" || out.Tasks[2].TotalSlack != 2 || out.Tasks[2].IsCritical {
		t.Errorf("unexpected tasks %+v", out.Tasks)
	}
	if len(out.Tasks[3].Predecessors) != 2 {
		t.Errorf("expected D predecessors for edge layout, got %v", out.Tasks[3].Predecessors)
	}
}
