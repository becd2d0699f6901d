package loader

import (
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/Napster7-0/tp2/internal/task"
)

// DecodeJSON decodes a JSON project: either an object with "name" and
// "tasks", or a bare array of tasks.
func (l *Loader) DecodeJSON(data []byte) (*Project, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("parse json: invalid document")
	}
	doc := gjson.ParseBytes(data)

	p := &Project{}
	tasks := doc
	if doc.IsObject() {
		p.Name = doc.Get("name").String()
		tasks = doc.Get("tasks")
	}
	if !tasks.IsArray() {
		return nil, fmt.Errorf("parse json: expected a task array")
	}

	var err error
	tasks.ForEach(func(_, item gjson.Result) bool {
		var t task.Task
		t, err = decodeJSONTask(item, len(p.Tasks))
		if err != nil {
			return false
		}
		p.Tasks = append(p.Tasks, t)
		return true
	})
	if err != nil {
		return nil, err
	}

	l.fillIDs(p.Tasks)
	return p, nil
}

func decodeJSONTask(item gjson.Result, pos int) (task.Task, error) {
	if !item.IsObject() {
		return task.Task{}, fmt.Errorf("task #%d: expected an object", pos+1)
	}

	t := task.Task{
		ID:          item.Get("id").String(),
		Name:        item.Get("name").String(),
		Description: item.Get("description").String(),
	}

	dur := item.Get("duration")
	switch dur.Type {
	case gjson.Number:
		if dur.Num != float64(int(dur.Num)) {
			return task.Task{}, fmt.Errorf("task #%d: duration %v is not a whole number", pos+1, dur.Num)
		}
		t.Duration = int(dur.Int())
	case gjson.String:
		// Form inputs are often stored as strings, e.g. "3".
		n := gjson.Parse(dur.Str)
		if n.Type != gjson.Number || n.Num != float64(int(n.Num)) {
			return task.Task{}, fmt.Errorf("task #%d: duration %q is not a whole number", pos+1, dur.Str)
		}
		t.Duration = int(n.Int())
	case gjson.Null:
	default:
		return task.Task{}, fmt.Errorf("task #%d: duration must be a number", pos+1)
	}

	preds := item.Get("predecessors")
	switch {
	case preds.IsArray():
		for _, p := range preds.Array() {
			t.Predecessors = append(t.Predecessors, p.String())
		}
	case preds.Type == gjson.String:
		t.Predecessors = task.ParsePredecessors(preds.Str)
	case !preds.Exists() || preds.Type == gjson.Null:
	default:
		return task.Task{}, fmt.Errorf("task #%d: predecessors must be a list or a comma-separated string", pos+1)
	}

	return t, nil
}
