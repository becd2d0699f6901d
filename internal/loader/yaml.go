package loader

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/Napster7-0/tp2/internal/task"
)

type yamlProject struct {
	Name  string     `yaml:"name"`
	Tasks []yamlTask `yaml:"tasks"`
}

type yamlTask struct {
	ID           string       `yaml:"id"`
	Name         string       `yaml:"name"`
	Description  string       `yaml:"description"`
	Duration     int          `yaml:"duration"`
	Predecessors predecessors `yaml:"predecessors"`
}

// predecessors accepts either a sequence of ids or a comma-separated string.
type predecessors []string

func (p *predecessors) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var s string
		if err := node.Decode(&s); err != nil {
			return err
		}
		*p = task.ParsePredecessors(s)
		return nil
	case yaml.SequenceNode:
		var ids []string
		if err := node.Decode(&ids); err != nil {
			return err
		}
		*p = ids
		return nil
	default:
		return fmt.Errorf("line %d: predecessors must be a list or a comma-separated string", node.Line)
	}
}

// DecodeYAML decodes a YAML project document.
func (l *Loader) DecodeYAML(data []byte) (*Project, error) {
	var raw yamlProject
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	p := &Project{Name: raw.Name, Tasks: make([]task.Task, 0, len(raw.Tasks))}
	for _, rt := range raw.Tasks {
		p.Tasks = append(p.Tasks, task.Task{
			ID:           rt.ID,
			Name:         rt.Name,
			Description:  rt.Description,
			Duration:     rt.Duration,
			Predecessors: []string(rt.Predecessors),
		})
	}
	l.fillIDs(p.Tasks)
	return p, nil
}
