// Package loader decodes project files into task sets.
//
// Two formats are accepted, chosen by file extension:
//
//	.yaml, .yml  decoded with gopkg.in/yaml.v3
//	.json        read with github.com/tidwall/gjson
//
// In both formats a task's predecessors may be a list of ids or a single
// comma-separated string ("A, B"). Tasks without an id get one generated from
// their position (A..Z, a..z, AA, ...).
package loader

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/Napster7-0/tp2/internal/task"
)

// Project is a named task set read from a file.
type Project struct {
	Name  string      `json:"name" yaml:"name"`
	Path  string      `json:"path,omitempty" yaml:"-"`
	Tasks []task.Task `json:"tasks" yaml:"tasks"`
}

// Loader reads project files.
type Loader struct {
	logger *slog.Logger
}

// New creates a Loader. A nil logger discards log output.
func New(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Loader{logger: logger}
}

// LoadFile reads and decodes the project at path.
func (l *Loader) LoadFile(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read project file: %w", err)
	}

	var p *Project
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		p, err = l.DecodeYAML(data)
	case ".json":
		p, err = l.DecodeJSON(data)
	default:
		return nil, fmt.Errorf("unsupported project file extension %q (use .yaml, .yml or .json)", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	p.Path = path
	if p.Name == "" {
		p.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	l.logger.Debug("loaded project", "path", path, "name", p.Name, "tasks", len(p.Tasks))
	return p, nil
}

// LoadAll reads several project files concurrently. Projects are returned in
// the order of paths; the first error cancels the remaining reads.
func (l *Loader) LoadAll(ctx context.Context, paths []string) ([]*Project, error) {
	projects := make([]*Project, len(paths))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(8)
	for i, path := range paths {
		i, path := i, path
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			p, err := l.LoadFile(path)
			if err != nil {
				return err
			}
			projects[i] = p
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return projects, nil
}

// fillIDs assigns generated ids to tasks that have none. Generated ids never
// collide with ids written in the file.
func (l *Loader) fillIDs(tasks []task.Task) {
	used := make(map[string]bool, len(tasks))
	for _, t := range tasks {
		if id := strings.TrimSpace(t.ID); id != "" {
			used[id] = true
		}
	}

	next := 0
	for i := range tasks {
		if strings.TrimSpace(tasks[i].ID) != "" {
			continue
		}
		if next < i {
			next = i
		}
		for used[task.GenerateID(next)] {
			next++
		}
		tasks[i].ID = task.GenerateID(next)
		used[tasks[i].ID] = true
		next++
		l.logger.Warn("task has no id, generated one", "position", i+1, "id", tasks[i].ID)
	}
}
