package history

import (
	"fmt"
	"io"
	"slices"

	"github.com/alexanderramin/diarist/internal/domain"
	"gopkg.in/yaml.v3"
)

// yamlDocument is the portable backup format written by ExportYAML.
type yamlDocument struct {
	Version int        `yaml:"version"`
	Tasks   []yamlTask `yaml:"tasks"`
}

type yamlTask struct {
	Name    string            `yaml:"name"`
	History []yamlSegment     `yaml:"history"`
	Daywise map[string]string `yaml:"daywise,omitempty"`
}

type yamlSegment struct {
	Start       string `yaml:"start"`
	End         string `yaml:"end"`
	Description string `yaml:"description"`
}

const yamlVersion = 1

// ExportYAML writes entries to w as a YAML document with tasks sorted by name.
func ExportYAML(w io.Writer, entries map[string]*domain.TaskHistory) error {
	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	slices.Sort(names)

	doc := yamlDocument{Version: yamlVersion, Tasks: make([]yamlTask, 0, len(names))}
	for _, name := range names {
		h := entries[name]
		if h == nil {
			continue
		}
		t := yamlTask{Name: name, History: make([]yamlSegment, 0, len(h.History))}
		for _, seg := range h.History {
			t.History = append(t.History, yamlSegment{
				Start:       seg.Start.String(),
				End:         seg.End.String(),
				Description: seg.Description,
			})
		}
		if len(h.Daywise) > 0 {
			t.Daywise = h.Daywise
		}
		doc.Tasks = append(doc.Tasks, t)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode history yaml: %w", err)
	}
	return enc.Close()
}

// ImportYAML reads a document produced by ExportYAML.
func ImportYAML(r io.Reader) (map[string]*domain.TaskHistory, error) {
	var doc yamlDocument
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode history yaml: %w", err)
	}
	if doc.Version != 0 && doc.Version != yamlVersion {
		return nil, fmt.Errorf("unsupported history yaml version %d", doc.Version)
	}

	entries := make(map[string]*domain.TaskHistory, len(doc.Tasks))
	for i, t := range doc.Tasks {
		if t.Name == "" {
			return nil, fmt.Errorf("tasks[%d]: name is required", i)
		}
		h, ok := entries[t.Name]
		if !ok {
			h = domain.NewTaskHistory()
			entries[t.Name] = h
		}
		for j, seg := range t.History {
			start, err := domain.ParseDate(seg.Start)
			if err != nil {
				return nil, fmt.Errorf("tasks[%d].history[%d].start: %w", i, j, err)
			}
			end, err := domain.ParseDate(seg.End)
			if err != nil {
				return nil, fmt.Errorf("tasks[%d].history[%d].end: %w", i, j, err)
			}
			h.History = append(h.History, domain.Segment{Start: start, End: end, Description: seg.Description})
		}
		for day, text := range t.Daywise {
			if _, err := domain.ParseDate(day); err != nil {
				return nil, fmt.Errorf("tasks[%d].daywise: %w", i, err)
			}
			h.Daywise[day] = text
		}
	}
	return entries, nil
}
