package history

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alexanderramin/diarist/internal/domain"
)

// DefaultFileName is the name of the JSON history document.
const DefaultFileName = "task_descriptions.json"

var _ Backend = (*FileBackend)(nil)

// FileBackend stores every task history in one JSON document:
//
//	{"<task>": {"history": [{"start_date", "end_date", "description"}], "daywise_descriptions": {"<date>": "..."}}}
type FileBackend struct {
	path string
}

// NewFileBackend creates a backend for path. The file does not need to exist.
func NewFileBackend(path string) *FileBackend {
	return &FileBackend{path: path}
}

func (b *FileBackend) Path() string { return b.path }

func (b *FileBackend) LoadAll(_ context.Context) (map[string]*domain.TaskHistory, error) {
	content, err := os.ReadFile(b.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]*domain.TaskHistory{}, nil
		}
		return nil, fmt.Errorf("read history file: %w", err)
	}

	entries := map[string]*domain.TaskHistory{}
	if len(content) == 0 {
		return entries, nil
	}
	if err := json.Unmarshal(content, &entries); err != nil {
		return nil, fmt.Errorf("parse history file %s: %w", b.path, err)
	}

	for name, h := range entries {
		if h == nil {
			delete(entries, name)
			continue
		}
		if h.Daywise == nil {
			h.Daywise = make(map[string]string)
		}
	}
	return entries, nil
}

// SaveAll writes the document to a temp file next to the target and renames
// it into place so a crash never leaves a half-written history.
func (b *FileBackend) SaveAll(_ context.Context, entries map[string]*domain.TaskHistory) error {
	out := make(map[string]*domain.TaskHistory, len(entries))
	for name, h := range entries {
		c := h.Clone()
		if c.History == nil {
			c.History = []domain.Segment{}
		}
		out[name] = c
	}

	content, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(b.path), 0o750); err != nil {
		return fmt.Errorf("create history directory: %w", err)
	}
	tmpPath := b.path + ".tmp"
	if err := os.WriteFile(tmpPath, content, 0o600); err != nil {
		return fmt.Errorf("write history temp file: %w", err)
	}
	if err := os.Rename(tmpPath, b.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename history file: %w", err)
	}
	return nil
}
