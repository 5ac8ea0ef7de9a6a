package service

import (
	"context"
	"fmt"
	"io"

	"github.com/alexanderramin/diarist/internal/domain"
	"github.com/alexanderramin/diarist/internal/history"
)

type historyService struct {
	store    *history.Store
	observer UseCaseObserver
}

// NewHistoryService serves listing, backup and restore over store.
func NewHistoryService(store *history.Store, observers ...UseCaseObserver) HistoryService {
	return &historyService{store: store, observer: useCaseObserverOrNoop(observers)}
}

func (s *historyService) List(_ context.Context) ([]TaskSummary, error) {
	names := s.store.Names()
	out := make([]TaskSummary, 0, len(names))
	for _, name := range names {
		h, _ := s.store.Entry(name)
		sum := TaskSummary{Name: name, Segments: len(h.History), Partials: len(h.Daywise)}
		for _, seg := range h.History {
			if sum.First.IsZero() || seg.Start.Before(sum.First) {
				sum.First = seg.Start
			}
			if seg.End.After(sum.Last) {
				sum.Last = seg.End
			}
		}
		out = append(out, sum)
	}
	return out, nil
}

func (s *historyService) Show(_ context.Context, name string) (*domain.TaskHistory, error) {
	h, ok := s.store.Entry(name)
	if !ok {
		return nil, fmt.Errorf("task %q: %w", name, history.ErrUnknownTask)
	}
	return h, nil
}

func (s *historyService) Export(ctx context.Context, w io.Writer) (err error) {
	fields := map[string]any{}
	defer observe(ctx, s.observer, "export-history", fields)(&err)

	entries := s.store.Snapshot()
	fields["task_count"] = len(entries)
	return history.ExportYAML(w, entries)
}

// Import merges a YAML export into the store and persists it. Existing
// segments and partials are never replaced.
func (s *historyService) Import(ctx context.Context, r io.Reader) (res *ImportResult, err error) {
	fields := map[string]any{}
	defer observe(ctx, s.observer, "import-history", fields)(&err)

	var entries map[string]*domain.TaskHistory
	entries, err = history.ImportYAML(r)
	if err != nil {
		return nil, fmt.Errorf("importing history: %w", err)
	}
	segments, partials := s.store.Merge(entries)
	if err = s.store.Flush(ctx); err != nil {
		return nil, err
	}

	res = &ImportResult{Tasks: len(entries), Segments: segments, Partials: partials}
	fields["tasks"] = res.Tasks
	fields["segments"] = res.Segments
	fields["partials"] = res.Partials
	return res, nil
}
