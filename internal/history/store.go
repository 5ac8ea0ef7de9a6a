// Package history keeps, per task name, the append-only list of weekly
// description segments and the cache of day-wise partials derived from it.
package history

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"slices"

	"github.com/alexanderramin/diarist/internal/domain"
)

// ErrUnknownTask is returned when a task has no recorded history.
var ErrUnknownTask = errors.New("unknown task")

// Backend persists the whole history map. The store reads it once when opened
// and writes it back on Flush.
type Backend interface {
	LoadAll(ctx context.Context) (map[string]*domain.TaskHistory, error)
	SaveAll(ctx context.Context, entries map[string]*domain.TaskHistory) error
}

// segmentKey is the sha256 of a segment's canonical "start|end|description" form.
type segmentKey [sha256.Size]byte

func keyOf(s domain.Segment) segmentKey {
	return sha256.Sum256([]byte(s.Start.String() + "|" + s.End.String() + "|" + s.Description))
}

// Store is the in-memory view of all task histories. It is not safe for
// concurrent use; one session owns it at a time.
type Store struct {
	backend Backend
	entries map[string]*domain.TaskHistory
	seen    map[string]map[segmentKey]struct{}
	dirty   bool
}

// Open loads every entry from backend.
func Open(ctx context.Context, backend Backend) (*Store, error) {
	s := &Store{backend: backend}
	if err := s.Reload(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload discards in-memory state, unflushed changes included, and reads
// every entry from the backend again.
func (s *Store) Reload(ctx context.Context) error {
	entries, err := s.backend.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("loading task history: %w", err)
	}
	s.entries = make(map[string]*domain.TaskHistory, len(entries))
	s.seen = make(map[string]map[segmentKey]struct{}, len(entries))
	s.dirty = false
	for name, h := range entries {
		if h == nil {
			continue
		}
		entry := h.Clone()
		s.entries[name] = entry
		keys := make(map[segmentKey]struct{}, len(entry.History))
		for _, seg := range entry.History {
			keys[keyOf(seg)] = struct{}{}
		}
		s.seen[name] = keys
	}
	return nil
}

func (s *Store) entry(name string) *domain.TaskHistory {
	h, ok := s.entries[name]
	if !ok {
		h = domain.NewTaskHistory()
		s.entries[name] = h
		s.seen[name] = make(map[segmentKey]struct{})
		s.dirty = true
	}
	return h
}

// RecordSegment appends (start, end, description) to the task's history unless
// the identical triple is already present. It reports whether it appended.
func (s *Store) RecordSegment(name string, start, end domain.Date, description string) bool {
	seg := domain.Segment{Start: start, End: end, Description: description}
	h := s.entry(name)
	key := keyOf(seg)
	if _, dup := s.seen[name][key]; dup {
		return false
	}
	h.History = append(h.History, seg)
	s.seen[name][key] = struct{}{}
	s.dirty = true
	return true
}

// History returns a copy of the task's segments in insertion order.
func (s *Store) History(name string) []domain.Segment {
	h, ok := s.entries[name]
	if !ok {
		return nil
	}
	return slices.Clone(h.History)
}

// Daywise returns the cached partial for the task on d.
func (s *Store) Daywise(name string, d domain.Date) (string, bool) {
	h, ok := s.entries[name]
	if !ok {
		return "", false
	}
	text, ok := h.Daywise[d.String()]
	return text, ok
}

// SetDaywise stores text as the task's partial for d. An existing partial is
// never replaced; SetDaywise then returns false.
func (s *Store) SetDaywise(name string, d domain.Date, text string) bool {
	h := s.entry(name)
	key := d.String()
	if _, exists := h.Daywise[key]; exists {
		return false
	}
	h.Daywise[key] = text
	s.dirty = true
	return true
}

// MissingDays returns the days, in the given order, that have no partial yet.
func (s *Store) MissingDays(name string, days []domain.Date) []domain.Date {
	var missing []domain.Date
	for _, d := range days {
		if _, ok := s.Daywise(name, d); !ok {
			missing = append(missing, d)
		}
	}
	return missing
}

// Entry returns a deep copy of one task's history.
func (s *Store) Entry(name string) (*domain.TaskHistory, bool) {
	h, ok := s.entries[name]
	if !ok {
		return nil, false
	}
	return h.Clone(), true
}

// Names returns every task name in the store, sorted.
func (s *Store) Names() []string {
	names := make([]string, 0, len(s.entries))
	for name := range s.entries {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Snapshot returns a deep copy of every entry.
func (s *Store) Snapshot() map[string]*domain.TaskHistory {
	out := make(map[string]*domain.TaskHistory, len(s.entries))
	for name, h := range s.entries {
		out[name] = h.Clone()
	}
	return out
}

// Merge folds entries into the store under the normal rules: segments are
// appended idempotently and existing partials are kept. It returns the
// number of segments and partials added.
func (s *Store) Merge(entries map[string]*domain.TaskHistory) (segments, partials int) {
	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		h := entries[name]
		if h == nil {
			continue
		}
		for _, seg := range h.History {
			if s.RecordSegment(name, seg.Start, seg.End, seg.Description) {
				segments++
			}
		}
		for day, text := range h.Daywise {
			d, err := domain.ParseDate(day)
			if err != nil {
				continue
			}
			if s.SetDaywise(name, d, text) {
				partials++
			}
		}
	}
	return segments, partials
}

// Dirty reports whether there are changes not yet flushed.
func (s *Store) Dirty() bool { return s.dirty }

// Flush writes every entry to the backend if anything changed since the
// last flush.
func (s *Store) Flush(ctx context.Context) error {
	if !s.dirty {
		return nil
	}
	if err := s.backend.SaveAll(ctx, s.Snapshot()); err != nil {
		return fmt.Errorf("saving task history: %w", err)
	}
	s.dirty = false
	return nil
}
