package service

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/alexanderramin/diarist/internal/domain"
	"github.com/alexanderramin/diarist/internal/history"
	"github.com/alexanderramin/diarist/internal/scheduler"
	"github.com/alexanderramin/diarist/internal/testutil"
	"github.com/stretchr/testify/require"
)

// recordingObserver keeps every use-case event.
type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}

func (o *recordingObserver) last() UseCaseEvent {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.events[len(o.events)-1]
}

// memBackend is an in-memory history backend that counts saves.
type memBackend struct {
	entries map[string]*domain.TaskHistory
	saves   int
}

func (m *memBackend) LoadAll(context.Context) (map[string]*domain.TaskHistory, error) {
	out := make(map[string]*domain.TaskHistory, len(m.entries))
	for k, v := range m.entries {
		out[k] = v.Clone()
	}
	return out, nil
}

func (m *memBackend) SaveAll(_ context.Context, entries map[string]*domain.TaskHistory) error {
	m.saves++
	m.entries = entries
	return nil
}

func openStore(t *testing.T, b history.Backend) *history.Store {
	t.Helper()
	s, err := history.Open(context.Background(), b)
	require.NoError(t, err)
	return s
}

// reviewWeek is the week of 2025-01-06 with "Design Review" Mon-Wed and
// "Kickoff" on Monday.
func reviewWeek(t *testing.T) domain.WeekBucket {
	t.Helper()
	weeks := scheduler.BucketWeeks([]domain.Task{
		testutil.NewTestTask("Design Review", "2025-01-06", "2025-01-08"),
		testutil.NewTestTask("Kickoff", "2025-01-06", "2025-01-06"),
	}, scheduler.BucketOptions{ExcludeWeekends: true, SevenDay: true})
	require.Len(t, weeks, 1)
	return weeks[0]
}

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "schedule.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
