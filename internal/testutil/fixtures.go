package testutil

import (
	"github.com/alexanderramin/diarist/internal/domain"
)

// Day parses a YYYY-MM-DD literal and panics on malformed input.
func Day(s string) domain.Date {
	d, err := domain.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Task options
type TaskOption func(*domain.Task)

func WithLinkedEntity(e string) TaskOption {
	return func(t *domain.Task) {
		t.LinkedEntity = e
	}
}

func WithAssignee(a string) TaskOption {
	return func(t *domain.Task) {
		t.Assignee = a
	}
}

func NewTestTask(name, start, due string, opts ...TaskOption) domain.Task {
	t := domain.Task{
		Name:      name,
		StartDate: Day(start),
		DueDate:   Day(due),
		Assignee:  "intern",
	}
	for _, o := range opts {
		o(&t)
	}
	return t
}

func NewTestSegment(start, end, description string) domain.Segment {
	return domain.Segment{
		Start:       Day(start),
		End:         Day(end),
		Description: description,
	}
}

// History options
type HistoryOption func(*domain.TaskHistory)

func WithSegment(start, end, description string) HistoryOption {
	return func(h *domain.TaskHistory) {
		h.History = append(h.History, NewTestSegment(start, end, description))
	}
}

func WithDaywise(date, text string) HistoryOption {
	return func(h *domain.TaskHistory) {
		h.Daywise[date] = text
	}
}

func NewTestHistory(opts ...HistoryOption) *domain.TaskHistory {
	h := domain.NewTaskHistory()
	for _, o := range opts {
		o(h)
	}
	return h
}
