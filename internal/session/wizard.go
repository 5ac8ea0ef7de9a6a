// Package session holds the state of one week's interactive Q&A.
package session

import (
	"errors"
	"slices"
)

// ErrDone is returned when a transition needs a current task but every task
// has been answered or skipped.
var ErrDone = errors.New("all tasks visited")

// ErrUnknownTask is returned by Edit for a task outside the week.
var ErrUnknownTask = errors.New("task not in this week")

// Wizard walks the unique tasks of the active week in order. Questions are
// cached per task; answers survive skips and edits until the week changes.
type Wizard struct {
	week      string
	tasks     []string
	index     int
	answers   map[string]string
	questions map[string]string
}

// NewWizard starts a session for week over tasks.
func NewWizard(week string, tasks []string) *Wizard {
	w := &Wizard{}
	w.reset(week, tasks)
	return w
}

func (w *Wizard) reset(week string, tasks []string) {
	w.week = week
	w.tasks = slices.Clone(tasks)
	w.index = 0
	w.answers = make(map[string]string)
	w.questions = make(map[string]string)
}

// ResetOnWeekChange starts over when week differs from the active week and
// reports whether it did. Switching back to the same week keeps all state.
func (w *Wizard) ResetOnWeekChange(week string, tasks []string) bool {
	if week == w.week {
		return false
	}
	w.reset(week, tasks)
	return true
}

func (w *Wizard) Week() string    { return w.week }
func (w *Wizard) Tasks() []string { return slices.Clone(w.tasks) }
func (w *Wizard) Index() int      { return w.index }

// Done reports whether every task has been visited.
func (w *Wizard) Done() bool { return w.index >= len(w.tasks) }

// Current returns the task awaiting an answer.
func (w *Wizard) Current() (string, bool) {
	if w.Done() {
		return "", false
	}
	return w.tasks[w.index], true
}

// NeedsQuestion reports whether the current task has no cached question.
func (w *Wizard) NeedsQuestion() bool {
	task, ok := w.Current()
	if !ok {
		return false
	}
	_, cached := w.questions[task]
	return !cached
}

// SetQuestion caches the question for the current task.
func (w *Wizard) SetQuestion(question string) error {
	task, ok := w.Current()
	if !ok {
		return ErrDone
	}
	w.questions[task] = question
	return nil
}

// Question returns the cached question for task.
func (w *Wizard) Question(task string) (string, bool) {
	q, ok := w.questions[task]
	return q, ok
}

// Advance records answer for the current task and moves on.
func (w *Wizard) Advance(answer string) error {
	task, ok := w.Current()
	if !ok {
		return ErrDone
	}
	w.answers[task] = answer
	w.index++
	return nil
}

// Skip moves on without recording an answer.
func (w *Wizard) Skip() error {
	if w.Done() {
		return ErrDone
	}
	w.index++
	return nil
}

// Edit replaces the answer for any task of the week, typically during the
// final review.
func (w *Wizard) Edit(task, answer string) error {
	if !slices.Contains(w.tasks, task) {
		return ErrUnknownTask
	}
	w.answers[task] = answer
	return nil
}

// Answer returns the recorded answer for task.
func (w *Wizard) Answer(task string) (string, bool) {
	a, ok := w.answers[task]
	return a, ok
}

// Answers returns a copy of every recorded answer.
func (w *Wizard) Answers() map[string]string {
	out := make(map[string]string, len(w.answers))
	for k, v := range w.answers {
		out[k] = v
	}
	return out
}
