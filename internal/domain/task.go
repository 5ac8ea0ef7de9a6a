package domain

import "fmt"

// Task is one row of the uploaded schedule. StartDate <= DueDate holds for
// every Task produced by the schedule loader.
type Task struct {
	Name         string
	StartDate    Date
	DueDate      Date
	Assignee     string
	LinkedEntity string
}

// Label is the text shown for the task in day listings: the name, suffixed
// with the linked entity in parentheses when one is set.
func (t Task) Label() string {
	if t.LinkedEntity == "" {
		return t.Name
	}
	return fmt.Sprintf("%s (%s)", t.Name, t.LinkedEntity)
}

// Overlaps reports whether [StartDate, DueDate] intersects [from, to], inclusive.
func (t Task) Overlaps(from, to Date) bool {
	return !t.StartDate.After(to) && !t.DueDate.Before(from)
}

// SpanDays is the inclusive number of calendar days the task covers.
func (t Task) SpanDays() int {
	return t.StartDate.DaysUntil(t.DueDate) + 1
}
