package domain

import (
	"fmt"
	"slices"
)

// DayTasks is the ordered list of task labels assigned to one calendar day.
type DayTasks struct {
	Date  Date
	Tasks []string
}

// WeekBucket groups the days of one Monday-to-Sunday week. Days are in
// chronological order; Monday to Friday are always present.
type WeekBucket struct {
	Start Date
	End   Date
	Days  []DayTasks
}

// WeekLabel formats the label for the week starting on start, e.g.
// "2025-01-06 to 2025-01-12". Labels sort lexicographically in chronological order.
func WeekLabel(start Date) string {
	return fmt.Sprintf("%s to %s", start, start.AddDays(6))
}

func (w WeekBucket) Label() string {
	return WeekLabel(w.Start)
}

// Contains reports whether d falls inside the week.
func (w WeekBucket) Contains(d Date) bool {
	return !d.Before(w.Start) && !d.After(w.End)
}

// TasksOn returns the labels assigned to d and whether d has an entry in the bucket.
func (w WeekBucket) TasksOn(d Date) ([]string, bool) {
	for _, day := range w.Days {
		if day.Date.Equal(d) {
			return day.Tasks, true
		}
	}
	return nil, false
}

// UniqueTasks returns each label appearing in the week once, sorted.
func (w WeekBucket) UniqueTasks() []string {
	seen := make(map[string]bool)
	var out []string
	for _, day := range w.Days {
		for _, label := range day.Tasks {
			if seen[label] {
				continue
			}
			seen[label] = true
			out = append(out, label)
		}
	}
	slices.Sort(out)
	return out
}

// TaskDays returns the days of this week the label was assigned to, in order.
func (w WeekBucket) TaskDays(label string) []Date {
	var out []Date
	for _, day := range w.Days {
		if slices.Contains(day.Tasks, label) {
			out = append(out, day.Date)
		}
	}
	return out
}

// TaskSpan returns the first and last day the label appears in this week.
func (w WeekBucket) TaskSpan(label string) (first, last Date, ok bool) {
	days := w.TaskDays(label)
	if len(days) == 0 {
		return Date{}, Date{}, false
	}
	return days[0], days[len(days)-1], true
}

// IsEmpty reports whether no day of the week has any task.
func (w WeekBucket) IsEmpty() bool {
	for _, day := range w.Days {
		if len(day.Tasks) > 0 {
			return false
		}
	}
	return true
}
