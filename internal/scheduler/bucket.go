package scheduler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/diarist/internal/domain"
)

// ErrInvalidWeekLabel is returned when a label is not "<monday> to <sunday>".
var ErrInvalidWeekLabel = errors.New("invalid week label")

// BucketOptions controls how task intervals are expanded into week buckets.
type BucketOptions struct {
	// Anchor is the earliest date considered; the first bucket starts on the
	// Monday of its week. Zero means the earliest task start.
	Anchor domain.Date
	// ExcludeWeekends drops Saturday and Sunday from task assignment.
	ExcludeWeekends bool
	// Leave days never receive task assignments.
	Leave domain.LeaveSet
	// SevenDay materializes Saturday and Sunday in every bucket, even when empty.
	SevenDay bool
}

// BucketWeeks maps each task's [StartDate, DueDate] interval onto consecutive
// Monday-to-Sunday buckets running from the anchor's week through the week of
// the latest due date. Every week in that range gets a bucket, even if empty.
// Within a day, labels keep the order of tasks.
func BucketWeeks(tasks []domain.Task, opts BucketOptions) []domain.WeekBucket {
	if len(tasks) == 0 {
		return nil
	}

	anchor := opts.Anchor
	if anchor.IsZero() {
		anchor = EarliestStart(tasks)
	}
	first := FirstMonday(anchor)
	last := LastSunday(LatestDue(tasks))

	var weeks []domain.WeekBucket
	for start := first; !start.After(last); start = start.AddDays(7) {
		weeks = append(weeks, bucketWeek(tasks, start, opts))
	}
	return weeks
}

func bucketWeek(tasks []domain.Task, start domain.Date, opts BucketOptions) domain.WeekBucket {
	end := start.AddDays(6)
	assigned := make(map[domain.Date][]string)

	for _, t := range tasks {
		if !t.Overlaps(start, end) {
			continue
		}
		from := domain.MaxDate(t.StartDate, start)
		to := domain.MinDate(t.DueDate, end)
		label := t.Label()
		for d := from; !d.After(to); d = d.AddDays(1) {
			if opts.ExcludeWeekends && d.IsWeekend() {
				continue
			}
			if opts.Leave.Contains(d) {
				continue
			}
			assigned[d] = append(assigned[d], label)
		}
	}

	days := make([]domain.DayTasks, 0, 7)
	for i := 0; i < 7; i++ {
		d := start.AddDays(i)
		labels, ok := assigned[d]
		// Weekends only appear in the five-day skeleton when something
		// was assigned to them.
		if d.IsWeekend() && !opts.SevenDay && !ok {
			continue
		}
		if labels == nil {
			labels = []string{}
		}
		days = append(days, domain.DayTasks{Date: d, Tasks: labels})
	}

	return domain.WeekBucket{Start: start, End: end, Days: days}
}

// FirstMonday returns the Monday on or before d.
func FirstMonday(d domain.Date) domain.Date {
	return d.AddDays(-d.WeekdayIndex())
}

// LastSunday returns the Sunday on or after d.
func LastSunday(d domain.Date) domain.Date {
	return d.AddDays(6 - d.WeekdayIndex())
}

// EarliestStart returns the minimum StartDate, or the zero Date for no tasks.
func EarliestStart(tasks []domain.Task) domain.Date {
	var earliest domain.Date
	for i, t := range tasks {
		if i == 0 || t.StartDate.Before(earliest) {
			earliest = t.StartDate
		}
	}
	return earliest
}

// LatestDue returns the maximum DueDate, or the zero Date for no tasks.
func LatestDue(tasks []domain.Task) domain.Date {
	var latest domain.Date
	for i, t := range tasks {
		if i == 0 || t.DueDate.After(latest) {
			latest = t.DueDate
		}
	}
	return latest
}

// ResolveAnchor returns min(userStart, earliest task start) so that no task
// starts before the first bucket. A zero userStart yields the earliest start.
func ResolveAnchor(userStart domain.Date, tasks []domain.Task) domain.Date {
	earliest := EarliestStart(tasks)
	switch {
	case userStart.IsZero():
		return earliest
	case earliest.IsZero():
		return userStart
	default:
		return domain.MinDate(userStart, earliest)
	}
}

// ParseWeekLabel parses "YYYY-MM-DD to YYYY-MM-DD" and checks that it names a
// Monday-to-Sunday week.
func ParseWeekLabel(label string) (start, end domain.Date, err error) {
	parts := strings.Split(strings.TrimSpace(label), " to ")
	if len(parts) != 2 {
		return domain.Date{}, domain.Date{}, fmt.Errorf("%w: %q", ErrInvalidWeekLabel, label)
	}
	start, err = domain.ParseDate(strings.TrimSpace(parts[0]))
	if err != nil {
		return domain.Date{}, domain.Date{}, fmt.Errorf("%w: %v", ErrInvalidWeekLabel, err)
	}
	end, err = domain.ParseDate(strings.TrimSpace(parts[1]))
	if err != nil {
		return domain.Date{}, domain.Date{}, fmt.Errorf("%w: %v", ErrInvalidWeekLabel, err)
	}
	if start.WeekdayIndex() != 0 || !end.Equal(start.AddDays(6)) {
		return domain.Date{}, domain.Date{}, fmt.Errorf("%w: %q is not a Monday-to-Sunday week", ErrInvalidWeekLabel, label)
	}
	return start, end, nil
}

// FindWeek locates a bucket by label or by any date inside it ("2025-01-08").
func FindWeek(weeks []domain.WeekBucket, ref string) (domain.WeekBucket, bool) {
	ref = strings.TrimSpace(ref)
	if d, err := domain.ParseDate(ref); err == nil {
		for _, w := range weeks {
			if w.Contains(d) {
				return w, true
			}
		}
		return domain.WeekBucket{}, false
	}
	for _, w := range weeks {
		if w.Label() == ref {
			return w, true
		}
	}
	return domain.WeekBucket{}, false
}
