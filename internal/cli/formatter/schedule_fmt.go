package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/diarist/internal/domain"
	"github.com/alexanderramin/diarist/internal/schedule"
)

// FormatSchedulePreview shows the schedule summary followed by its first rows
// and any rows that were dropped while loading.
func FormatSchedulePreview(s *schedule.Schedule, headRows int) string {
	sum := s.Summary()
	var b strings.Builder

	b.WriteString(Header("Schedule"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s %d\n", Dim("Tasks:         "), sum.TaskCount)
	fmt.Fprintf(&b, "%s %s\n", Dim("Earliest start:"), sum.EarliestStart)
	fmt.Fprintf(&b, "%s %s\n", Dim("Latest due:    "), sum.LatestDue)
	if sum.Dropped > 0 {
		fmt.Fprintf(&b, "%s\n", Warn(fmt.Sprintf("%d row(s) dropped", sum.Dropped)))
	}
	b.WriteString("\n")

	head := s.Head(headRows)
	if len(head) > 0 {
		rows := make([][]string, 0, len(head))
		for _, t := range head {
			rows = append(rows, []string{
				Truncate(t.Name, 40), t.StartDate.String(), t.DueDate.String(), t.Assignee, t.LinkedEntity,
			})
		}
		b.WriteString(RenderTable([]string{"Task", "Start", "Due", "Assignee", "Linked"}, rows))
	}

	if len(s.Dropped) > 0 {
		b.WriteString("\n")
		for _, d := range s.Dropped {
			fmt.Fprintf(&b, "%s\n", Dim(fmt.Sprintf("line %d: %s", d.Line, d.Reason)))
		}
	}
	return b.String()
}

// FormatWeekList renders one row per week with task counts.
func FormatWeekList(weeks []domain.WeekBucket) string {
	if len(weeks) == 0 {
		return Dim("No weeks in the schedule range.") + "\n"
	}
	rows := make([][]string, 0, len(weeks))
	for i, w := range weeks {
		tasks := w.UniqueTasks()
		count := strconv.Itoa(len(tasks))
		if len(tasks) == 0 {
			count = Dim("0")
		}
		rows = append(rows, []string{strconv.Itoa(i + 1), w.Label(), count, Truncate(strings.Join(tasks, ", "), 50)})
	}
	return RenderTable([]string{"#", "Week", "Tasks", "Names"}, rows)
}

// FormatWeek lists every materialised day of the week with its tasks.
func FormatWeek(w domain.WeekBucket, leave domain.LeaveSet) string {
	var b strings.Builder
	b.WriteString(Header("Week " + w.Label()))
	b.WriteString("\n")

	rows := make([][]string, 0, len(w.Days))
	for _, day := range w.Days {
		var text string
		switch reason, onLeave := leave.Reason(day.Date); {
		case onLeave:
			text = DayText(strings.TrimSpace("Leave "+reason), true, false)
		case len(day.Tasks) == 0:
			text = DayText("No task", false, true)
		default:
			text = strings.Join(day.Tasks, "\n")
		}
		rows = append(rows, []string{day.Date.Weekday().String(), day.Date.String(), text})
	}
	b.WriteString(RenderTable([]string{"Day", "Date", "Tasks"}, rows))
	return b.String()
}
