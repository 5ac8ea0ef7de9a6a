package formatter

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/alexanderramin/diarist/internal/domain"
	"github.com/alexanderramin/diarist/internal/service"
)

func FormatHistoryList(items []service.TaskSummary) string {
	if len(items) == 0 {
		return Dim("No task history recorded yet.") + "\n"
	}
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		span := "—"
		if !it.First.IsZero() {
			span = it.First.String() + " → " + it.Last.String()
		}
		rows = append(rows, []string{
			Truncate(it.Name, 40), strconv.Itoa(it.Segments), strconv.Itoa(it.Partials), span,
		})
	}
	return RenderTable([]string{"Task", "Segments", "Day partials", "Span"}, rows)
}

// FormatTaskHistory shows every segment in insertion order, then the cached
// day partials by date.
func FormatTaskHistory(name string, h *domain.TaskHistory) string {
	var b strings.Builder
	b.WriteString(Header(name))
	b.WriteString("\n")

	for i, seg := range h.History {
		fmt.Fprintf(&b, "%s %s\n%s\n\n",
			StyleBlue.Render(fmt.Sprintf("#%d", i+1)),
			Dim(seg.Start.String()+" → "+seg.End.String()),
			seg.Description)
	}

	if len(h.Daywise) == 0 {
		b.WriteString(Dim("No day partials cached.") + "\n")
		return b.String()
	}
	days := make([]string, 0, len(h.Daywise))
	for d := range h.Daywise {
		days = append(days, d)
	}
	slices.Sort(days)
	rows := make([][]string, 0, len(days))
	for _, d := range days {
		rows = append(rows, []string{d, h.Daywise[d]})
	}
	b.WriteString(RenderTable([]string{"Day", "Partial"}, rows))
	return b.String()
}

func FormatReportRuns(runs []*domain.ReportRun) string {
	if len(runs) == 0 {
		return Dim("No reports generated yet.") + "\n"
	}
	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		rows = append(rows, []string{
			domain.WeekLabel(r.WeekStart),
			strconv.Itoa(r.TaskCount),
			r.GeneratedAt.Local().Format("2006-01-02 15:04"),
			r.OutputPath,
		})
	}
	return RenderTable([]string{"Week", "Tasks", "Generated", "File"}, rows)
}
