package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/diarist/internal/report"
)

// FormatReport previews a weekly diary in the terminal.
func FormatReport(r report.WeeklyReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", Bold("FOR THE WEEK ENDING Sunday: "+r.WeekEnding.String()))
	if r.TrainingMode != "" {
		fmt.Fprintf(&b, "%s %s\n", Dim("Training mode:"), r.TrainingMode)
	}
	b.WriteString("\n")

	rows := make([][]string, 0, len(r.Days))
	for _, d := range r.Days {
		rows = append(rows, []string{
			d.Weekday,
			d.Date.String(),
			DayText(d.Description, d.OnLeave, d.Description == report.NoTask),
		})
	}
	b.WriteString(RenderTable([]string{"Day", "Date", "Description"}, rows))

	notes := r.Notes
	if notes == "" {
		notes = Dim("None")
	}
	fmt.Fprintf(&b, "\n%s\n%s\n", StyleHeader.Render("Notes"), notes)

	return RenderBox("Diary "+r.Label, strings.TrimRight(b.String(), "\n"))
}
