package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/diarist/internal/domain"
	"github.com/alexanderramin/diarist/internal/schedule"
	"github.com/alexanderramin/diarist/internal/service"
	"github.com/spf13/pflag"
)

// planFlags are shared by every command that buckets a schedule.
type planFlags struct {
	start           string
	leave           []string
	includeWeekends bool
	fiveDay         bool
}

func addPlanFlags(fs *pflag.FlagSet, f *planFlags) {
	fs.StringVar(&f.start, "start", "", "Internship start date; an earlier date than the first task extends the range")
	fs.StringArrayVar(&f.leave, "leave", nil, "Leave day as DATE[:reason] (repeatable)")
	fs.BoolVar(&f.includeWeekends, "include-weekends", false, "Assign tasks to Saturdays and Sundays")
	fs.BoolVar(&f.fiveDay, "five-day", false, "List weekend days only when they carry tasks")
}

func (f planFlags) request(app *App, path string) (service.PlanRequest, error) {
	req := service.PlanRequest{
		Path:            path,
		ExcludeWeekends: app.Config.ExcludeWeekends && !f.includeWeekends,
		SevenDay:        app.Config.SevenDay && !f.fiveDay,
	}
	if f.start != "" {
		d, err := schedule.ParseDate(f.start)
		if err != nil {
			return req, fmt.Errorf("invalid --start %q: %w", f.start, err)
		}
		req.InternshipStart = d
	}
	leave, err := parseLeave(f.leave)
	if err != nil {
		return req, err
	}
	req.Leave = leave
	return req, nil
}

// parseLeave reads "DATE[:reason]" entries. A later entry for the same day wins.
func parseLeave(entries []string) (domain.LeaveSet, error) {
	records := make([]domain.LeaveRecord, 0, len(entries))
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		datePart, reason, _ := strings.Cut(entry, ":")
		d, err := schedule.ParseDate(strings.TrimSpace(datePart))
		if err != nil {
			return nil, fmt.Errorf("invalid leave %q: %w", entry, err)
		}
		records = append(records, domain.LeaveRecord{Date: d, Reason: strings.TrimSpace(reason)})
	}
	return domain.NewLeaveSet(records...), nil
}

// parseLeaveList reads a comma-separated list of leave entries as typed into
// the wizard.
func parseLeaveList(s string) (domain.LeaveSet, error) {
	return parseLeave(strings.Split(s, ","))
}

// parseAnswers reads "TASK=answer" pairs given with --answer.
func parseAnswers(pairs []string) (map[string]string, error) {
	out := make(map[string]string, len(pairs))
	for _, p := range pairs {
		task, answer, ok := strings.Cut(p, "=")
		task = strings.TrimSpace(task)
		if !ok || task == "" {
			return nil, fmt.Errorf("invalid --answer %q: want TASK=text", p)
		}
		out[task] = answer
	}
	return out, nil
}
