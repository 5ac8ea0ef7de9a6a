package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/alexanderramin/diarist/internal/cli/formatter"
	"github.com/alexanderramin/diarist/internal/domain"
	"github.com/alexanderramin/diarist/internal/scheduler"
	"github.com/spf13/cobra"
)

var errNoWeeks = errors.New("the schedule has no weeks")

func newWeeksCmd(app *App) *cobra.Command {
	var pf planFlags
	var head int

	cmd := &cobra.Command{
		Use:   "weeks <schedule.csv>",
		Short: "Preview a schedule and list its weeks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := pf.request(app, args[0])
			if err != nil {
				return err
			}
			plan, err := app.Schedule.Plan(cmd.Context(), req)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.FormatSchedulePreview(plan.Schedule, head))
			fmt.Fprint(out, formatter.FormatWeekList(plan.Weeks))
			return nil
		},
	}

	addPlanFlags(cmd.Flags(), &pf)
	cmd.Flags().IntVar(&head, "head", 5, "Number of schedule rows to preview")

	return cmd
}

func newWeekCmd(app *App) *cobra.Command {
	var pf planFlags

	cmd := &cobra.Command{
		Use:   "week <schedule.csv> <WEEK>",
		Short: "Show the tasks of one week, day by day",
		Long: `Show the tasks of one week. WEEK is a label such as
"2025-01-06 to 2025-01-12", any date inside the week, or its number
from "diarist weeks".`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := pf.request(app, args[0])
			if err != nil {
				return err
			}
			plan, err := app.Schedule.Plan(cmd.Context(), req)
			if err != nil {
				return err
			}
			week, err := findWeek(plan.Weeks, args[1])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatWeek(week, req.Leave))
			return nil
		},
	}

	addPlanFlags(cmd.Flags(), &pf)

	return cmd
}

// findWeek resolves a week by label, by a date inside it, or by its 1-based
// position in weeks.
func findWeek(weeks []domain.WeekBucket, ref string) (domain.WeekBucket, error) {
	if len(weeks) == 0 {
		return domain.WeekBucket{}, errNoWeeks
	}
	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(weeks) {
			return domain.WeekBucket{}, fmt.Errorf("week number %d out of range 1-%d", n, len(weeks))
		}
		return weeks[n-1], nil
	}
	if w, ok := scheduler.FindWeek(weeks, ref); ok {
		return w, nil
	}
	return domain.WeekBucket{}, fmt.Errorf("no week matches %q", ref)
}

// chooseWeek uses ref when given, otherwise asks the prompter.
func chooseWeek(app *App, weeks []domain.WeekBucket, ref string) (domain.WeekBucket, error) {
	if ref != "" {
		return findWeek(weeks, ref)
	}
	if len(weeks) == 0 {
		return domain.WeekBucket{}, errNoWeeks
	}
	if !app.interactive() {
		return domain.WeekBucket{}, errors.New("--week is required when not running in a terminal")
	}
	return app.Prompter.PickWeek(weeks)
}
