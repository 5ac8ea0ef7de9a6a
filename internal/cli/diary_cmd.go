package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/alexanderramin/diarist/internal/cli/formatter"
	"github.com/alexanderramin/diarist/internal/domain"
	"github.com/alexanderramin/diarist/internal/report"
	"github.com/alexanderramin/diarist/internal/service"
	"github.com/alexanderramin/diarist/internal/session"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// composeFlags are shared by the commands that write a diary.
type composeFlags struct {
	week         string
	notes        string
	trainingMode string
	dryRun       bool
}

func addComposeFlags(fs *pflag.FlagSet, f *composeFlags) {
	fs.StringVar(&f.week, "week", "", "Week label, a date inside it, or its number")
	fs.StringVar(&f.notes, "notes", "", "Weekly notes; replaces the generated summary")
	fs.StringVar(&f.trainingMode, "training-mode", "", "Training mode shown in the header (overrides config)")
	fs.BoolVar(&f.dryRun, "dry-run", false, "Preview the diary without writing a file")
}

func (f composeFlags) options(app *App, leave domain.LeaveSet) report.Options {
	mode := app.Config.TrainingMode
	if f.trainingMode != "" {
		mode = f.trainingMode
	}
	return report.Options{
		TrainingMode: mode,
		Designations: app.Config.Designations,
		Signatures:   app.Config.Signatures,
		Leave:        leave,
	}
}

func newDiaryCmd(app *App) *cobra.Command {
	var pf planFlags
	var cf composeFlags
	var answerPairs []string

	cmd := &cobra.Command{
		Use:   "diary <schedule.csv>",
		Short: "Answer questions about a week's tasks and write its diary",
		Long: `Walk through the unique tasks of one week, answering one question per
task, then review the answers and write the weekly diary.

In a terminal the week, leave days and answers are asked for interactively.
Elsewhere pass --week and one --answer "TASK=text" per task.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			given, err := parseAnswers(answerPairs)
			if err != nil {
				return err
			}

			req, err := pf.request(app, args[0])
			if err != nil {
				return err
			}
			if app.interactive() && len(pf.leave) == 0 {
				leave, err := app.Prompter.Leave()
				if err != nil {
					return err
				}
				req.Leave = leave
			}

			plan, err := app.Schedule.Plan(ctx, req)
			if err != nil {
				return err
			}
			week, err := chooseWeek(app, plan.Weeks, cf.week)
			if err != nil {
				return err
			}

			wiz := session.NewWizard(week.Label(), week.UniqueTasks())
			if app.interactive() {
				if err := runWizard(ctx, app, wiz, given); err != nil {
					return err
				}
			} else {
				for !wiz.Done() {
					task, _ := wiz.Current()
					if a, ok := given[task]; ok {
						_ = wiz.Advance(a)
					} else {
						_ = wiz.Skip()
					}
				}
			}

			answers := wiz.Answers()
			for _, task := range wiz.Tasks() {
				a, ok := answers[task]
				if !ok {
					continue
				}
				var rec *service.RecordedAnswer
				busy(app, "Polishing your answer for "+task, func() {
					rec, err = app.Diary.RecordAnswer(ctx, week, task, a)
				})
				if err != nil {
					return err
				}
				if rec != nil {
					answers[task] = rec.Text
				}
			}

			return compose(ctx, app, out, service.ComposeRequest{
				Week:    week,
				Answers: answers,
				Notes:   cf.notes,
				Options: cf.options(app, req.Leave),
				DryRun:  cf.dryRun,
			})
		},
	}

	addPlanFlags(cmd.Flags(), &pf)
	addComposeFlags(cmd.Flags(), &cf)
	cmd.Flags().StringArrayVar(&answerPairs, "answer", nil, `Answer as "TASK=text" (repeatable)`)

	return cmd
}

// runWizard asks every task's question in turn, then offers a review of all
// answers. Answers passed with --answer prefill the prompts.
func runWizard(ctx context.Context, app *App, wiz *session.Wizard, prefill map[string]string) error {
	for !wiz.Done() {
		task, _ := wiz.Current()
		if wiz.NeedsQuestion() {
			var q string
			busy(app, "Thinking of a question", func() {
				q, _ = app.Diary.Question(ctx, task)
			})
			if err := wiz.SetQuestion(q); err != nil {
				return err
			}
		}
		question, _ := wiz.Question(task)
		current, ok := wiz.Answer(task)
		if !ok {
			current = prefill[task]
		}

		answer, skip, err := app.Prompter.Answer(task, question, current)
		if err != nil {
			return err
		}
		if skip {
			err = wiz.Skip()
		} else {
			err = wiz.Advance(answer)
		}
		if err != nil {
			return err
		}
	}

	edited, err := app.Prompter.Review(wiz.Tasks(), wiz.Answers())
	if err != nil {
		return err
	}
	for task, answer := range edited {
		if err := wiz.Edit(task, answer); err != nil {
			return err
		}
	}
	return nil
}

func busy(app *App, title string, fn func()) {
	if app.interactive() {
		app.Prompter.Busy(title, fn)
		return
	}
	fn()
}

func compose(ctx context.Context, app *App, out io.Writer, req service.ComposeRequest) error {
	var res *service.ComposeResult
	var err error
	busy(app, "Writing day entries", func() {
		res, err = app.Diary.Compose(ctx, req)
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(out, formatter.FormatReport(res.Report))
	for _, w := range res.Warnings {
		fmt.Fprintln(out, formatter.Warn(w.Error()))
	}
	if res.OutputPath != "" {
		fmt.Fprintln(out, formatter.Success("Saved "+res.OutputPath))
	}
	return nil
}

func newReportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Build diaries from recorded history and list past reports",
	}
	cmd.AddCommand(newReportBuildCmd(app), newReportListCmd(app))
	return cmd
}

func newReportBuildCmd(app *App) *cobra.Command {
	var pf planFlags
	var cf composeFlags

	cmd := &cobra.Command{
		Use:   "build <schedule.csv>",
		Short: "Write a week's diary from recorded history without asking questions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			req, err := pf.request(app, args[0])
			if err != nil {
				return err
			}
			plan, err := app.Schedule.Plan(ctx, req)
			if err != nil {
				return err
			}
			week, err := chooseWeek(app, plan.Weeks, cf.week)
			if err != nil {
				return err
			}
			return compose(ctx, app, cmd.OutOrStdout(), service.ComposeRequest{
				Week:    week,
				Notes:   cf.notes,
				Options: cf.options(app, req.Leave),
				DryRun:  cf.dryRun,
			})
		},
	}

	addPlanFlags(cmd.Flags(), &pf)
	addComposeFlags(cmd.Flags(), &cf)

	return cmd
}

func newReportListCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recently generated diaries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runs, err := app.Diary.RecentReports(cmd.Context(), limit)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatReportRuns(runs))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "Number of reports to show")

	return cmd
}
