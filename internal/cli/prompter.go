package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/diarist/internal/cli/formatter"
	"github.com/alexanderramin/diarist/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
	"github.com/charmbracelet/lipgloss"
)

// ErrAborted is returned when the user cancels a prompt.
var ErrAborted = errors.New("aborted")

// Prompter is every interaction the diary wizard needs from a terminal.
type Prompter interface {
	// Leave asks for leave days before the schedule is bucketed.
	Leave() (domain.LeaveSet, error)
	PickWeek(weeks []domain.WeekBucket) (domain.WeekBucket, error)
	// Answer shows question for task and returns the answer, or skip.
	Answer(task, question, current string) (answer string, skip bool, err error)
	// Review lets the user edit every answer before the report is built.
	Review(tasks []string, answers map[string]string) (map[string]string, error)
	// Busy runs fn while showing title.
	Busy(title string, fn func())
}

// diaristHuhTheme returns a huh theme using the formatter's Gruvbox palette.
func diaristHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// HuhPrompter is the terminal Prompter built on huh forms and a bubbletea
// week picker.
type HuhPrompter struct{}

func NewHuhPrompter() *HuhPrompter { return &HuhPrompter{} }

func runForm(form *huh.Form) error {
	err := form.WithTheme(diaristHuhTheme()).WithShowHelp(false).Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return ErrAborted
	}
	return err
}

func (HuhPrompter) Leave() (domain.LeaveSet, error) {
	var raw string
	err := runForm(huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Leave days").
			Description("DATE[:reason], comma separated. Leave blank for none.").
			Placeholder("2025-01-08:Sick, 2025-01-09").
			Value(&raw).
			Validate(func(s string) error {
				_, err := parseLeaveList(s)
				return err
			}),
	)))
	if err != nil {
		return nil, err
	}
	return parseLeaveList(raw)
}

func (HuhPrompter) PickWeek(weeks []domain.WeekBucket) (domain.WeekBucket, error) {
	return runWeekPicker(weeks)
}

const (
	actionNext = "next"
	actionSkip = "skip"
)

func (HuhPrompter) Answer(task, question, current string) (string, bool, error) {
	answer := current
	action := actionNext
	err := runForm(huh.NewForm(huh.NewGroup(
		huh.NewNote().Title(task).Description(question),
		huh.NewText().Title("Your answer").Value(&answer).Lines(5),
		huh.NewSelect[string]().
			Options(huh.NewOption("Next", actionNext), huh.NewOption("Skip", actionSkip)).
			Value(&action),
	)))
	if err != nil {
		return "", false, err
	}
	return answer, action == actionSkip, nil
}

func (HuhPrompter) Review(tasks []string, answers map[string]string) (map[string]string, error) {
	if len(tasks) == 0 {
		return answers, nil
	}
	values := make([]string, len(tasks))
	fields := make([]huh.Field, 0, len(tasks))
	for i, task := range tasks {
		values[i] = answers[task]
		fields = append(fields, huh.NewText().
			Title(fmt.Sprintf("Edit entry for %s", task)).
			Value(&values[i]).
			Lines(3))
	}
	if err := runForm(huh.NewForm(huh.NewGroup(fields...).Title("Review your answers"))); err != nil {
		return nil, err
	}

	out := make(map[string]string, len(tasks))
	for i, task := range tasks {
		_, answered := answers[task]
		if answered || strings.TrimSpace(values[i]) != "" {
			out[task] = values[i]
		}
	}
	return out, nil
}

func (HuhPrompter) Busy(title string, fn func()) {
	ran := false
	err := spinner.New().Title(" " + title).Action(func() {
		ran = true
		fn()
	}).Run()
	if err != nil && !ran {
		fn()
	}
}
