package cli

import (
	"github.com/alexanderramin/diarist/internal/config"
	"github.com/alexanderramin/diarist/internal/service"
	"github.com/spf13/cobra"
)

// App holds the services and settings CLI commands run against.
type App struct {
	Config   config.Config
	Schedule service.ScheduleService
	Diary    service.DiaryService
	History  service.HistoryService

	// Prompter drives the interactive wizard. Nil means no prompts.
	Prompter Prompter
	// IsInteractive reports whether stdin is a terminal.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.Prompter != nil && a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "diarist" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "diarist",
		Short:         "Weekly internship diary generator",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newWeeksCmd(app),
		newWeekCmd(app),
		newDiaryCmd(app),
		newReportCmd(app),
		newHistoryCmd(app),
		newConfigCmd(app),
	)

	return root
}
