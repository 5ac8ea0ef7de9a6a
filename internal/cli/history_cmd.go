package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/alexanderramin/diarist/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newHistoryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect and move recorded task history",
	}

	cmd.AddCommand(
		newHistoryListCmd(app),
		newHistoryShowCmd(app),
		newHistoryExportCmd(app),
		newHistoryImportCmd(app),
	)

	return cmd
}

func newHistoryListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List tasks with recorded history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := app.History.List(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatHistoryList(items))
			return nil
		},
	}
}

func newHistoryShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <task>",
		Short: "Show a task's segments and cached day partials",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := app.History.Show(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTaskHistory(args[0], h))
			return nil
		},
	}
}

func newHistoryExportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "export [file.yaml]",
		Short: "Write all history as YAML to a file or stdout",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 || args[0] == "-" {
				return app.History.Export(cmd.Context(), cmd.OutOrStdout())
			}
			f, err := os.Create(args[0])
			if err != nil {
				return fmt.Errorf("creating export file: %w", err)
			}
			if err := app.History.Export(cmd.Context(), f); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("closing export file: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success("Exported history to "+args[0]))
			return nil
		},
	}
}

func newHistoryImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.yaml|->",
		Short: "Merge a YAML export into the history; nothing existing is replaced",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var in io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("opening import file: %w", err)
				}
				defer f.Close()
				in = f
			}
			res, err := app.History.Import(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf(
				"Imported %d task(s): %d new segment(s), %d new day partial(s)",
				res.Tasks, res.Segments, res.Partials)))
			return nil
		},
	}
}
