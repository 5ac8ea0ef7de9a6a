package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alexanderramin/diarist/internal/cli/formatter"
	"github.com/alexanderramin/diarist/internal/config"
	"github.com/spf13/cobra"
)

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or create the configuration file",
	}
	cmd.AddCommand(newConfigShowCmd(app), newConfigInitCmd(app))
	return cmd
}

func configPath(app *App) string {
	if app.Config.Path != "" {
		return app.Config.Path
	}
	return filepath.Join(app.Config.DataDir, config.FileName)
}

func newConfigShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := app.Config
			llmState := "disabled"
			if c.LLM.Enabled {
				llmState = fmt.Sprintf("%s %s at %s", c.LLM.Provider, c.LLM.Model, c.LLM.Endpoint)
			}
			apiKey := "unset"
			if c.LLM.APIKey != "" {
				apiKey = "set"
			}
			rows := [][]string{
				{"config file", configPath(app)},
				{"data dir", c.DataDir},
				{"store", string(c.Store)},
				{"output dir", c.OutputDir},
				{"log level", c.LogLevel},
				{"exclude weekends", fmt.Sprint(c.ExcludeWeekends)},
				{"seven-day weeks", fmt.Sprint(c.SevenDay)},
				{"training mode", c.TrainingMode},
				{"student designation", c.Designations.Student},
				{"supervisor designation", c.Designations.Supervisor},
				{"llm", llmState},
				{"llm api key", apiKey},
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderTable([]string{"Setting", "Value"}, rows))
			return nil
		},
	}
}

func newConfigInitCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a commented config.toml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := configPath(app)
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return err
			}
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return fmt.Errorf("creating config directory: %w", err)
			}
			if err := os.WriteFile(path, []byte(config.Template), 0o644); err != nil {
				return fmt.Errorf("writing config: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success("Wrote "+path))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")

	return cmd
}
