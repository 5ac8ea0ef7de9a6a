package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/alexanderramin/diarist/internal/cli"
	"github.com/alexanderramin/diarist/internal/config"
	"github.com/alexanderramin/diarist/internal/db"
	"github.com/alexanderramin/diarist/internal/history"
	"github.com/alexanderramin/diarist/internal/intelligence"
	"github.com/alexanderramin/diarist/internal/llm"
	"github.com/alexanderramin/diarist/internal/logging"
	"github.com/alexanderramin/diarist/internal/report"
	"github.com/alexanderramin/diarist/internal/repository"
	"github.com/alexanderramin/diarist/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg, err := config.Load(config.LoadOptions{})
	if err != nil {
		return err
	}
	logger := logging.New(os.Stderr, logging.ParseLevel(cfg.LogLevel))

	// Wire the history backend and, with SQLite, the report log.
	var backend history.Backend
	var runs repository.ReportRunRepo
	switch cfg.Store {
	case config.StoreJSON:
		backend = history.NewFileBackend(cfg.HistoryFile())
	default:
		database, err := db.OpenDB(cfg.DBPath())
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer database.Close()
		backend = repository.NewSQLiteHistoryRepo(database)
		runs = repository.NewSQLiteReportRunRepo(database)
	}

	store, err := history.Open(ctx, backend)
	if err != nil {
		return err
	}

	// The assistant is only wired when a model is configured.
	var assistant intelligence.DiaryAssistant
	if cfg.LLM.Enabled {
		var observer llm.Observer = llm.NoopObserver{}
		if cfg.LLM.LogCalls {
			observer = llm.NewLogObserver(logger)
		}
		client, err := llm.NewClient(cfg.LLM, observer)
		if err != nil {
			return err
		}
		if !client.Available(ctx) {
			logger.Warn("language model not reachable; calls will fail and fall back", "endpoint", cfg.LLM.Endpoint)
		}
		assistant = intelligence.NewDiaryAssistant(client)
	}

	obs := service.NewLogUseCaseObserver(logger)
	app := &cli.App{
		Config:   cfg,
		Schedule: service.NewScheduleService(obs),
		Diary: service.NewDiaryService(service.DiaryDeps{
			Store:     store,
			Assistant: assistant,
			Renderer:  report.NewMarkdownRenderer(),
			Runs:      runs,
			OutputDir: cfg.OutputDir,
			Logger:    logger,
		}, obs),
		History:  service.NewHistoryService(store, obs),
		Prompter: cli.NewHuhPrompter(),
	}

	// Prompts only make sense on a terminal.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}
