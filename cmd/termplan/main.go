package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/alexanderramin/termplan/internal/cli"
	"github.com/alexanderramin/termplan/internal/config"
	"github.com/alexanderramin/termplan/internal/db"
	"github.com/alexanderramin/termplan/internal/planner"
	"github.com/alexanderramin/termplan/internal/repository"
	"github.com/alexanderramin/termplan/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	catalogRepo := repository.NewSQLiteCatalogRepo(database)
	courseRepo := repository.NewSQLiteCourseRepo(database)
	runRepo := repository.NewSQLitePlanRunRepo(database)

	uow := db.NewSQLiteUnitOfWork(database)

	var observer service.UseCaseObserver = service.NoopUseCaseObserver{}
	plannerOpts := []planner.Option{}
	if cfg.LogUseCases {
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
		observer = service.NewSlogUseCaseObserver(logger)
		plannerOpts = append(plannerOpts, planner.WithLogger(logger.With("component", "planner")))
	}

	app := &cli.App{
		Catalog: service.NewCatalogService(catalogRepo, courseRepo, uow, observer),
		Plans:   service.NewPlanService(runRepo, uow, planner.New(plannerOpts...), observer),
		Config:  cfg,
	}
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	// Ctrl-C stops a running solve; the best schedule found so far is kept.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}
