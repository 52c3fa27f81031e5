package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"wordcards/internal/cli"
	"wordcards/internal/config"
	"wordcards/internal/dataset"
	"wordcards/internal/fetcher"
	"wordcards/internal/service"
	"wordcards/internal/storage"

	"go.uber.org/zap"
)

func main() {
	os.Exit(run())
}

func run() int {
	logger, err := newLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		return cli.ExitFailure
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return cli.ExitCommandError
	}

	// A local tool should fail fast instead of waiting for the database
	db, slots, err := storage.Open(cfg, storage.Options{MaxRetries: 1}, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return cli.ExitFailure
	}
	defer db.Close()

	categories := dataset.Categories()
	store := service.NewWordStore(slots, cfg.SlotKey, dataset.SampleWords(), logger)
	client := fetcher.NewClient(cfg.Fetch.Timeout, cfg.Fetch.MaxBytes, logger)

	cmd := cli.NewRootCommand(&cli.Services{
		Store:      store,
		Importer:   service.NewImportService(store, client, dataset.DemoBundle(), logger),
		Stats:      service.NewStatsService(store, categories, logger),
		Categories: categories,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return cli.GetExitCode(err)
	}
	return cli.ExitSuccess
}

// newLogger keeps stdout clean for command output; only warnings reach stderr
func newLogger() (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}
