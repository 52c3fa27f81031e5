package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wordcards/internal/config"
	"wordcards/internal/dataset"
	"wordcards/internal/fetcher"
	"wordcards/internal/handler"
	"wordcards/internal/middleware"
	"wordcards/internal/service"
	"wordcards/internal/storage"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

func main() {
	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting wordcards bot")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}
	if err := cfg.ValidateBot(); err != nil {
		logger.Fatal("Invalid bot config", zap.Error(err))
	}

	logger.Info("Configuration loaded successfully",
		zap.String("storage_driver", cfg.Storage.Driver),
		zap.String("slot_key", cfg.SlotKey),
	)

	// Connect to database with retries and run migrations
	db, slots, err := storage.Open(cfg, storage.DefaultOptions, logger)
	if err != nil {
		logger.Fatal("Failed to open storage", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Storage ready")

	// Initialize services
	categories := dataset.Categories()
	store := service.NewWordStore(slots, cfg.SlotKey, dataset.SampleWords(), logger)

	loadCtx, cancelLoad := context.WithTimeout(context.Background(), 30*time.Second)
	store.Load(loadCtx)
	cancelLoad()

	client := fetcher.NewClient(cfg.Fetch.Timeout, cfg.Fetch.MaxBytes, logger)
	importService := service.NewImportService(store, client, dataset.DemoBundle(), logger)
	statsService := service.NewStatsService(store, categories, logger)

	// Initialize Telegram bot
	bot, err := tele.NewBot(tele.Settings{
		Token:  cfg.BotToken,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	})
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	bot.Use(middleware.OwnerOnly(cfg.OwnerIDs, logger))

	logger.Info("Telegram bot initialized", zap.Int("owners", len(cfg.OwnerIDs)))

	// Initialize handler
	h := handler.NewHandler(bot, store, importService, statsService, categories, logger)
	h.RegisterHandlers()

	logger.Info("Handlers registered")

	// Start bot in background
	go func() {
		logger.Info("Bot started successfully")
		bot.Start()
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan

	logger.Info("Shutdown signal received, stopping bot...")

	bot.Stop()

	logger.Info("Bot stopped gracefully")
}
