package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"faq-agent/config"
	"faq-agent/console"
	"faq-agent/database"
	"faq-agent/engine"
	"faq-agent/fuzzy"
	"faq-agent/knowledge"
	"faq-agent/nlp"
	"faq-agent/web"

	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	// Initialize logger with default level to load config
	tempLogger, err := config.InitLogger("info")
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	// Load config (which includes log level setting)
	cfg := config.Load(tempLogger)

	// Re-initialize logger with configured level
	logger, err := config.InitLogger(cfg.LogLevel)
	if err != nil {
		fmt.Printf("Failed to re-initialize logger with configured level: %v\n", err)
		os.Exit(1)
	}
	defer config.Cleanup()

	// The knowledge base is required; the bot cannot run degraded.
	kb, err := knowledge.Load(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to load knowledge base", zap.Error(err))
	}

	matcher := fuzzy.NewMatcher(kb.Patterns, logger)
	analyzer := nlp.NewAnalyzer(nlp.NewAlternationStore(), logger)

	eng, err := engine.New(kb, matcher, analyzer, cfg.ReplyCacheSize, logger)
	if err != nil {
		logger.Fatal("Failed to initialize engine", zap.Error(err))
	}

	if cfg.ConsoleMode {
		driver := console.NewDriver(eng, logger, os.Stdin, os.Stdout)
		if err := driver.Run(ctx); err != nil {
			logger.Error("Console session ended with error", zap.Error(err))
			os.Exit(1)
		}
		return
	}

	// Transcript persistence is optional; without a DSN the web driver
	// runs with cookie-only sessions.
	var store *database.PostgresStore
	if cfg.PostgresDSN != "" {
		store, err = database.NewPostgresStore(cfg.PostgresDSN)
		if err != nil {
			logger.Fatal("Failed to connect to database", zap.Error(err))
		}
		if err := store.EnsureSchema(ctx); err != nil {
			logger.Fatal("Failed to ensure database schema", zap.Error(err))
		}
	} else {
		logger.Info("POSTGRES_DSN not set, transcript persistence disabled")
	}

	webServer := web.NewServer(eng, logger, cfg, store)

	// Create context that listens for interrupt signals
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	port := fmt.Sprintf(":%d", cfg.WebPort)
	logger.Info("Starting FAQ agent web server", zap.String("port", port))
	if err := webServer.Start(ctx, port); err != nil {
		logger.Error("Web server error", zap.Error(err))
		os.Exit(1)
	}
}
