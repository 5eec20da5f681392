package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"corep-assist/internal/api"
	"corep-assist/internal/api/handlers"
	"corep-assist/internal/corpus"
	"corep-assist/internal/providers"
	"corep-assist/internal/repository"
	"corep-assist/internal/service"
	"corep-assist/pkg/config"
	"corep-assist/pkg/logger"
	"corep-assist/pkg/postgres"

	"go.uber.org/zap"
)

// @title PRA COREP Own Funds LLM Assistant
// @version 0.1.0
// @description Prototype LLM-assisted PRA COREP Own Funds reporting assistant, combining RAG over synthetic regulatory text with deterministic validation.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting COREP assistant",
		zap.String("provider", cfg.LLM.Provider),
		zap.String("model", cfg.LLM.Model()),
	)

	// Initialize database
	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Initialize external service providers
	embedder, completer, err := providers.FromConfig(cfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize LLM providers", zap.Error(err))
	}

	// Initialize repositories
	snippetRepo := repository.NewSnippetRepository(db, appLogger)
	auditRepo := repository.NewAuditRepository(db, appLogger)

	// Load the reference corpus once; an empty corpus prevents startup.
	store := service.NewSnippetStore(snippetRepo, embedder, appLogger)
	corpusEntries := corpus.Builtin()
	if extra := os.Getenv("CORPUS_FILE"); extra != "" {
		loaded, err := corpus.LoadFile(extra)
		if err != nil {
			appLogger.Fatal("Failed to load corpus file", zap.String("path", extra), zap.Error(err))
		}
		corpusEntries = append(corpusEntries, loaded...)
	}
	if err := store.Load(ctx, corpusEntries); err != nil {
		appLogger.Fatal("Failed to load snippet store", zap.Error(err))
	}

	// Initialize services
	retriever := service.NewRetrieverService(embedder, snippetRepo, &cfg.RAG, appLogger)
	extractor := service.NewExtractionService(completer, appLogger)
	validator := service.NewValidationEngine()
	assembler := service.NewAuditAssembler()
	analysis := service.NewAnalysisService(retriever, extractor, validator, assembler, auditRepo, appLogger)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(&cfg.LLM)
	scenarioHandler := handlers.NewScenarioHandler(analysis, appLogger)
	auditHandler := handlers.NewAuditHandler(auditRepo, appLogger)

	// Setup router
	app := api.SetupRouter(healthHandler, scenarioHandler, auditHandler)

	// Start server
	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
