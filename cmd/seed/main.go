package main

import (
	"context"
	"flag"
	"log"

	"corep-assist/internal/corpus"
	"corep-assist/internal/providers"
	"corep-assist/internal/repository"
	"corep-assist/internal/service"
	"corep-assist/pkg/config"
	"corep-assist/pkg/logger"
	"corep-assist/pkg/postgres"

	"go.uber.org/zap"
)

func main() {
	corpusFile := flag.String("file", "", "optional JSON corpus file appended to the built-in corpus")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Logger.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	embedder, _, err := providers.FromConfig(cfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize embedding provider", zap.Error(err))
	}

	entries := corpus.Builtin()
	if *corpusFile != "" {
		loaded, err := corpus.LoadFile(*corpusFile)
		if err != nil {
			appLogger.Fatal("Failed to load corpus file", zap.String("path", *corpusFile), zap.Error(err))
		}
		entries = append(entries, loaded...)
	}

	appLogger.Info("Seeding snippet store", zap.Int("entries", len(entries)))

	snippetRepo := repository.NewSnippetRepository(db, appLogger)
	store := service.NewSnippetStore(snippetRepo, embedder, appLogger)
	if err := store.Reindex(ctx, entries); err != nil {
		appLogger.Fatal("Failed to seed snippet store", zap.Error(err))
	}

	appLogger.Info("Snippet store seeding completed")
}
