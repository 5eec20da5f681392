package main

import (
	"context"
	"fmt"
	"log"

	"corep-assist/pkg/config"
	"corep-assist/pkg/postgres"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, &cfg.Database, zap.NewNop())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	if _, err := pool.Exec(ctx, "CREATE EXTENSION IF NOT EXISTS vector"); err != nil {
		log.Fatalf("Failed to create pgvector extension: %v", err)
	}
	log.Println("pgvector extension enabled")

	snippetsSQL := fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS snippets (
    id TEXT PRIMARY KEY,
    source_tag TEXT NOT NULL,
    citation TEXT NOT NULL,
    content TEXT NOT NULL,
    embedding vector(%d),
    position INTEGER NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`, cfg.RAG.EmbeddingDim)
	if _, err := pool.Exec(ctx, snippetsSQL); err != nil {
		log.Fatalf("Failed to create snippets table: %v", err)
	}
	log.Println("snippets table ready")

	auditSQL := `
CREATE TABLE IF NOT EXISTS audit_records (
    id UUID PRIMARY KEY,
    scenario TEXT NOT NULL,
    threshold_breached BOOLEAN NOT NULL DEFAULT false,
    record JSONB NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`
	if _, err := pool.Exec(ctx, auditSQL); err != nil {
		log.Fatalf("Failed to create audit_records table: %v", err)
	}
	log.Println("audit_records table ready")
}
