package service

import (
	"context"
	"errors"
	"fmt"

	"corep-assist/internal/corpus"
	"corep-assist/internal/models"
	"corep-assist/internal/providers"

	"go.uber.org/zap"
)

// ErrEmptyCorpus means the store was asked to load zero reference passages.
// Retrieval with no candidates is a startup configuration error, not a
// per-request condition, so callers treat this as fatal.
var ErrEmptyCorpus = errors.New("reference corpus is empty")

// SnippetWriter is the persistence surface the store needs.
type SnippetWriter interface {
	Upsert(ctx context.Context, s *models.Snippet) error
	Count(ctx context.Context) (int, error)
}

// SnippetStore embeds and indexes the reference corpus once. After Load the
// corpus is read-only for the process lifetime; no mutation path exists.
type SnippetStore struct {
	repo     SnippetWriter
	embedder providers.EmbeddingProvider
	logger   *zap.Logger
}

func NewSnippetStore(repo SnippetWriter, embedder providers.EmbeddingProvider, logger *zap.Logger) *SnippetStore {
	return &SnippetStore{
		repo:     repo,
		embedder: embedder,
		logger:   logger,
	}
}

// Load seeds the store at startup. A store that already holds snippets is
// left untouched so restarts do not re-embed the corpus.
func (s *SnippetStore) Load(ctx context.Context, entries []corpus.Entry) error {
	if len(entries) == 0 {
		return ErrEmptyCorpus
	}

	count, err := s.repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("check snippet count: %w", err)
	}
	if count > 0 {
		s.logger.Info("Snippet store already seeded", zap.Int("snippets", count))
		return nil
	}

	return s.Reindex(ctx, entries)
}

// Reindex embeds and upserts every corpus entry unconditionally.
func (s *SnippetStore) Reindex(ctx context.Context, entries []corpus.Entry) error {
	if len(entries) == 0 {
		return ErrEmptyCorpus
	}

	snippets := corpus.Snippets(entries)
	texts := make([]string, 0, len(snippets))
	for _, sn := range snippets {
		texts = append(texts, sn.Text)
	}

	vectors, err := s.embedder.Embed(ctx, texts)
	if err != nil {
		return fmt.Errorf("embed corpus: %w", err)
	}
	if len(vectors) != len(snippets) {
		return fmt.Errorf("embed corpus: got %d vectors for %d snippets", len(vectors), len(snippets))
	}

	for i := range snippets {
		snippets[i].Embedding = vectors[i]
		if err := s.repo.Upsert(ctx, &snippets[i]); err != nil {
			return fmt.Errorf("index snippet %s: %w", snippets[i].ID, err)
		}
	}

	s.logger.Info("Snippet store indexed", zap.Int("snippets", len(snippets)))
	return nil
}
