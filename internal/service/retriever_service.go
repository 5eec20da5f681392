package service

import (
	"context"
	"fmt"

	"corep-assist/internal/models"
	"corep-assist/internal/providers"
	"corep-assist/pkg/config"

	"go.uber.org/zap"
)

// SnippetSearcher ranks the indexed corpus against a query vector.
type SnippetSearcher interface {
	SearchSimilar(ctx context.Context, embedding []float32, topK int) ([]models.RetrievedSnippet, error)
}

type RetrieverService struct {
	embedder providers.EmbeddingProvider
	searcher SnippetSearcher
	config   *config.RAGConfig
	logger   *zap.Logger
}

func NewRetrieverService(embedder providers.EmbeddingProvider, searcher SnippetSearcher, cfg *config.RAGConfig, logger *zap.Logger) *RetrieverService {
	return &RetrieverService{
		embedder: embedder,
		searcher: searcher,
		config:   cfg,
		logger:   logger,
	}
}

// Retrieve embeds the scenario with the same model the corpus was indexed
// with and returns the top-k snippets, most relevant first. An embedding
// outage propagates as providers.ErrEmbeddingUnavailable; retry policy is
// the caller's concern.
func (s *RetrieverService) Retrieve(ctx context.Context, scenario string, k int) ([]models.RetrievedSnippet, error) {
	if k <= 0 {
		k = s.config.TopK
	}
	if s.config.MaxTopK > 0 && k > s.config.MaxTopK {
		k = s.config.MaxTopK
	}

	vectors, err := s.embedder.Embed(ctx, []string{scenario})
	if err != nil {
		return nil, fmt.Errorf("embed scenario: %w", err)
	}
	if len(vectors) != 1 {
		return nil, fmt.Errorf("%w: expected 1 scenario vector, got %d", providers.ErrEmbeddingUnavailable, len(vectors))
	}

	results, err := s.searcher.SearchSimilar(ctx, vectors[0], k)
	if err != nil {
		return nil, fmt.Errorf("search snippets: %w", err)
	}

	s.logger.Info("Snippet retrieval completed",
		zap.Int("requested", k),
		zap.Int("results", len(results)),
	)
	return results, nil
}
