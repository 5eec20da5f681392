package service

import (
	"context"
	"testing"

	"corep-assist/internal/models"
	"corep-assist/internal/providers"
	"corep-assist/pkg/config"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSearcher struct {
	gotVector []float32
	gotTopK   int
	results   []models.RetrievedSnippet
	err       error
}

func (f *fakeSearcher) SearchSimilar(_ context.Context, embedding []float32, topK int) ([]models.RetrievedSnippet, error) {
	f.gotVector = embedding
	f.gotTopK = topK
	if f.err != nil {
		return nil, f.err
	}
	if topK < len(f.results) {
		return f.results[:topK], nil
	}
	return f.results, nil
}

type failingEmbedder struct{}

func (failingEmbedder) Embed(context.Context, []string) ([][]float32, error) {
	return nil, providers.ErrEmbeddingUnavailable
}

func ragConfig() *config.RAGConfig {
	return &config.RAGConfig{
		EmbeddingModel: "text-embedding-3-small",
		EmbeddingDim:   32,
		TopK:           4,
		MaxTopK:        10,
	}
}

func TestRetrieveDefaultsAndClampsTopK(t *testing.T) {
	searcher := &fakeSearcher{}
	svc := NewRetrieverService(providers.NewMockProvider(32), searcher, ragConfig(), zap.NewNop())

	_, err := svc.Retrieve(context.Background(), "scenario", 0)
	require.NoError(t, err)
	require.Equal(t, 4, searcher.gotTopK, "non-positive k falls back to the configured default")

	_, err = svc.Retrieve(context.Background(), "scenario", 50)
	require.NoError(t, err)
	require.Equal(t, 10, searcher.gotTopK, "k is clamped to the configured maximum")

	_, err = svc.Retrieve(context.Background(), "scenario", 2)
	require.NoError(t, err)
	require.Equal(t, 2, searcher.gotTopK)
}

func TestRetrieveEmbedsScenarioDeterministically(t *testing.T) {
	searcher := &fakeSearcher{}
	svc := NewRetrieverService(providers.NewMockProvider(32), searcher, ragConfig(), zap.NewNop())

	_, err := svc.Retrieve(context.Background(), "a bank reports CET1 of 300m", 3)
	require.NoError(t, err)
	first := searcher.gotVector

	_, err = svc.Retrieve(context.Background(), "a bank reports CET1 of 300m", 3)
	require.NoError(t, err)
	require.Equal(t, first, searcher.gotVector, "identical scenarios embed to identical vectors")
	require.Len(t, first, 32)
}

func TestRetrievePropagatesEmbeddingOutage(t *testing.T) {
	svc := NewRetrieverService(failingEmbedder{}, &fakeSearcher{}, ragConfig(), zap.NewNop())

	_, err := svc.Retrieve(context.Background(), "scenario", 3)
	require.ErrorIs(t, err, providers.ErrEmbeddingUnavailable)
}

func TestRetrievePreservesSearcherOrder(t *testing.T) {
	searcher := &fakeSearcher{results: []models.RetrievedSnippet{
		{Snippet: models.Snippet{ID: "own-funds-0000", Position: 0}, Score: 0.9},
		{Snippet: models.Snippet{ID: "own-funds-0002", Position: 2}, Score: 0.9},
		{Snippet: models.Snippet{ID: "own-funds-0001", Position: 1}, Score: 0.4},
	}}
	svc := NewRetrieverService(providers.NewMockProvider(32), searcher, ragConfig(), zap.NewNop())

	results, err := svc.Retrieve(context.Background(), "scenario", 3)
	require.NoError(t, err)
	require.Len(t, results, 3)
	require.Equal(t, "own-funds-0000", results[0].ID)
	require.Equal(t, "own-funds-0002", results[1].ID)
	require.Equal(t, "own-funds-0001", results[2].ID)
}
