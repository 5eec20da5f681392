package service

import (
	"context"
	"testing"

	"corep-assist/internal/corpus"
	"corep-assist/internal/models"
	"corep-assist/internal/providers"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSnippetWriter struct {
	count    int
	upserted []models.Snippet
}

func (f *fakeSnippetWriter) Upsert(_ context.Context, s *models.Snippet) error {
	f.upserted = append(f.upserted, *s)
	return nil
}

func (f *fakeSnippetWriter) Count(context.Context) (int, error) {
	return f.count, nil
}

func TestLoadRejectsEmptyCorpus(t *testing.T) {
	store := NewSnippetStore(&fakeSnippetWriter{}, providers.NewMockProvider(32), zap.NewNop())

	err := store.Load(context.Background(), nil)
	require.ErrorIs(t, err, ErrEmptyCorpus)

	err = store.Load(context.Background(), []corpus.Entry{})
	require.ErrorIs(t, err, ErrEmptyCorpus)
}

func TestLoadIndexesBuiltinCorpus(t *testing.T) {
	writer := &fakeSnippetWriter{}
	store := NewSnippetStore(writer, providers.NewMockProvider(32), zap.NewNop())

	err := store.Load(context.Background(), corpus.Builtin())
	require.NoError(t, err)
	require.Len(t, writer.upserted, len(corpus.Builtin()))

	for i, sn := range writer.upserted {
		require.Equal(t, i, sn.Position)
		require.NotEmpty(t, sn.ID)
		require.Len(t, sn.Embedding, 32)
	}
}

func TestLoadSkipsAlreadySeededStore(t *testing.T) {
	writer := &fakeSnippetWriter{count: 4}
	store := NewSnippetStore(writer, providers.NewMockProvider(32), zap.NewNop())

	err := store.Load(context.Background(), corpus.Builtin())
	require.NoError(t, err)
	require.Empty(t, writer.upserted, "an already-seeded store is not re-embedded")
}

func TestReindexAlwaysReembeds(t *testing.T) {
	writer := &fakeSnippetWriter{count: 4}
	store := NewSnippetStore(writer, providers.NewMockProvider(32), zap.NewNop())

	err := store.Reindex(context.Background(), corpus.Builtin())
	require.NoError(t, err)
	require.Len(t, writer.upserted, len(corpus.Builtin()))
}

func TestLoadPropagatesEmbeddingOutage(t *testing.T) {
	store := NewSnippetStore(&fakeSnippetWriter{}, failingEmbedder{}, zap.NewNop())

	err := store.Load(context.Background(), corpus.Builtin())
	require.ErrorIs(t, err, providers.ErrEmbeddingUnavailable)
}
