package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"corep-assist/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type SnippetRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewSnippetRepository(db *pgxpool.Pool, logger *zap.Logger) *SnippetRepository {
	return &SnippetRepository{
		db:     db,
		logger: logger,
	}
}

// Upsert writes one embedded snippet. Re-seeding with the same corpus is a
// no-op apart from refreshing text and embedding.
func (r *SnippetRepository) Upsert(ctx context.Context, s *models.Snippet) error {
	query := squirrel.Insert("snippets").
		Columns("id", "source_tag", "citation", "content", "embedding", "position", "created_at").
		Values(s.ID, s.SourceTag, s.Citation, s.Text, VectorLiteral(s.Embedding), s.Position, time.Now().UTC()).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			source_tag = EXCLUDED.source_tag,
			citation = EXCLUDED.citation,
			content = EXCLUDED.content,
			embedding = EXCLUDED.embedding,
			position = EXCLUDED.position`).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("build snippet upsert: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("upsert snippet %s: %w", s.ID, err)
	}
	return nil
}

func (r *SnippetRepository) Count(ctx context.Context) (int, error) {
	sql, args, err := squirrel.Select("COUNT(*)").
		From("snippets").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build snippet count: %w", err)
	}

	var count int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count snippets: %w", err)
	}
	return count, nil
}

// SearchSimilar ranks the corpus by cosine similarity to the query vector.
// Ties fall back to corpus insertion order so retrieval stays deterministic
// for identical inputs.
func (r *SnippetRepository) SearchSimilar(ctx context.Context, embedding []float32, topK int) ([]models.RetrievedSnippet, error) {
	query := `
SELECT id,
       source_tag,
       citation,
       content,
       position,
       1 - (embedding <=> $1::vector) AS score
FROM snippets
ORDER BY embedding <=> $1::vector, position ASC
LIMIT $2`

	rows, err := r.db.Query(ctx, query, VectorLiteral(embedding), topK)
	if err != nil {
		return nil, fmt.Errorf("query snippet search: %w", err)
	}
	defer rows.Close()

	results := make([]models.RetrievedSnippet, 0, topK)
	for rows.Next() {
		var s models.RetrievedSnippet
		if err := rows.Scan(&s.ID, &s.SourceTag, &s.Citation, &s.Text, &s.Position, &s.Score); err != nil {
			return nil, fmt.Errorf("scan snippet row: %w", err)
		}
		results = append(results, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate snippet rows: %w", err)
	}
	return results, nil
}

// VectorLiteral renders a pgvector text literal for a $n::vector cast.
func VectorLiteral(v []float32) string {
	parts := make([]string, 0, len(v))
	for _, x := range v {
		parts = append(parts, fmt.Sprintf("%f", x))
	}
	return "[" + strings.Join(parts, ",") + "]"
}
