package models

import "time"

// Snippet is one regulatory reference passage. The corpus is loaded and
// embedded once at startup and is read-only for the process lifetime.
type Snippet struct {
	ID        string    `db:"id" json:"id"`
	SourceTag string    `db:"source_tag" json:"source"`
	Citation  string    `db:"citation" json:"citation"`
	Text      string    `db:"content" json:"text"`
	Position  int       `db:"position" json:"-"`
	Embedding []float32 `db:"embedding" json:"-"`
	CreatedAt time.Time `db:"created_at" json:"-"`
}

// RetrievedSnippet is a Snippet plus its relevance to one scenario.
type RetrievedSnippet struct {
	Snippet
	Score float64 `json:"score"`
}
