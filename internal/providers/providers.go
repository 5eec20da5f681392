// Package providers wraps the external embedding and completion services.
// Providers do no retrying and no output interpretation: retry policy is
// owned by callers, parsing belongs to the extraction layer.
package providers

import (
	"context"
	"errors"
	"fmt"

	"corep-assist/pkg/config"
)

// ErrEmbeddingUnavailable marks a dependency outage on the embedding
// service, as opposed to a data error.
var ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

// EmbeddingProvider turns texts into fixed-dimension vectors.
type EmbeddingProvider interface {
	Embed(ctx context.Context, inputs []string) ([][]float32, error)
}

// CompletionProvider answers a system/user prompt pair with raw model text.
type CompletionProvider interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// FromConfig builds the provider pair for the configured backend. Groq only
// serves completions, so its embeddings always go through the OpenAI API.
func FromConfig(cfg *config.Config) (EmbeddingProvider, CompletionProvider, error) {
	switch cfg.LLM.Provider {
	case "mock":
		m := NewMockProvider(cfg.RAG.EmbeddingDim)
		return m, m, nil
	case "groq":
		if cfg.LLM.OpenAIKey == "" {
			return nil, nil, fmt.Errorf("no embedding model available: OPENAI_API_KEY is required alongside GROQ_API_KEY")
		}
		embedder := NewOpenAIProvider(cfg.LLM.OpenAIKey, "", cfg.LLM.OpenAIModel, cfg.RAG.EmbeddingModel)
		completer := NewOpenAIProvider(cfg.LLM.GroqKey, groqBaseURL, cfg.LLM.GroqModel, "")
		return embedder, completer, nil
	case "openai":
		p := NewOpenAIProvider(cfg.LLM.OpenAIKey, "", cfg.LLM.OpenAIModel, cfg.RAG.EmbeddingModel)
		return p, p, nil
	default:
		return nil, nil, fmt.Errorf("unknown LLM provider %q", cfg.LLM.Provider)
	}
}
