package providers

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
)

// MockProvider is a keyless stand-in for local development and tests.
// Embeddings are derived from a hash of the input, so identical text always
// yields the identical vector.
type MockProvider struct {
	dim int
}

func NewMockProvider(dim int) *MockProvider {
	if dim <= 0 {
		dim = 1536
	}
	return &MockProvider{dim: dim}
}

func (m *MockProvider) Embed(ctx context.Context, inputs []string) ([][]float32, error) {
	_ = ctx
	vectors := make([][]float32, 0, len(inputs))
	for _, input := range inputs {
		vectors = append(vectors, deterministicVector(input, m.dim))
	}
	return vectors, nil
}

func (m *MockProvider) Complete(ctx context.Context, system, user string) (string, error) {
	_ = ctx
	_ = system
	_ = user
	return `{
  "template_name": "C 01.00 - Own Funds (illustrative)",
  "CET1": null,
  "AT1": null,
  "Tier2": null,
  "RWA": null,
  "CET1_ratio": null,
  "missing_fields": ["CET1", "AT1", "Tier2", "RWA"],
  "validation_warnings": [],
  "rules_used": [],
  "explanation": "Mock provider output; configure a real provider for semantic quality."
}`, nil
}

func deterministicVector(input string, dim int) []float32 {
	vec := make([]float32, dim)
	seed := []byte(input)
	if len(seed) == 0 {
		seed = []byte("empty")
	}
	for i := 0; i < dim; i++ {
		h := sha256.Sum256(append(seed, byte(i%251)))
		u := binary.BigEndian.Uint32(h[:4])
		vec[i] = float32(u%2000)/1000.0 - 1.0
	}
	return normalize(vec)
}

func normalize(v []float32) []float32 {
	var sum float32
	for _, x := range v {
		sum += x * x
	}
	if sum == 0 {
		return v
	}
	inv := float32(1.0 / (float64(sum) + 1e-9))
	for i := range v {
		v[i] *= inv
	}
	return v
}
