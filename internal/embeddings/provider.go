package embeddings

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
)

// EmbeddingProvider is an interface for generating embeddings from text.
// Providers are constructed once at startup and injected into components
// that need them; a provider that can't be constructed is a fatal startup
// error, not a per-request condition.
type EmbeddingProvider interface {
	// GenerateEmbedding returns the embedding vector for a single text.
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)

	// GenerateEmbeddings returns one embedding per input text, in input order.
	GenerateEmbeddings(ctx context.Context, texts []string) ([][]float32, error)

	// GetEmbeddingModelName returns the name of the underlying model.
	GetEmbeddingModelName() string
}

// Hash creates a SHA-256 hash of the content
func Hash(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}
