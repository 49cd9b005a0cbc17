package biz

import (
	"context"

	"github.com/kart-io/mentor-ai/internal/pkg/apperrors"
	"github.com/kart-io/mentor-ai/pkg/llm"
)

// Embedder turns text into vectors through an embedding provider, mapping
// every provider failure to the embedding error category so callers can
// decide retryability.
type Embedder struct {
	provider llm.EmbeddingProvider
}

// NewEmbedder creates an embedder on top of a provider.
func NewEmbedder(provider llm.EmbeddingProvider) *Embedder {
	return &Embedder{provider: provider}
}

// EmbedOne embeds a single text.
func (e *Embedder) EmbedOne(ctx context.Context, text string) ([]float32, error) {
	embedding, err := e.provider.EmbedSingle(ctx, text)
	if err != nil {
		return nil, apperrors.ErrEmbeddingProvider.Wrap(err)
	}
	return embedding, nil
}

// EmbedBatch embeds a batch of texts. The result is all-or-nothing: either
// every text gets its vector, in input order, or the whole call fails.
func (e *Embedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	embeddings, err := e.provider.Embed(ctx, texts)
	if err != nil {
		return nil, apperrors.ErrEmbeddingProvider.Wrap(err)
	}
	if len(embeddings) != len(texts) {
		return nil, apperrors.ErrEmbeddingProvider.WithMessage(
			"embedding count mismatch: %d texts, %d vectors", len(texts), len(embeddings))
	}
	return embeddings, nil
}
