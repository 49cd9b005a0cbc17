package biz

import (
	"context"

	"github.com/kart-io/mentor-ai/internal/model"
	"github.com/kart-io/mentor-ai/internal/mentor/store"
	"github.com/kart-io/mentor-ai/internal/pkg/apperrors"
)

// Bounds for the number of retrieved context chunks per chat turn.
const (
	MinTopK     = 1
	MaxTopK     = 12
	DefaultTopK = 6
)

// Retriever finds the chunks of a mentor's videos closest to a query
// embedding.
type Retriever struct {
	index store.VectorIndex
}

// NewRetriever creates a retriever over a vector index.
func NewRetriever(index store.VectorIndex) *Retriever {
	return &Retriever{index: index}
}

// Retrieve returns up to k chunks ordered by ascending cosine distance.
// k outside [MinTopK, MaxTopK] is a validation error; an empty result is
// not an error.
func (r *Retriever) Retrieve(ctx context.Context, mentorSlug string, embedding []float32, k int) ([]*model.RetrievedChunk, error) {
	if k < MinTopK || k > MaxTopK {
		return nil, apperrors.ErrValidation.WithMessage("top_k must be between %d and %d", MinTopK, MaxTopK)
	}
	return r.index.SearchByMentor(ctx, mentorSlug, embedding, k)
}
