package biz

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kart-io/mentor-ai/internal/pkg/apperrors"
)

func TestEmbedBatchReturnsVectorsInOrder(t *testing.T) {
	embedder := NewEmbedder(&fakeEmbedProvider{dim: 3})

	vectors, err := embedder.EmbedBatch(context.Background(), []string{"a", "b", "c"})
	require.NoError(t, err)
	require.Len(t, vectors, 3)
	assert.Equal(t, float32(1), vectors[0][0])
	assert.Equal(t, float32(2), vectors[1][0])
	assert.Equal(t, float32(3), vectors[2][0])
}

func TestEmbedBatchEmptyInput(t *testing.T) {
	embedder := NewEmbedder(&fakeEmbedProvider{})

	vectors, err := embedder.EmbedBatch(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, vectors)
}

func TestEmbedBatchWrapsProviderError(t *testing.T) {
	embedder := NewEmbedder(&fakeEmbedProvider{err: errors.New("upstream down")})

	_, err := embedder.EmbedBatch(context.Background(), []string{"a"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrEmbeddingProvider))
	assert.True(t, apperrors.IsRetryable(err))
}

func TestEmbedOneWrapsProviderError(t *testing.T) {
	embedder := NewEmbedder(&fakeEmbedProvider{err: errors.New("upstream down")})

	_, err := embedder.EmbedOne(context.Background(), "a")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrEmbeddingProvider))
}

func TestRetrieveValidatesTopK(t *testing.T) {
	retriever := NewRetriever(newFakeIndex())

	for _, k := range []int{0, -1, 13, 100} {
		_, err := retriever.Retrieve(context.Background(), "tony-robbins", []float32{0.1}, k)
		require.Error(t, err, "k=%d", k)
		assert.True(t, errors.Is(err, apperrors.ErrValidation), "k=%d", k)
	}
}

func TestRetrievePassesThroughBounds(t *testing.T) {
	index := newFakeIndex()
	retriever := NewRetriever(index)

	for _, k := range []int{MinTopK, DefaultTopK, MaxTopK} {
		_, err := retriever.Retrieve(context.Background(), "tony-robbins", []float32{0.1}, k)
		require.NoError(t, err, "k=%d", k)
		assert.Equal(t, k, index.lastK)
		assert.Equal(t, "tony-robbins", index.lastSlug)
	}
}
