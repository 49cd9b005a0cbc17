package store

import (
	"context"
	"fmt"

	"github.com/milvus-io/milvus/client/v2/entity"

	"github.com/kart-io/mentor-ai/internal/model"
	"github.com/kart-io/mentor-ai/internal/pkg/apperrors"
	"github.com/kart-io/mentor-ai/pkg/component/milvus"
)

// ChunkCollection is the Milvus collection backing chunk retrieval.
const ChunkCollection = "mentor_chunks"

// MilvusIndex implements VectorIndex on a Milvus collection. Each vector row
// carries enough provenance metadata to answer retrieval without touching
// the relational store.
type MilvusIndex struct {
	client *milvus.Client
}

var _ VectorIndex = (*MilvusIndex)(nil)

// NewMilvusIndex creates the vector index on an existing Milvus client.
func NewMilvusIndex(client *milvus.Client) *MilvusIndex {
	return &MilvusIndex{client: client}
}

var chunkOutputFields = []string{
	"mentor_slug", "video_id", "video_title", "youtube_video_id",
	"chunk_id", "chunk_index", "start_seconds", "end_seconds", "text",
}

// EnsureCollection creates the chunk collection when missing.
func (s *MilvusIndex) EnsureCollection(ctx context.Context, dimension int) error {
	schema := &milvus.CollectionSchema{
		Name:        ChunkCollection,
		Description: "video transcript chunks keyed by mentor",
		Dimension:   dimension,
		MetaFields: []milvus.MetaField{
			{Name: "mentor_slug", DataType: entity.FieldTypeVarChar, MaxLen: 200},
			{Name: "video_id", DataType: entity.FieldTypeVarChar, MaxLen: 26},
			{Name: "video_title", DataType: entity.FieldTypeVarChar, MaxLen: 500},
			{Name: "youtube_video_id", DataType: entity.FieldTypeVarChar, MaxLen: 20},
			{Name: "chunk_id", DataType: entity.FieldTypeVarChar, MaxLen: 26},
			{Name: "chunk_index", DataType: entity.FieldTypeInt64},
			{Name: "start_seconds", DataType: entity.FieldTypeDouble},
			{Name: "end_seconds", DataType: entity.FieldTypeDouble},
			{Name: "text", DataType: entity.FieldTypeVarChar, MaxLen: 65535},
		},
	}
	return s.client.CreateCollection(ctx, schema)
}

// ReplaceVideo drops the video's vectors and inserts the new chunk set. The
// delete-then-insert pairs with the relational replace done by ChunkStore.
func (s *MilvusIndex) ReplaceVideo(ctx context.Context, mentorSlug string, video *model.VideoContent, chunks []*model.ContentChunk, embeddings [][]float32) error {
	if len(chunks) != len(embeddings) {
		return fmt.Errorf("chunk/embedding count mismatch: %d vs %d", len(chunks), len(embeddings))
	}

	expr := fmt.Sprintf("video_id == %q", video.ID)
	if err := s.client.DeleteByExpr(ctx, ChunkCollection, expr); err != nil {
		return fmt.Errorf("failed to clear vectors for video %s: %w", video.ID, err)
	}
	if len(chunks) == 0 {
		return nil
	}

	n := len(chunks)
	metadata := map[string][]any{
		"mentor_slug":      make([]any, n),
		"video_id":         make([]any, n),
		"video_title":      make([]any, n),
		"youtube_video_id": make([]any, n),
		"chunk_id":         make([]any, n),
		"chunk_index":      make([]any, n),
		"start_seconds":    make([]any, n),
		"end_seconds":      make([]any, n),
		"text":             make([]any, n),
	}
	for i, chunk := range chunks {
		metadata["mentor_slug"][i] = mentorSlug
		metadata["video_id"][i] = video.ID
		metadata["video_title"][i] = video.Title
		metadata["youtube_video_id"][i] = video.YoutubeVideoID
		metadata["chunk_id"][i] = chunk.ID
		metadata["chunk_index"][i] = int64(chunk.ChunkIndex)
		metadata["start_seconds"][i] = float64(chunk.StartSeconds)
		metadata["end_seconds"][i] = float64(chunk.EndSeconds)
		metadata["text"][i] = chunk.Text
	}

	_, err := s.client.Insert(ctx, ChunkCollection, &milvus.InsertData{
		Embeddings: embeddings,
		Metadata:   metadata,
	})
	if err != nil {
		return fmt.Errorf("failed to index vectors for video %s: %w", video.ID, err)
	}
	return nil
}

// SearchByMentor runs a filtered similarity search over the mentor's chunks.
// Milvus reports cosine similarity (higher is closer); results are exposed
// as cosine distance, so ascending order matches Milvus' descending scores.
func (s *MilvusIndex) SearchByMentor(ctx context.Context, mentorSlug string, embedding []float32, k int) ([]*model.RetrievedChunk, error) {
	filter := fmt.Sprintf("mentor_slug == %q", mentorSlug)
	results, err := s.client.SearchWithFilter(ctx, ChunkCollection, embedding, k, filter, chunkOutputFields)
	if err != nil {
		return nil, apperrors.ErrInternal.WithMessage("vector search failed").Wrap(err)
	}

	retrieved := make([]*model.RetrievedChunk, 0, len(results))
	for _, r := range results {
		chunk := &model.RetrievedChunk{
			Distance: 1 - float64(r.Score),
		}
		if v, ok := r.Metadata["chunk_id"].(string); ok {
			chunk.ChunkID = v
		}
		if v, ok := r.Metadata["video_id"].(string); ok {
			chunk.VideoID = v
		}
		if v, ok := r.Metadata["video_title"].(string); ok {
			chunk.VideoTitle = v
		}
		if v, ok := r.Metadata["youtube_video_id"].(string); ok {
			chunk.YoutubeVideoID = v
		}
		if v, ok := r.Metadata["chunk_index"].(int64); ok {
			chunk.ChunkIndex = int(v)
		}
		if v, ok := r.Metadata["start_seconds"].(float64); ok {
			chunk.StartSeconds = v
		}
		if v, ok := r.Metadata["end_seconds"].(float64); ok {
			chunk.EndSeconds = v
		}
		if v, ok := r.Metadata["text"].(string); ok {
			chunk.Text = v
		}
		retrieved = append(retrieved, chunk)
	}
	return retrieved, nil
}

// RowCount reports the number of indexed vectors.
func (s *MilvusIndex) RowCount(ctx context.Context) (int64, error) {
	return s.client.GetCollectionStats(ctx, ChunkCollection)
}

// Close closes the Milvus connection.
func (s *MilvusIndex) Close(ctx context.Context) error {
	return s.client.Close(ctx)
}
