package biz

import (
	"context"

	"github.com/kart-io/logger"

	"github.com/kart-io/mentor-ai/internal/model"
	"github.com/kart-io/mentor-ai/internal/mentor/store"
	"github.com/kart-io/mentor-ai/internal/pkg/apperrors"
	"github.com/kart-io/mentor-ai/internal/pkg/transcript"
	"github.com/kart-io/mentor-ai/pkg/utils/json"
)

// Processor walks one video through the ingestion pipeline:
// fetch transcript -> chunk -> embed -> persist + index. Each stage advances
// the video status; any failure marks the video failed before the error is
// returned, so status never lies about progress.
type Processor struct {
	videos   store.VideoStore
	chunks   store.ChunkStore
	index    store.VectorIndex
	source   transcript.Source
	embedder *Embedder
	chunker  *TranscriptChunker
}

// NewProcessor wires the ingestion pipeline.
func NewProcessor(videos store.VideoStore, chunks store.ChunkStore, index store.VectorIndex, source transcript.Source, embedder *Embedder, chunker *TranscriptChunker) *Processor {
	if chunker == nil {
		chunker = NewDefaultChunker()
	}
	return &Processor{
		videos:   videos,
		chunks:   chunks,
		index:    index,
		source:   source,
		embedder: embedder,
		chunker:  chunker,
	}
}

// Process runs the pipeline for one video.
func (p *Processor) Process(ctx context.Context, videoID string) error {
	video, err := p.videos.Get(ctx, videoID)
	if err != nil {
		return err
	}

	if err := p.process(ctx, video); err != nil {
		if markErr := p.videos.MarkFailed(ctx, videoID, err.Error()); markErr != nil {
			logger.Errorw("failed to mark video failed", "video_id", videoID, "error", markErr)
		}
		return err
	}
	return nil
}

func (p *Processor) process(ctx context.Context, video *model.VideoContent) error {
	logger.Infow("fetching transcript", "video_id", video.ID, "youtube_video_id", video.YoutubeVideoID)

	result, err := p.source.GetTranscript(ctx, video.YoutubeVideoID, "en")
	if err != nil {
		return apperrors.ErrProcessingFailed.WithMessage("transcript fetch failed for %s", video.YoutubeVideoID).Wrap(err)
	}
	if !result.Success {
		return apperrors.ErrProcessingFailed.WithMessage("transcript fetch failed for %s: %s", video.YoutubeVideoID, result.Error)
	}
	if len(result.Entries) == 0 {
		return apperrors.ErrProcessingFailed.WithMessage("transcript is empty for %s", video.YoutubeVideoID)
	}
	if err := p.videos.UpdateStatus(ctx, video.ID, model.VideoStatusFetched); err != nil {
		return err
	}
	logger.Infow("transcript fetched", "video_id", video.ID, "entries", result.EntriesCount)

	chunks := p.chunker.ChunkTranscript(result.Entries)
	if len(chunks) == 0 {
		return apperrors.ErrProcessingFailed.WithMessage("no chunks were created from the transcript")
	}
	if err := p.videos.UpdateStatus(ctx, video.ID, model.VideoStatusChunked); err != nil {
		return err
	}
	logger.Infow("chunking completed", "video_id", video.ID, "chunks", len(chunks))

	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Text
	}
	embeddings, err := p.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return err
	}
	if err := p.videos.UpdateStatus(ctx, video.ID, model.VideoStatusEmbedded); err != nil {
		return err
	}
	logger.Infow("embedding completed", "video_id", video.ID, "chunks", len(chunks))

	rows := make([]*model.ContentChunk, len(chunks))
	for i, chunk := range chunks {
		vector, err := json.Marshal(embeddings[i])
		if err != nil {
			return apperrors.ErrProcessingFailed.WithMessage("serialize embedding for chunk %d", chunk.ChunkIndex).Wrap(err)
		}
		rows[i] = &model.ContentChunk{
			ID:           model.NewID(),
			VideoID:      video.ID,
			ChunkIndex:   chunk.ChunkIndex,
			Text:         chunk.Text,
			WordCount:    chunk.WordCount,
			StartSeconds: int(chunk.StartSeconds),
			EndSeconds:   int(chunk.EndSeconds),
			Embedding:    string(vector),
		}
	}

	if err := p.chunks.ReplaceChunks(ctx, video.ID, rows); err != nil {
		return apperrors.ErrProcessingFailed.WithMessage("persist chunks for video %s", video.ID).Wrap(err)
	}

	mentorSlug := ""
	if video.Mentor != nil {
		mentorSlug = video.Mentor.Slug
	}
	if err := p.index.ReplaceVideo(ctx, mentorSlug, video, rows, embeddings); err != nil {
		return apperrors.ErrProcessingFailed.WithMessage("index chunks for video %s", video.ID).Wrap(err)
	}

	if err := p.videos.SetReady(ctx, video.ID, len(rows)); err != nil {
		return err
	}
	logger.Infow("video processing finished", "video_id", video.ID, "chunks", len(rows))
	return nil
}
