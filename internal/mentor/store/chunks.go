package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/kart-io/mentor-ai/internal/model"
)

type chunks struct {
	db *gorm.DB
}

var _ ChunkStore = (*chunks)(nil)

func newChunks(db *gorm.DB) *chunks {
	return &chunks{db: db}
}

// ReplaceChunks swaps the chunk set of a video in one transaction so
// re-processing never collides with the unique (video_id, chunk_index)
// constraint and readers never observe a partial set.
func (s *chunks) ReplaceChunks(ctx context.Context, videoID string, newChunks []*model.ContentChunk) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("video_id = ?", videoID).Delete(&model.ContentChunk{}).Error; err != nil {
			return err
		}
		if len(newChunks) == 0 {
			return nil
		}
		for _, chunk := range newChunks {
			chunk.VideoID = videoID
		}
		return tx.CreateInBatches(newChunks, 100).Error
	})
}

func (s *chunks) ListByVideo(ctx context.Context, videoID string) ([]*model.ContentChunk, error) {
	var items []*model.ContentChunk
	err := s.db.WithContext(ctx).
		Where("video_id = ?", videoID).
		Order("chunk_index").
		Find(&items).Error
	return items, err
}

func (s *chunks) CountByVideo(ctx context.Context, videoID string) (int64, error) {
	var total int64
	err := s.db.WithContext(ctx).Model(&model.ContentChunk{}).
		Where("video_id = ?", videoID).
		Count(&total).Error
	return total, err
}
