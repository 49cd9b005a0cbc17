package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/kart-io/mentor-ai/internal/model"
	"github.com/kart-io/mentor-ai/internal/pkg/apperrors"
)

type videos struct {
	db *gorm.DB
}

var _ VideoStore = (*videos)(nil)

func newVideos(db *gorm.DB) *videos {
	return &videos{db: db}
}

// Create inserts a video. A duplicate (mentor, youtube id) pair surfaces as
// ErrConflict.
func (s *videos) Create(ctx context.Context, video *model.VideoContent) error {
	if err := s.db.WithContext(ctx).Create(video).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.ErrConflict.WithMessage("video %q already registered for this mentor", video.YoutubeVideoID)
		}
		return err
	}
	return nil
}

func (s *videos) Get(ctx context.Context, id string) (*model.VideoContent, error) {
	var video model.VideoContent
	if err := s.db.WithContext(ctx).Preload("Mentor").Where("id = ?", id).First(&video).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound.WithMessage("video %q not found", id)
		}
		return nil, err
	}
	return &video, nil
}

func (s *videos) UpdateStatus(ctx context.Context, id, status string) error {
	result := s.db.WithContext(ctx).Model(&model.VideoContent{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound.WithMessage("video %q not found", id)
	}
	return nil
}

// TryMarkQueued is a single conditional UPDATE: it only succeeds when the
// video is not already walking the pipeline, so two concurrent enqueues
// cannot both win.
func (s *videos) TryMarkQueued(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Model(&model.VideoContent{}).
		Where("id = ?", id).
		Where("status NOT IN ?", model.InFlightStatuses).
		Updates(map[string]any{"status": model.VideoStatusQueued, "error_message": ""})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		if _, err := s.Get(ctx, id); err != nil {
			return err
		}
		return apperrors.ErrConflict.WithMessage("video %q is already being processed", id)
	}
	return nil
}

func (s *videos) MarkFailed(ctx context.Context, id, errorMessage string) error {
	return s.db.WithContext(ctx).Model(&model.VideoContent{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":        model.VideoStatusFailed,
			"error_message": errorMessage,
		}).Error
}

func (s *videos) SetReady(ctx context.Context, id string, chunkCount int) error {
	return s.db.WithContext(ctx).Model(&model.VideoContent{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":        model.VideoStatusReady,
			"chunk_count":   chunkCount,
			"error_message": "",
		}).Error
}

func (s *videos) Count(ctx context.Context) (int64, error) {
	var total int64
	err := s.db.WithContext(ctx).Model(&model.VideoContent{}).Count(&total).Error
	return total, err
}
