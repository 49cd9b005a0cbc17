package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/kart-io/mentor-ai/internal/model"
	"github.com/kart-io/mentor-ai/internal/pkg/apperrors"
)

type mentors struct {
	db *gorm.DB
}

var _ MentorStore = (*mentors)(nil)

func newMentors(db *gorm.DB) *mentors {
	return &mentors{db: db}
}

// Create inserts a mentor. A duplicate slug surfaces as ErrConflict.
func (s *mentors) Create(ctx context.Context, mentor *model.Mentor) error {
	if err := s.db.WithContext(ctx).Create(mentor).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.ErrConflict.WithMessage("mentor slug %q already exists", mentor.Slug)
		}
		return err
	}
	return nil
}

func (s *mentors) Get(ctx context.Context, id string) (*model.Mentor, error) {
	var mentor model.Mentor
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&mentor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound.WithMessage("mentor %q not found", id)
		}
		return nil, err
	}
	return &mentor, nil
}

func (s *mentors) GetBySlug(ctx context.Context, slug string) (*model.Mentor, error) {
	var mentor model.Mentor
	if err := s.db.WithContext(ctx).Where("slug = ?", slug).First(&mentor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound.WithMessage("mentor %q not found", slug)
		}
		return nil, err
	}
	return &mentor, nil
}

func (s *mentors) List(ctx context.Context) (*model.MentorList, error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(&model.Mentor{}).Count(&total).Error; err != nil {
		return nil, err
	}

	var items []*model.Mentor
	if err := s.db.WithContext(ctx).Order("created_at").Find(&items).Error; err != nil {
		return nil, err
	}
	return &model.MentorList{TotalCount: total, Items: items}, nil
}

func (s *mentors) Count(ctx context.Context) (int64, error) {
	var total int64
	err := s.db.WithContext(ctx).Model(&model.Mentor{}).Count(&total).Error
	return total, err
}
