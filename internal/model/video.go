package model

import (
	"time"

	"gorm.io/gorm"
)

// Video processing status values. A video walks the pipeline
// new -> queued -> fetched -> chunked -> embedded -> ready, or lands on
// failed at any step. Only new/ready/failed may be re-enqueued.
const (
	VideoStatusNew      = "new"
	VideoStatusQueued   = "queued"
	VideoStatusFetched  = "fetched"
	VideoStatusChunked  = "chunked"
	VideoStatusEmbedded = "embedded"
	VideoStatusReady    = "ready"
	VideoStatusFailed   = "failed"
)

// InFlightStatuses are the statuses that reject a new enqueue request.
var InFlightStatuses = []string{
	VideoStatusQueued,
	VideoStatusFetched,
	VideoStatusChunked,
	VideoStatusEmbedded,
}

// VideoContent represents a single source video whose transcript feeds the
// knowledge base of one mentor.
type VideoContent struct {
	ID             string         `json:"id" gorm:"primaryKey;size:26"`
	MentorID       string         `json:"mentor_id" gorm:"size:26;not null;uniqueIndex:uk_mentor_video,priority:1"`
	YoutubeVideoID string         `json:"youtube_video_id" gorm:"size:20;not null;uniqueIndex:uk_mentor_video,priority:2"`
	Title          string         `json:"title" gorm:"size:500"`
	Status         string         `json:"status" gorm:"size:20;not null;default:new;index"`
	ErrorMessage   string         `json:"error_message,omitempty" gorm:"type:text"`
	ChunkCount     int            `json:"chunk_count" gorm:"default:0"`
	CreatedAt      time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt      time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt      gorm.DeletedAt `json:"-" gorm:"index"`

	Mentor *Mentor        `json:"-" gorm:"foreignKey:MentorID"`
	Chunks []ContentChunk `json:"-" gorm:"foreignKey:VideoID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM.
func (v *VideoContent) TableName() string {
	return "video_contents"
}

// BeforeCreate assigns a ULID primary key when none is set.
func (v *VideoContent) BeforeCreate(_ *gorm.DB) error {
	if v.ID == "" {
		v.ID = NewID()
	}
	if v.Status == "" {
		v.Status = VideoStatusNew
	}
	return nil
}
