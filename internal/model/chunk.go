package model

import (
	"time"

	"gorm.io/gorm"
)

// ContentChunk is one window of transcript text with timing and an optional
// embedding vector, stored as the relational system of record. The vector
// index keeps a parallel copy for similarity search.
type ContentChunk struct {
	ID           string         `json:"id" gorm:"primaryKey;size:26"`
	VideoID      string         `json:"video_id" gorm:"size:26;not null;uniqueIndex:uk_video_chunk,priority:1"`
	ChunkIndex   int            `json:"chunk_index" gorm:"not null;uniqueIndex:uk_video_chunk,priority:2"`
	Text         string         `json:"text" gorm:"type:text;not null"`
	WordCount    int            `json:"word_count" gorm:"not null"`
	StartSeconds int            `json:"start_seconds" gorm:"not null"`
	EndSeconds   int            `json:"end_seconds" gorm:"not null"`
	Embedding    string         `json:"-" gorm:"type:text"` // JSON-serialized []float32, empty until embedded
	CreatedAt    time.Time      `json:"created_at" gorm:"autoCreateTime"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`

	Video *VideoContent `json:"-" gorm:"foreignKey:VideoID"`
}

// TableName returns the table name for GORM.
func (c *ContentChunk) TableName() string {
	return "content_chunks"
}

// BeforeCreate assigns a ULID primary key when none is set.
func (c *ContentChunk) BeforeCreate(_ *gorm.DB) error {
	if c.ID == "" {
		c.ID = NewID()
	}
	return nil
}

// RetrievedChunk is a similarity-search hit returned to the retriever,
// carrying provenance from the video it came from.
type RetrievedChunk struct {
	ChunkID        string  `json:"chunk_id"`
	VideoID        string  `json:"video_id"`
	VideoTitle     string  `json:"video_title"`
	YoutubeVideoID string  `json:"youtube_video_id"`
	ChunkIndex     int     `json:"chunk_index"`
	Text           string  `json:"text"`
	StartSeconds   float64 `json:"start_seconds"`
	EndSeconds     float64 `json:"end_seconds"`
	Distance       float64 `json:"distance"`
}
