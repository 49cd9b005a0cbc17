// Package store provides persistence for mentors, videos, and transcript
// chunks: a relational system of record behind IStore and a vector index
// behind VectorIndex.
package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/kart-io/mentor-ai/internal/model"
)

// MentorStore defines mentor persistence operations.
type MentorStore interface {
	Create(ctx context.Context, mentor *model.Mentor) error
	Get(ctx context.Context, id string) (*model.Mentor, error)
	GetBySlug(ctx context.Context, slug string) (*model.Mentor, error)
	List(ctx context.Context) (*model.MentorList, error)
	Count(ctx context.Context) (int64, error)
}

// VideoStore defines video persistence and status-machine operations.
type VideoStore interface {
	Create(ctx context.Context, video *model.VideoContent) error
	Get(ctx context.Context, id string) (*model.VideoContent, error)
	UpdateStatus(ctx context.Context, id, status string) error
	// TryMarkQueued flips the video to queued unless it is already in
	// flight; an in-flight video yields ErrConflict without any mutation.
	TryMarkQueued(ctx context.Context, id string) error
	MarkFailed(ctx context.Context, id, errorMessage string) error
	SetReady(ctx context.Context, id string, chunkCount int) error
	Count(ctx context.Context) (int64, error)
}

// ChunkStore defines chunk persistence operations.
type ChunkStore interface {
	// ReplaceChunks atomically removes every chunk of the video and inserts
	// the new set. Either all rows land or none do.
	ReplaceChunks(ctx context.Context, videoID string, chunks []*model.ContentChunk) error
	ListByVideo(ctx context.Context, videoID string) ([]*model.ContentChunk, error)
	CountByVideo(ctx context.Context, videoID string) (int64, error)
}

// IStore is the relational store factory.
type IStore interface {
	Mentors() MentorStore
	Videos() VideoStore
	Chunks() ChunkStore
	DB() *gorm.DB
}

// VectorIndex mirrors the chunk set into a similarity-search index.
type VectorIndex interface {
	// EnsureCollection creates the backing collection when missing.
	EnsureCollection(ctx context.Context, dimension int) error

	// ReplaceVideo drops all indexed vectors of the video and inserts the
	// given chunks with their embeddings.
	ReplaceVideo(ctx context.Context, mentorSlug string, video *model.VideoContent, chunks []*model.ContentChunk, embeddings [][]float32) error

	// SearchByMentor returns up to k chunks of the mentor's videos ordered
	// by ascending cosine distance to the query embedding.
	SearchByMentor(ctx context.Context, mentorSlug string, embedding []float32, k int) ([]*model.RetrievedChunk, error)

	// RowCount reports how many vectors the collection holds.
	RowCount(ctx context.Context) (int64, error)

	Close(ctx context.Context) error
}

// datastore is the gorm-backed IStore implementation.
type datastore struct {
	db *gorm.DB
}

var _ IStore = (*datastore)(nil)

// NewStore creates the relational store on top of a gorm connection.
func NewStore(db *gorm.DB) IStore {
	return &datastore{db: db}
}

// Mentors returns the mentor store.
func (ds *datastore) Mentors() MentorStore {
	return newMentors(ds.db)
}

// Videos returns the video store.
func (ds *datastore) Videos() VideoStore {
	return newVideos(ds.db)
}

// Chunks returns the chunk store.
func (ds *datastore) Chunks() ChunkStore {
	return newChunks(ds.db)
}

// DB exposes the underlying gorm handle, mainly for migrations.
func (ds *datastore) DB() *gorm.DB {
	return ds.db
}

// AutoMigrate creates or updates the relational schema.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Mentor{},
		&model.VideoContent{},
		&model.ContentChunk{},
	)
}
