// Package handler exposes the mentor service over HTTP.
package handler

import (
	"github.com/kart-io/mentor-ai/internal/mentor/biz"
	"github.com/kart-io/mentor-ai/internal/mentor/store"
)

// Handler holds the HTTP handlers for the mentor service.
type Handler struct {
	mentors store.MentorStore
	videos  store.VideoStore
	index   store.VectorIndex
	chat    *biz.ChatUsecase
	worker  *biz.Worker
}

// New creates a Handler.
func New(mentors store.MentorStore, videos store.VideoStore, index store.VectorIndex, chat *biz.ChatUsecase, worker *biz.Worker) *Handler {
	return &Handler{
		mentors: mentors,
		videos:  videos,
		index:   index,
		chat:    chat,
		worker:  worker,
	}
}
