package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/kart-io/logger"

	"github.com/kart-io/mentor-ai/internal/model"
	"github.com/kart-io/mentor-ai/internal/pkg/apperrors"
	"github.com/kart-io/mentor-ai/internal/pkg/httputils"
	"github.com/kart-io/mentor-ai/internal/pkg/transcript"
)

// CreateVideo handles POST /v1/videos. The video is registered but not
// processed; processing starts on enqueue.
func (h *Handler) CreateVideo(c *gin.Context) {
	var req model.CreateVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputils.WriteResponse(c, apperrors.ErrValidation.WithMessage("invalid request body").Wrap(err), nil)
		return
	}

	youtubeID, err := transcript.ExtractVideoID(req.URL)
	if err != nil {
		httputils.WriteResponse(c, apperrors.ErrValidation.WithMessage("invalid video url").Wrap(err), nil)
		return
	}

	mentor, err := h.mentors.GetBySlug(c.Request.Context(), req.MentorSlug)
	if err != nil {
		httputils.WriteResponse(c, err, nil)
		return
	}

	video := &model.VideoContent{
		MentorID:       mentor.ID,
		YoutubeVideoID: youtubeID,
		Title:          req.Title,
		Status:         model.VideoStatusNew,
	}
	if err := h.videos.Create(c.Request.Context(), video); err != nil {
		httputils.WriteResponse(c, err, nil)
		return
	}

	logger.Infow("video registered", "video_id", video.ID, "mentor", mentor.Slug, "youtube_video_id", youtubeID)
	httputils.WriteResponse(c, nil, video)
}

// EnqueueVideo handles POST /v1/videos/:id/enqueue. A video already in
// flight is rejected with a conflict; acceptance means the pipeline owns the
// video from here.
func (h *Handler) EnqueueVideo(c *gin.Context) {
	videoID := c.Param("id")
	if err := h.worker.Enqueue(c.Request.Context(), videoID); err != nil {
		httputils.WriteResponse(c, err, nil)
		return
	}
	httputils.WriteAccepted(c, gin.H{"id": videoID, "status": model.VideoStatusQueued})
}

// VideoStatus handles GET /v1/videos/:id/status.
func (h *Handler) VideoStatus(c *gin.Context) {
	video, err := h.videos.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		httputils.WriteResponse(c, err, nil)
		return
	}
	httputils.WriteResponse(c, nil, &model.VideoStatusResponse{
		ID:             video.ID,
		YoutubeVideoID: video.YoutubeVideoID,
		Title:          video.Title,
		Status:         video.Status,
		ErrorMessage:   video.ErrorMessage,
		ChunkCount:     video.ChunkCount,
	})
}
