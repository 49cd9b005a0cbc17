package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/kart-io/logger"

	"github.com/kart-io/mentor-ai/internal/mentor/store"
	"github.com/kart-io/mentor-ai/internal/model"
	"github.com/kart-io/mentor-ai/internal/pkg/httputils"
)

// Stats handles GET /v1/stats.
func (h *Handler) Stats(c *gin.Context) {
	ctx := c.Request.Context()

	rowCount, err := h.index.RowCount(ctx)
	if err != nil {
		logger.Warnw("failed to read vector row count", "error", err)
	}
	mentors, err := h.mentors.Count(ctx)
	if err != nil {
		httputils.WriteResponse(c, err, nil)
		return
	}
	videos, err := h.videos.Count(ctx)
	if err != nil {
		httputils.WriteResponse(c, err, nil)
		return
	}

	httputils.WriteResponse(c, nil, &model.StatsResponse{
		Collection: store.ChunkCollection,
		RowCount:   rowCount,
		Mentors:    mentors,
		Videos:     videos,
	})
}
