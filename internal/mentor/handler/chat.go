package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/kart-io/mentor-ai/internal/model"
	"github.com/kart-io/mentor-ai/internal/pkg/apperrors"
	"github.com/kart-io/mentor-ai/internal/pkg/httputils"
)

// Chat handles POST /v1/mentors/:slug/chat.
func (h *Handler) Chat(c *gin.Context) {
	var req model.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputils.WriteResponse(c, apperrors.ErrValidation.WithMessage("invalid request body").Wrap(err), nil)
		return
	}

	resp, err := h.chat.Chat(c.Request.Context(), c.Param("slug"), &req)
	httputils.WriteResponse(c, err, resp)
}
