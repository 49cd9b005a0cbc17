package handler

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/kart-io/logger"

	"github.com/kart-io/mentor-ai/internal/model"
	"github.com/kart-io/mentor-ai/internal/pkg/apperrors"
	"github.com/kart-io/mentor-ai/internal/pkg/httputils"
)

// CreateMentor handles POST /v1/mentors.
func (h *Handler) CreateMentor(c *gin.Context) {
	var req model.CreateMentorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputils.WriteResponse(c, apperrors.ErrValidation.WithMessage("invalid request body").Wrap(err), nil)
		return
	}

	mentor := &model.Mentor{
		Name:            strings.TrimSpace(req.Name),
		Slug:            strings.TrimSpace(strings.ToLower(req.Slug)),
		PrimaryLanguage: req.PrimaryLanguage,
		Bio:             req.Bio,
	}
	if mentor.Name == "" || mentor.Slug == "" {
		httputils.WriteResponse(c, apperrors.ErrValidation.WithMessage("name and slug are required"), nil)
		return
	}

	if err := h.mentors.Create(c.Request.Context(), mentor); err != nil {
		httputils.WriteResponse(c, err, nil)
		return
	}

	logger.Infow("mentor created", "slug", mentor.Slug)
	httputils.WriteResponse(c, nil, mentor)
}

// ListMentors handles GET /v1/mentors.
func (h *Handler) ListMentors(c *gin.Context) {
	list, err := h.mentors.List(c.Request.Context())
	httputils.WriteResponse(c, err, list)
}

// GetMentor handles GET /v1/mentors/:slug.
func (h *Handler) GetMentor(c *gin.Context) {
	mentor, err := h.mentors.GetBySlug(c.Request.Context(), c.Param("slug"))
	httputils.WriteResponse(c, err, mentor)
}
