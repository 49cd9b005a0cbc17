// Package router wires the mentor service HTTP routes.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kart-io/logger"

	"github.com/kart-io/mentor-ai/internal/mentor/handler"
)

// Register registers the mentor service routes on the gin engine.
func Register(engine *gin.Engine, h *handler.Handler) {
	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := engine.Group("/v1")
	{
		mentors := v1.Group("/mentors")
		{
			mentors.POST("", h.CreateMentor)
			mentors.GET("", h.ListMentors)
			mentors.GET("/:slug", h.GetMentor)
			mentors.POST("/:slug/chat", h.Chat)
		}

		videos := v1.Group("/videos")
		{
			videos.POST("", h.CreateVideo)
			videos.POST("/:id/enqueue", h.EnqueueVideo)
			videos.GET("/:id/status", h.VideoStatus)
		}

		v1.GET("/stats", h.Stats)
	}

	logger.Info("HTTP routes registered")
}
