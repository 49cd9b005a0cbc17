// Package httputils provides HTTP utility functions.
package httputils

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kart-io/mentor-ai/internal/pkg/apperrors"
)

// ErrResponse is the error envelope returned on failures.
type ErrResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// WriteResponse writes the response to the client. Errors are mapped through
// the apperrors taxonomy so every failure carries a stable code and status.
func WriteResponse(c *gin.Context, err error, data interface{}) {
	if err != nil {
		errno := apperrors.FromError(err)
		c.JSON(errno.HTTP, ErrResponse{Code: errno.Code, Message: errno.Error()})
		return
	}
	c.JSON(http.StatusOK, data)
}

// WriteAccepted reports that an async operation has been scheduled.
func WriteAccepted(c *gin.Context, data interface{}) {
	c.JSON(http.StatusAccepted, data)
}
