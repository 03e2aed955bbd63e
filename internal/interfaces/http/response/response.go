package response

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	domainerrors "glow-contrib.backend/internal/domain/errors"
	"glow-contrib.backend/pkg/logger"
)

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// Error sends an error response. Unknown errors are logged with their cause
// and returned as an opaque internal error; only AppError messages reach the
// client.
func Error(c *gin.Context, err error) {
	var appErr *domainerrors.AppError
	if !errors.As(err, &appErr) {
		appErr = domainerrors.InternalError(err)
	}

	if appErr.Code >= 500 {
		logger.Error(c.Request.Context(), "request failed",
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", appErr.Code),
			zap.Error(err),
		)
	}

	c.JSON(appErr.Code, gin.H{
		"error": appErr.Message,
	})
}
