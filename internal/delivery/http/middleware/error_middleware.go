package middleware

import (
	"errors"

	"codev-directory-backend/internal/delivery/http/response"
	"codev-directory-backend/pkg/apperror"
	"codev-directory-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperror.AppError
		if !errors.As(err, &appErr) {
			// Internal details stay in the server log.
			appErr = apperror.Internal(err)
		}

		if appErr.Err != nil {
			logger.Log.Error("Request failed", "request_id", c.GetString(response.RequestIDKey), "path", c.FullPath(), "status", appErr.Code, "error", appErr.Err)
		}
		var details interface{}
		if len(appErr.Details) > 0 {
			details = appErr.Details
		}
		response.Error(c, appErr.Code, appErr.Message, details)
	}
}
