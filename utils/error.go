package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mentorly/models"
)

// ErrorHandler is a middleware that catches panics and returns the uniform
// failure envelope.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger := GetLogger()
				logger.Error("Unhandled panic", zap.Any("error", err))

				c.JSON(http.StatusInternalServerError, models.APIResponse{
					Success: false,
					Error:   "internal_error",
					Details: "An unexpected error occurred. Please try again later.",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// JSONError sends a standardized failure envelope.
func JSONError(c *gin.Context, status int, errCode string, details string) {
	logger := GetLogger()
	logger.Warn(errCode, zap.String("details", details))
	c.JSON(status, models.APIResponse{Success: false, Error: errCode, Details: details})
}

// JSONOK sends a standardized success envelope.
func JSONOK(c *gin.Context, status int, data interface{}) {
	c.JSON(status, models.APIResponse{Success: true, Data: data})
}
