package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nulzo/provider-metrics-api/internal/core/domain"
	"github.com/nulzo/provider-metrics-api/pkg/api"
)

// ErrorHandler converts errors attached by handlers into the standard
// success:false JSON body. No request path ever surfaces a raw fault.
func ErrorHandler(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err

		if appErr, ok := err.(*domain.Error); ok {
			if appErr.Log != nil {
				logger.Error("Request failed", zap.Int("code", appErr.Code), zap.Error(appErr.Log))
			}
			c.AbortWithStatusJSON(appErr.Code, api.NewError(appErr.Message))
			return
		}

		// unknown error, catch-all 500
		logger.Error("Unhandled error", zap.Error(err))
		c.AbortWithStatusJSON(http.StatusInternalServerError, api.NewError("an unexpected error occurred"))
	}
}
