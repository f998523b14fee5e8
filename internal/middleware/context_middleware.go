package middleware

import (
	"go-estateflow/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ContextLogger stores a request-scoped logger in the request context so
// services can log without knowing about gin. It expects RequestID to run
// first.
func ContextLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetString("request_id")

		reqLogger := logger.With(
			zap.String("request_id", rid),
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
		)

		ctx := contextutil.WithLogger(c.Request.Context(), reqLogger)
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		if len(c.Errors) > 0 {
			reqLogger.Warn("request finished with errors", zap.String("errors", c.Errors.String()))
		}
	}
}

func contextFields(id Identity) []zap.Field {
	fields := []zap.Field{zap.String("user_id", id.UserID)}
	if id.CompanyID != "" {
		fields = append(fields, zap.String("company_id", id.CompanyID))
	}
	return fields
}
