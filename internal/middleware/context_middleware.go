package middleware

import (
	"go-hr-ticketing/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ContextLogger attaches a request scoped logger carrying the request id
// and, once authenticated, the actor id. Must run after RequestID.
func ContextLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		md := contextutil.ExtractMetadata(ctx)

		fields := []zap.Field{zap.String("request_id", md.RequestID)}
		if md.ActorID != "" {
			fields = append(fields, zap.String("actor_id", md.ActorID))
		}

		reqLogger := logger.With(fields...)
		c.Request = c.Request.WithContext(contextutil.WithLogger(ctx, reqLogger))

		c.Next()
	}
}
