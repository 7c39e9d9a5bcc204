package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/catalog-backend/internal/logger"
)

const RequestIDHeader = "X-Request-ID"

type RequestIDMiddleware struct {
	log *logger.Logger
}

func NewRequestIDMiddleware(log *logger.Logger) *RequestIDMiddleware {
	return &RequestIDMiddleware{log: log.With("middleware", "RequestID")}
}

// Tag tags every request with an id (generated unless the client supplied
// one) and emits a structured access log line.
func (m *RequestIDMiddleware) Tag() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set("request_id", requestID)
		c.Writer.Header().Set(RequestIDHeader, requestID)

		start := time.Now()
		c.Next()

		m.log.Info("Request handled",
			"request_id", requestID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}
