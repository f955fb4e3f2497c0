package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"adflow.app/tracker/common/logger"
)

const RequestIDHeader = "X-Request-ID"

// RequestID reuses the caller's request id when it is a UUID and mints one
// otherwise. The id is echoed back and attached to every log line.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if _, err := uuid.Parse(requestID); err != nil {
			requestID = uuid.NewString()
		}

		c.Header(RequestIDHeader, requestID)
		ctx := logger.WithLogFields(c.Request.Context(), logger.LogFields{
			RequestID: &requestID,
		})
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
