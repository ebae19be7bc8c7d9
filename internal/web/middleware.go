package web

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/glekoz/uvsearch/pkg/logger"
	"github.com/rs/xid"
)

const (
	RequestIDHeader = "X-Request-ID"
	BodyKey         = "json_body"
)

// requestID reuses a client supplied id or issues a new one, and stores it in
// the request context for logging.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = xid.New().String()
		}
		c.Header(RequestIDHeader, id)
		c.Request = c.Request.WithContext(logger.WithRequestID(c.Request.Context(), id))
		c.Next()
	}
}

func requestLogger(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		log.InfoContext(c.Request.Context(), "http request",
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", c.Writer.Status()),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
	}
}

// jsonBody decodes JSON request bodies into the context under BodyKey.
// Malformed JSON is rejected before reaching a handler.
func jsonBody() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body == nil || c.Request.ContentLength == 0 || c.ContentType() != binding.MIMEJSON {
			c.Next()
			return
		}

		var body any
		if err := c.ShouldBindBodyWithJSON(&body); err != nil {
			c.String(http.StatusBadRequest, "Bad Request")
			c.Abort()
			return
		}
		c.Set(BodyKey, body)
		c.Next()
	}
}

func recovery(log *slog.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, err any) {
		log.ErrorContext(c.Request.Context(), "panic recovered", slog.Any("panic", err))
		c.String(http.StatusInternalServerError, "Server Error")
		c.Abort()
	})
}
