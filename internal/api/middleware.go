package api

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/celestialworks/almanac/internal/logging"
)

const requestIDHeader = "X-Request-Id"

// RequestID ensures a request_id is present on the request context,
// sourcing it from the inbound header if provided, and attaches a
// per-request logger annotated with request_id and method. The ID is
// echoed back on the response.
func RequestID(base logging.Logger) gin.HandlerFunc {
	if base == nil {
		base = logging.Noop()
	}
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		if incoming := strings.TrimSpace(c.GetHeader(requestIDHeader)); incoming != "" {
			ctx = logging.ContextWithRequestID(ctx, incoming)
		}

		ctx, reqLog := logging.WithRequestLogger(ctx, base.With(logging.String("method", c.Request.Method)))
		ctx = logging.ContextWithLogger(ctx, reqLog)
		c.Request = c.Request.WithContext(ctx)
		c.Writer.Header().Set(requestIDHeader, logging.RequestIDFromContext(ctx))

		c.Next()
	}
}

// RequestLogger emits one structured line per request after the handler
// chain completes, at a level matching the response status.
func RequestLogger(log logging.Logger) gin.HandlerFunc {
	if log == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}

		ctx := c.Request.Context()
		line := log
		if reqLog := logging.LoggerFromContext(ctx); reqLog != nil {
			line = reqLog
		}
		fields := []logging.Field{
			logging.String("method", c.Request.Method),
			logging.String("route", route),
			logging.Int("status", status),
			logging.Int("duration_ms", int(time.Since(start).Milliseconds())),
		}

		switch {
		case status >= 500:
			line.Error(ctx, "http request", fields...)
		case status >= 400:
			line.Warn(ctx, "http request", fields...)
		default:
			line.Info(ctx, "http request", fields...)
		}
	}
}
