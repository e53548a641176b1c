package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const traceIDHeader = "X-Trace-ID"

// RequestLogger logs one structured line per request and attaches a
// trace-scoped logger to the request context. An incoming X-Trace-ID is
// honored, otherwise a fresh one is minted; either way it is echoed back.
func RequestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		traceID := c.GetHeader(traceIDHeader)
		if traceID == "" {
			traceID = uuid.NewString()
		}
		c.Writer.Header().Set(traceIDHeader, traceID)

		reqLog := log.With().Str("trace_id", traceID).Logger()
		c.Request = c.Request.WithContext(reqLog.WithContext(c.Request.Context()))

		c.Next()

		var evt *zerolog.Event
		if len(c.Errors) > 0 {
			evt = reqLog.Error().Str("errors", c.Errors.String())
		} else {
			evt = reqLog.Info()
		}
		evt.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Msg("HTTP request")
	}
}
