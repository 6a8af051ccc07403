package middleware

import (
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/wb-go/wbf/ginext"

	"confreg/internal/metrics"
)

const RequestIDHeader = "X-Request-ID"

// LoggingMiddleware tags each request with an id, writes one access log line
// and records latency when m is set.
func LoggingMiddleware(log *zerolog.Logger, m *metrics.Metrics) func(*ginext.Context) {
	return func(c *ginext.Context) {
		start := time.Now()

		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(RequestIDHeader, requestID)
		c.Set("request_id", requestID)

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		elapsed := time.Since(start)

		if m != nil {
			m.HTTPRequestDuration.
				WithLabelValues(c.Request.Method, route, strconv.Itoa(status)).
				Observe(elapsed.Seconds())
		}

		event := log.Info()
		if status >= 500 {
			event = log.Error()
		}
		event.
			Str("request_id", requestID).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", elapsed).
			Msg("request")
	}
}
