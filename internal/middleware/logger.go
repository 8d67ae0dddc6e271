package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/defipulse/internal/logger"
	"github.com/rs/zerolog"
)

// RequestLogger is a Gin middleware that logs one structured line per request.
//
// Behavior:
//   - Captures start time before request handling.
//   - After the request, logs method, path, matched route, status, latency and request_id.
//   - 5xx responses are logged at error level, 4xx at warn, everything else at info.
//
// Usage:
//
//	router := gin.New()
//	router.Use(middleware.RequestID(), middleware.RequestLogger())
//
// Example log output:
//
//	request_id=123e4567-e89b-12d3-a456-426614174000 method=GET path=/api/v1/dashboard/amm/volume/asset route=/api/v1/dashboard/:category/:dataset/:type status=200 latency_ms=84
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		method := c.Request.Method
		path := c.Request.URL.Path

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()
		rid, _ := c.Get(RequestIDKey)

		logger.L().WithLevel(levelFor(status)).
			Str("request_id", toString(rid)).
			Str("method", method).
			Str("path", path).
			Str("route", c.FullPath()).
			Str("query", c.Request.URL.RawQuery).
			Int("status", status).
			Int64("latency_ms", latency.Milliseconds()).
			Str("client_ip", c.ClientIP()).
			Msg("http_request")
	}
}

func levelFor(status int) zerolog.Level {
	switch {
	case status >= 500:
		return zerolog.ErrorLevel
	case status >= 400:
		return zerolog.WarnLevel
	default:
		return zerolog.InfoLevel
	}
}

func toString(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}
