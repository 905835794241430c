package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/error7buddy/KiLagbe.Com/internal/httpx"
	"github.com/error7buddy/KiLagbe.Com/internal/logger"
)

const HeaderRequestID = "X-Request-Id"

// RequestIDMiddleware ensures every request has a stable request ID.
// - Reads X-Request-Id header if present
// - Otherwise generates a new one
// - Stores it in both Gin context and standard context as "request_id"
// - Echoes it back in response header X-Request-Id
// - Attaches a request-scoped logger and writes one access log line per request
func RequestIDMiddleware(log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := strings.TrimSpace(c.GetHeader(HeaderRequestID))
		if rid == "" {
			rid = uuid.NewString()
		}

		c.Set("request_id", rid)

		c.Request = c.Request.WithContext(logger.WithRequestID(c.Request.Context(), rid))

		c.Writer.Header().Set(HeaderRequestID, rid)

		reqLog := log.WithField("request_id", rid)
		httpx.SetLogger(c, reqLog)

		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		entry := reqLog.WithFields(logrus.Fields{
			"method":    c.Request.Method,
			"path":      c.Request.URL.Path,
			"status":    status,
			"latency":   time.Since(start).String(),
			"client_ip": c.ClientIP(),
		})
		switch {
		case status >= 500:
			entry.Error("request")
		case status >= 400:
			entry.Warn("request")
		default:
			entry.Info("request")
		}
	}
}
