package middlewares

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/restaurant-manager/utils"
)

const RequestIDHeader = "X-Request-ID"

// LoggerMiddleware mencatat setiap request beserta request id (dibuat bila client tidak mengirim)
func LoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set("request_id", requestID)
		c.Header(RequestIDHeader, requestID)

		c.Next()

		if raw != "" {
			path = path + "?" + raw
		}
		entry := utils.InfoLogger.WithFields(logrus.Fields{
			"request_id": requestID,
			"method":     c.Request.Method,
			"status":     c.Writer.Status(),
			"latency":    time.Since(start),
			"client_ip":  c.ClientIP(),
		})
		if len(c.Errors) > 0 {
			entry = entry.WithField("errors", c.Errors.String())
		}
		entry.Info(path)
	}
}
