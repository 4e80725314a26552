package server

import (
	"net/http"
	"time"

	"harvest-market/utils"

	"github.com/gin-gonic/gin"
)

// RequestLoggerMiddleware logs incoming requests with timing. Server errors
// are logged at error level, everything else at info.
func RequestLoggerMiddleware(c *gin.Context) {
	start := time.Now()

	c.Next() // process request

	route := c.FullPath()
	if route == "" {
		route = "unmatched"
	}
	fields := map[string]any{
		"method":    c.Request.Method,
		"path":      c.Request.URL.Path,
		"route":     route,
		"status":    c.Writer.Status(),
		"client_ip": c.ClientIP(),
		"latency":   time.Since(start).String(),
	}
	if len(c.Errors) > 0 {
		fields["errors"] = c.Errors.String()
	}

	if c.Writer.Status() >= http.StatusInternalServerError {
		utils.Error("HTTP Request", fields)
		return
	}
	utils.Info("HTTP Request", fields)
}
