package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// JSONResponse sends a structured JSON response
func JSONResponse(c *gin.Context, status int, data any, message string) {
	c.JSON(status, gin.H{
		"status":  status,
		"message": message,
		"data":    data,
	})
}

// JSONError sends a structured error response. Server errors carry only the
// message; their cause stays in the logs.
func JSONError(c *gin.Context, status int, err error, message string) {
	detail := message
	if status < http.StatusInternalServerError && err != nil {
		detail = err.Error()
	}
	c.JSON(status, gin.H{
		"status":  status,
		"message": message,
		"error":   detail,
	})
}
